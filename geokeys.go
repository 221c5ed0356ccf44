package surfacelength

import (
	"errors"
	"fmt"
)

var errParse = errors.New("parse error")

type geoKey uint16

const (
	geoKeyModelType          geoKey = 1024
	geoKeyGeogLinearUnits    geoKey = 2052
	geoKeyGeogLinearUnitSize geoKey = 2053
	geoKeyProjLinearUnits    geoKey = 3076
	geoKeyProjLinearUnitSize geoKey = 3077
	geoKeyVerticalUnits      geoKey = 4099
)

const modelTypeGeographic = 2

// Linear unit codes from the EPSG registry.
const (
	unitMetre          = 9001
	unitFoot           = 9002
	unitUSSurveyFoot   = 9003
	unitUserDefined    = 32767
	geoDoubleParamsTag = 34736
)

// geoKeys holds the short and double valued keys of a GeoTIFF key directory.
// ASCII valued keys are skipped.
type geoKeys struct {
	shorts  map[geoKey]int
	doubles map[geoKey]float64
}

// parseGeoKeys parses a GeoKeyDirectoryTag.
func parseGeoKeys(directory []uint16, doubleParams []float64) (*geoKeys, error) {
	if len(directory) < 4 {
		return nil, errParse
	}
	if keyDirectoryVersion := directory[0]; keyDirectoryVersion != 1 {
		return nil, errParse
	}
	if keyRevision := directory[1]; keyRevision != 1 {
		return nil, errParse
	}
	if minorRevision := directory[2]; minorRevision != 0 && minorRevision != 1 {
		return nil, errParse
	}
	numberOfKeys := int(directory[3])
	if len(directory) != 4+4*numberOfKeys {
		return nil, errParse
	}

	keys := &geoKeys{
		shorts:  make(map[geoKey]int),
		doubles: make(map[geoKey]float64),
	}
	for i := range numberOfKeys {
		entry := directory[4+4*i : 4+4*(i+1)]
		key := geoKey(entry[0])
		tagLocation, count, valueOrIndex := int(entry[1]), int(entry[2]), int(entry[3])
		switch tagLocation {
		case 0:
			if count != 1 {
				return nil, errParse
			}
			keys.shorts[key] = valueOrIndex
		case geoDoubleParamsTag:
			if count != 1 || valueOrIndex >= len(doubleParams) {
				return nil, errParse
			}
			keys.doubles[key] = doubleParams[valueOrIndex]
		}
	}
	return keys, nil
}

// linearUnitMeters returns the length in meters of the linear unit stored
// under unitKey, with sizeKey holding the size of user-defined units. Missing
// units are assumed to be meters.
func (k *geoKeys) linearUnitMeters(unitKey, sizeKey geoKey) (float64, error) {
	unit, ok := k.shorts[unitKey]
	if !ok {
		return 1, nil
	}
	switch unit {
	case unitMetre:
		return 1, nil
	case unitFoot:
		return 0.3048, nil
	case unitUSSurveyFoot:
		return 1200.0 / 3937.0, nil
	case unitUserDefined:
		if size, ok := k.doubles[sizeKey]; ok && size > 0 {
			return size, nil
		}
		return 0, errParse
	default:
		return 0, fmt.Errorf("linear unit %d: %w", unit, errors.ErrUnsupported)
	}
}

// calibration returns the calibration implied by a GeoTIFF pixel scale and k.
// Geographic models, whose pixel scale is angular, are unsupported.
func (k *geoKeys) calibration(pixelScale []float64) (Calibration, error) {
	if len(pixelScale) != 3 || pixelScale[0] <= 0 || pixelScale[0] != pixelScale[1] {
		return Calibration{}, errors.ErrUnsupported
	}
	if k.shorts[geoKeyModelType] == modelTypeGeographic {
		return Calibration{}, errors.ErrUnsupported
	}

	horizontalUnitKey, horizontalSizeKey := geoKeyProjLinearUnits, geoKeyProjLinearUnitSize
	if _, ok := k.shorts[horizontalUnitKey]; !ok {
		horizontalUnitKey, horizontalSizeKey = geoKeyGeogLinearUnits, geoKeyGeogLinearUnitSize
	}
	horizontalMeters, err := k.linearUnitMeters(horizontalUnitKey, horizontalSizeKey)
	if err != nil {
		return Calibration{}, err
	}
	verticalMeters, err := k.linearUnitMeters(geoKeyVerticalUnits, 0)
	if err != nil {
		return Calibration{}, err
	}

	calibration := Calibration{
		LengthPerUnit: pixelScale[0] * horizontalMeters,
		HeightPerUnit: DefaultCalibration.HeightPerUnit,
	}
	if pixelScale[2] != 0 {
		calibration.HeightPerUnit = pixelScale[2] * verticalMeters
	}
	return calibration, nil
}
