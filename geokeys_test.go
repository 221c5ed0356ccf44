package surfacelength

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseGeoKeys(t *testing.T) {
	directory := []uint16{
		1, 1, 0, 6,
		1024, 0, 1, 1,
		1025, 0, 1, 1,
		1026, 34737, 28, 0,
		3076, 0, 1, 9001,
		3082, 34736, 1, 0,
		4099, 0, 1, 9002,
	}
	doubleParams := []float64{
		4321000,
	}

	actual, err := parseGeoKeys(directory, doubleParams)
	assert.NoError(t, err)
	assert.Equal(t, &geoKeys{
		shorts: map[geoKey]int{
			geoKeyModelType:       1,
			1025:                  1,
			geoKeyProjLinearUnits: 9001,
			geoKeyVerticalUnits:   9002,
		},
		doubles: map[geoKey]float64{
			3082: 4321000,
		},
	}, actual)
}

func TestParseGeoKeys_Errors(t *testing.T) {
	for _, tc := range []struct {
		name         string
		directory    []uint16
		doubleParams []float64
	}{
		{
			name:      "short",
			directory: []uint16{1, 1, 0},
		},
		{
			name:      "version",
			directory: []uint16{2, 1, 0, 0},
		},
		{
			name:      "key_count",
			directory: []uint16{1, 1, 0, 2, 1024, 0, 1, 1},
		},
		{
			name:      "double_index",
			directory: []uint16{1, 1, 0, 1, 3077, 34736, 1, 3},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseGeoKeys(tc.directory, tc.doubleParams)
			assert.IsError(t, err, errParse)
		})
	}
}

func TestGeoKeys_Calibration(t *testing.T) {
	for _, tc := range []struct {
		name        string
		shorts      map[geoKey]int
		doubles     map[geoKey]float64
		pixelScale  []float64
		expected    Calibration
		expectedErr error
	}{
		{
			name:       "no_keys",
			pixelScale: []float64{25, 25, 0},
			expected:   Calibration{LengthPerUnit: 25, HeightPerUnit: 11},
		},
		{
			name: "metres",
			shorts: map[geoKey]int{
				geoKeyModelType:       1,
				geoKeyProjLinearUnits: unitMetre,
			},
			pixelScale: []float64{30, 30, 2},
			expected:   Calibration{LengthPerUnit: 30, HeightPerUnit: 2},
		},
		{
			name: "feet",
			shorts: map[geoKey]int{
				geoKeyProjLinearUnits: unitFoot,
				geoKeyVerticalUnits:   unitFoot,
			},
			pixelScale: []float64{100, 100, 10},
			expected:   Calibration{LengthPerUnit: 30.48, HeightPerUnit: 3.048},
		},
		{
			name: "user_defined",
			shorts: map[geoKey]int{
				geoKeyProjLinearUnits: unitUserDefined,
			},
			doubles: map[geoKey]float64{
				geoKeyProjLinearUnitSize: 2,
			},
			pixelScale: []float64{5, 5, 0},
			expected:   Calibration{LengthPerUnit: 10, HeightPerUnit: 11},
		},
		{
			name: "geographic",
			shorts: map[geoKey]int{
				geoKeyModelType: modelTypeGeographic,
			},
			pixelScale:  []float64{0.001, 0.001, 0},
			expectedErr: errors.ErrUnsupported,
		},
		{
			name:        "non_square",
			pixelScale:  []float64{10, 20, 0},
			expectedErr: errors.ErrUnsupported,
		},
		{
			name: "unknown_unit",
			shorts: map[geoKey]int{
				geoKeyProjLinearUnits: 9036,
			},
			pixelScale:  []float64{10, 10, 0},
			expectedErr: errors.ErrUnsupported,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			keys := &geoKeys{
				shorts:  tc.shorts,
				doubles: tc.doubles,
			}
			actual, err := keys.calibration(tc.pixelScale)
			if tc.expectedErr != nil {
				assert.IsError(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}
