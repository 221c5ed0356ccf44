package surfacelength

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/google/tiff"
	_ "github.com/google/tiff/bigtiff"
	_ "github.com/google/tiff/geotiff"
	xtiff "golang.org/x/image/tiff"
)

// A geoTIFFIFD is a struct into which github.com/google/tiff can unmarshal
// the georeferencing tags of an IFD.
type geoTIFFIFD struct {
	ModelPixelScaleTag []float64 `tiff:"field,tag=33550"`
	GeoKeyDirectoryTag []uint16  `tiff:"field,tag=34735"`
	GeoDoubleParamsTag []float64 `tiff:"field,tag=34736"`
}

// decodeTIFF decodes an 8-bit single band TIFF into row-major bytes.
func decodeTIFF(data []byte, columns, rows int) ([]byte, error) {
	img, err := xtiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("%T: %w", img, errors.ErrUnsupported)
	}
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width*height != columns*rows {
		return nil, &SizeMismatchError{
			Expected: columns * rows,
			Actual:   width * height,
		}
	}
	if width != columns || height != rows {
		return nil, fmt.Errorf("%dx%d image, expected %dx%d: %w", width, height, columns, rows, errors.ErrUnsupported)
	}
	buffer := make([]byte, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		offset := gray.PixOffset(bounds.Min.X, y)
		buffer = append(buffer, gray.Pix[offset:offset+width]...)
	}
	return buffer, nil
}

// decodeGeoTIFFCalibration returns the calibration stored in the GeoTIFF tags
// of data. It returns false if data has no pixel scale.
func decodeGeoTIFFCalibration(data []byte) (Calibration, bool, error) {
	tiffTIFF, err := tiff.Parse(bytes.NewReader(data), tiff.GetTagSpace("GeoTIFF"), nil)
	if err != nil {
		return Calibration{}, false, err
	}
	if len(tiffTIFF.IFDs()) == 0 {
		return Calibration{}, false, fmt.Errorf("no IFDs: %w", errParse)
	}

	var ifd geoTIFFIFD
	if err := tiff.UnmarshalIFD(tiffTIFF.IFDs()[0], &ifd); err != nil {
		return Calibration{}, false, err
	}
	if len(ifd.ModelPixelScaleTag) == 0 {
		return Calibration{}, false, nil
	}

	keys := &geoKeys{}
	if len(ifd.GeoKeyDirectoryTag) != 0 {
		keys, err = parseGeoKeys(ifd.GeoKeyDirectoryTag, ifd.GeoDoubleParamsTag)
		if err != nil {
			return Calibration{}, false, err
		}
	}
	calibration, err := keys.calibration(ifd.ModelPixelScaleTag)
	if err != nil {
		return Calibration{}, false, err
	}
	return calibration, true, nil
}
