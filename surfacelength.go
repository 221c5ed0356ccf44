// Package surfacelength estimates the length of a terrain surface profile
// between two pixels of an elevation grid.
package surfacelength

import "strconv"

// Default grid dimensions.
const (
	DefaultColumns = 512
	DefaultRows    = 512
)

// A Coord is a pixel coordinate. X is the column and Y is the row.
type Coord struct {
	X int
	Y int
}

func (c Coord) String() string {
	return "(" + strconv.Itoa(c.X) + ", " + strconv.Itoa(c.Y) + ")"
}

// less orders coords by row, then by column.
func (c Coord) less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// A Calibration converts grid units into meters.
type Calibration struct {
	LengthPerUnit float64 // Horizontal meters per pixel.
	HeightPerUnit float64 // Vertical meters per unit of height difference.
}

// DefaultCalibration is the calibration of the reference 512x512 grids.
var DefaultCalibration = Calibration{
	LengthPerUnit: 30,
	HeightPerUnit: 11,
}

// A Raster returns samples at pixel coordinates. Missing samples are NaN.
type Raster interface {
	Samples(coords []Coord) ([]float64, error)
	Size() (int, int)
}
