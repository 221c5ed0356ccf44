package surfacelength

import (
	"fmt"
	"math"
)

// A Grid is an immutable field of 8-bit elevation samples stored row-major.
type Grid struct {
	columns int
	rows    int
	heights []uint8
}

// A GridOption sets an option on a Grid.
type GridOption func(*Grid)

// NewGrid returns a new Grid containing a copy of buffer, which must contain
// exactly one byte per cell, row by row.
func NewGrid(buffer []byte, options ...GridOption) (*Grid, error) {
	g := &Grid{
		columns: DefaultColumns,
		rows:    DefaultRows,
	}
	for _, option := range options {
		option(g)
	}
	if g.columns <= 0 || g.rows <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions %dx%d", ErrInvalidConfig, g.columns, g.rows)
	}
	if expected := g.columns * g.rows; len(buffer) != expected {
		return nil, &SizeMismatchError{
			Expected: expected,
			Actual:   len(buffer),
		}
	}
	g.heights = make([]uint8, len(buffer))
	copy(g.heights, buffer)
	return g, nil
}

// WithDimensions sets the number of columns and rows of a Grid.
func WithDimensions(columns, rows int) GridOption {
	return func(g *Grid) {
		g.columns = columns
		g.rows = rows
	}
}

// Columns returns the number of columns in g.
func (g *Grid) Columns() int {
	return g.columns
}

// Rows returns the number of rows in g.
func (g *Grid) Rows() int {
	return g.rows
}

// Size returns g's columns and rows.
func (g *Grid) Size() (int, int) {
	return g.columns, g.rows
}

// Contains returns whether coord lies within g.
func (g *Grid) Contains(coord Coord) bool {
	return 0 <= coord.X && coord.X < g.columns && 0 <= coord.Y && coord.Y < g.rows
}

// CheckCoord returns an *OutOfBoundsCoordinateError if coord does not lie
// within g.
func (g *Grid) CheckCoord(coord Coord) error {
	if !g.Contains(coord) {
		return &OutOfBoundsCoordinateError{
			Coord:   coord,
			Columns: g.columns,
			Rows:    g.rows,
		}
	}
	return nil
}

// HeightAt returns the height at coord. It panics if coord is outside g.
func (g *Grid) HeightAt(coord Coord) uint8 {
	if err := g.CheckCoord(coord); err != nil {
		panic(err)
	}
	return g.heights[coord.Y*g.columns+coord.X]
}

// Samples returns the heights at coords. Coordinates outside g are NaN.
func (g *Grid) Samples(coords []Coord) ([]float64, error) {
	samples := make([]float64, len(coords))
	for i, coord := range coords {
		if !g.Contains(coord) {
			samples[i] = math.NaN()
			continue
		}
		samples[i] = float64(g.heights[coord.Y*g.columns+coord.X])
	}
	return samples, nil
}

// sameSize returns whether g and other have the same dimensions.
func (g *Grid) sameSize(other *Grid) bool {
	return g.columns == other.columns && g.rows == other.rows
}
