package surfacelength

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for configuration values that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// A SourceUnavailableError is returned when the bytes of a grid could not be
// obtained.
type SourceUnavailableError struct {
	Name string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("%s: source unavailable: %v", e.Name, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// A SizeMismatchError is returned when a buffer does not contain exactly one
// byte per grid cell.
type SizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("size mismatch: expected %d bytes, got %d", e.Expected, e.Actual)
}

// An OutOfBoundsCoordinateError is returned when a coordinate lies outside a
// grid.
type OutOfBoundsCoordinateError struct {
	Coord   Coord
	Columns int
	Rows    int
}

func (e *OutOfBoundsCoordinateError) Error() string {
	return fmt.Sprintf("%s: out of bounds for %dx%d grid", e.Coord, e.Columns, e.Rows)
}

// A DimensionMismatchError is returned when two grids that must be compared
// have different dimensions.
type DimensionMismatchError struct {
	BeforeColumns, BeforeRows int
	AfterColumns, AfterRows   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: %dx%d and %dx%d", e.BeforeColumns, e.BeforeRows, e.AfterColumns, e.AfterRows)
}
