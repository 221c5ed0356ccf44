package surfacelength

import (
	"fmt"
	"iter"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultStepSize is the default marching increment in pixels.
const DefaultStepSize = 1.0

// MinStepSize is the smallest accepted marching increment in pixels. It bounds
// the number of steps along a segment.
const MinStepSize = 1e-3

// A step that would end within snapTolerance pixels of the end coordinate
// lands on it.
const snapTolerance = 1e-9

var (
	estimates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "surfacelength_estimates_total",
		Help: "The total number of surface length estimates",
	})
	microSteps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "surfacelength_micro_steps_total",
		Help: "The total number of micro-steps taken by the estimator",
	})
)

// A Method determines how the horizontal and vertical legs of each step are
// combined.
type Method int

const (
	// MethodSegmentHypotenuse adds the hypotenuse of each step's legs.
	MethodSegmentHypotenuse Method = iota
	// MethodTotalHypotenuse sums all horizontal and all vertical legs and
	// returns the hypotenuse of the two sums.
	MethodTotalHypotenuse
)

// ParseMethod parses a method name.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "segment", "":
		return MethodSegmentHypotenuse, nil
	case "total":
		return MethodTotalHypotenuse, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidConfig, s)
	}
}

func (m Method) String() string {
	switch m {
	case MethodSegmentHypotenuse:
		return "segment"
	case MethodTotalHypotenuse:
		return "total"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// An Estimator estimates surface lengths along straight lines on a Grid.
type Estimator struct {
	calibration Calibration
	stepSize    float64
	method      Method
}

// An EstimatorOption sets an option on an Estimator.
type EstimatorOption func(*Estimator)

// NewEstimator returns a new Estimator with the given options.
func NewEstimator(options ...EstimatorOption) *Estimator {
	e := &Estimator{
		calibration: DefaultCalibration,
		stepSize:    DefaultStepSize,
		method:      MethodSegmentHypotenuse,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func WithCalibration(calibration Calibration) EstimatorOption {
	return func(e *Estimator) {
		e.calibration = calibration
	}
}

// WithStepSize sets the marching increment in pixels. Values less than
// MinStepSize are ignored.
func WithStepSize(stepSize float64) EstimatorOption {
	return func(e *Estimator) {
		if stepSize >= MinStepSize {
			e.stepSize = stepSize
		}
	}
}

func WithMethod(method Method) EstimatorOption {
	return func(e *Estimator) {
		e.method = method
	}
}

// Calibration returns e's calibration.
func (e *Estimator) Calibration() Calibration {
	return e.calibration
}

// StepSize returns e's step size.
func (e *Estimator) StepSize() float64 {
	return e.stepSize
}

// Estimate returns the surface length in meters of the straight line from
// start to end on grid. Both coordinates must lie within grid.
//
// The line is walked in increments of e's step size. Each step charges the
// distance travelled and the absolute height difference between the cells
// containing the previous and current positions, positions being truncated
// toward zero. The final step lands exactly on the end coordinate.
func (e *Estimator) Estimate(grid *Grid, start, end Coord) float64 {
	estimates.Inc()
	if start == end {
		return 0
	}
	if end.less(start) {
		start, end = end, start
	}

	stepFraction := min(e.stepSize, 1)
	var totalLength, totalHorizontal, totalVertical float64
	var previousPosition r2.Vec
	steps := -1
	for _, currentPosition := range walk(start, end, e.stepSize) {
		steps++
		if steps == 0 {
			previousPosition = currentPosition
			continue
		}

		travelled := r2.Norm(r2.Sub(currentPosition, previousPosition))
		previousHeight := grid.HeightAt(truncate(previousPosition))
		currentHeight := grid.HeightAt(truncate(currentPosition))
		difference := math.Abs(float64(currentHeight) - float64(previousHeight))

		horizontalLength := travelled * e.calibration.LengthPerUnit
		verticalLength := difference * e.calibration.HeightPerUnit * stepFraction
		switch e.method {
		case MethodTotalHypotenuse:
			totalHorizontal += horizontalLength
			totalVertical += verticalLength
		default:
			totalLength += math.Hypot(horizontalLength, verticalLength)
		}

		previousPosition = currentPosition
	}
	microSteps.Add(float64(steps))

	if e.method == MethodTotalHypotenuse {
		return math.Hypot(totalHorizontal, totalVertical)
	}
	return totalLength
}

// walk yields the distance from start and the position of every step along
// the straight line from start to end, including start and end. The i-th
// position is start+i*stepSize along the line, so rounding errors do not
// accumulate. A step that would end within snapTolerance pixels of end lands
// on end.
func walk(start, end Coord, stepSize float64) iter.Seq2[float64, r2.Vec] {
	return func(yield func(float64, r2.Vec) bool) {
		startPosition := r2.Vec{X: float64(start.X), Y: float64(start.Y)}
		if !yield(0, startPosition) || start == end {
			return
		}
		endPosition := r2.Vec{X: float64(end.X), Y: float64(end.Y)}
		distanceVec := r2.Sub(endPosition, startPosition)
		direction := r2.Unit(distanceVec)
		distanceToCover := r2.Norm(distanceVec)
		n := max(int(math.Ceil((distanceToCover-snapTolerance)/stepSize)), 1)
		for i := 1; i < n; i++ {
			distance := float64(i) * stepSize
			if !yield(distance, r2.Add(startPosition, r2.Scale(distance, direction))) {
				return
			}
		}
		yield(distanceToCover, endPosition)
	}
}

// truncate returns the pixel containing position, truncating toward zero.
func truncate(position r2.Vec) Coord {
	return Coord{
		X: int(position.X),
		Y: int(position.Y),
	}
}
