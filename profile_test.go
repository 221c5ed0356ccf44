package surfacelength_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-surfacelength"
)

type testRaster struct {
	columns int
	samples [][]float64
}

func (r *testRaster) Samples(coords []surfacelength.Coord) ([]float64, error) {
	samples := make([]float64, len(coords))
	for i, coord := range coords {
		if coord.Y >= len(r.samples) || coord.X >= r.columns {
			samples[i] = math.NaN()
			continue
		}
		samples[i] = r.samples[coord.Y][coord.X]
	}
	return samples, nil
}

func (r *testRaster) Size() (int, int) {
	return r.columns, len(r.samples)
}

func TestSampleProfile(t *testing.T) {
	raster := &testRaster{
		columns: 4,
		samples: [][]float64{
			{0, 1, 2, 3},
			{4, 5, 6, 7},
		},
	}
	for _, tc := range []struct {
		name     string
		start    surfacelength.Coord
		end      surfacelength.Coord
		stepSize float64
		expected []surfacelength.ProfilePoint
	}{
		{
			name:     "row",
			start:    surfacelength.Coord{X: 0, Y: 0},
			end:      surfacelength.Coord{X: 3, Y: 0},
			stepSize: 1,
			expected: []surfacelength.ProfilePoint{
				{Distance: 0, Height: 0},
				{Distance: 30, Height: 1},
				{Distance: 60, Height: 2},
				{Distance: 90, Height: 3},
			},
		},
		{
			name:     "reverse_half_steps",
			start:    surfacelength.Coord{X: 2, Y: 1},
			end:      surfacelength.Coord{X: 1, Y: 1},
			stepSize: 0.5,
			expected: []surfacelength.ProfilePoint{
				{Distance: 0, Height: 6},
				{Distance: 15, Height: 5},
				{Distance: 30, Height: 5},
			},
		},
		{
			name:     "single_point",
			start:    surfacelength.Coord{X: 1, Y: 0},
			end:      surfacelength.Coord{X: 1, Y: 0},
			expected: []surfacelength.ProfilePoint{
				{Distance: 0, Height: 1},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := surfacelength.SampleProfile(raster, surfacelength.DefaultCalibration, tc.start, tc.end, tc.stepSize)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestSampleProfile_MatchesEstimator(t *testing.T) {
	r := rand.New(rand.NewPCG(0, 0))
	grid := newGrid(t, 24, 16, func(x, y int) uint8 {
		return uint8(r.IntN(32))
	})
	estimator := surfacelength.NewEstimator()
	for range 64 {
		a := surfacelength.Coord{X: r.IntN(24), Y: r.IntN(16)}
		b := surfacelength.Coord{X: r.IntN(24), Y: r.IntN(16)}

		forward, err := surfacelength.SampleProfile(grid, surfacelength.DefaultCalibration, a, b, 1)
		assert.NoError(t, err)
		backward, err := surfacelength.SampleProfile(grid, surfacelength.DefaultCalibration, b, a, 1)
		assert.NoError(t, err)

		forwardHeights := profileHeights(forward)
		backwardHeights := profileHeights(backward)
		slices.Reverse(backwardHeights)
		assert.Equal(t, forwardHeights, backwardHeights)

		length := 0.0
		for i := 1; i < len(backward); i++ {
			horizontal := backward[i].Distance - backward[i-1].Distance
			vertical := math.Abs(backward[i].Height-backward[i-1].Height) * surfacelength.DefaultCalibration.HeightPerUnit
			length += math.Hypot(horizontal, vertical)
		}
		assertInDelta(t, estimator.Estimate(grid, b, a), length, 1e-9)
	}
}

func profileHeights(profile []surfacelength.ProfilePoint) []float64 {
	heights := make([]float64, len(profile))
	for i, point := range profile {
		heights[i] = point.Height
	}
	return heights
}
