package surfacelength

import (
	"slices"
)

// A ProfilePoint is a sample along a surface profile.
type ProfilePoint struct {
	Distance float64 // Horizontal meters from the start.
	Height   float64 // Raw height sample, NaN if missing.
}

// SampleProfile returns the height profile of raster along the straight line
// from start to end, sampled every stepSize pixels and at end. The cells
// sampled are those charged by an Estimator with the same step size, whichever
// way round start and end are given. Step sizes less than MinStepSize are
// replaced by DefaultStepSize.
func SampleProfile(raster Raster, calibration Calibration, start, end Coord, stepSize float64) ([]ProfilePoint, error) {
	if !(stepSize >= MinStepSize) {
		stepSize = DefaultStepSize
	}

	first, last := start, end
	reversed := end.less(start)
	if reversed {
		first, last = end, start
	}

	var distances []float64
	var coords []Coord
	for distance, position := range walk(first, last, stepSize) {
		distances = append(distances, distance)
		coords = append(coords, truncate(position))
	}
	if reversed {
		total := distances[len(distances)-1]
		for i, distance := range distances {
			distances[i] = total - distance
		}
		slices.Reverse(distances)
		slices.Reverse(coords)
	}

	samples, err := raster.Samples(coords)
	if err != nil {
		return nil, err
	}
	profile := make([]ProfilePoint, len(coords))
	for i := range coords {
		profile[i] = ProfilePoint{
			Distance: distances[i] * calibration.LengthPerUnit,
			Height:   samples[i],
		}
	}
	return profile, nil
}
