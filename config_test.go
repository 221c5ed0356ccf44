package surfacelength_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-surfacelength"
)

func TestLoadConfig(t *testing.T) {
	for _, tc := range []struct {
		name        string
		data        string
		expected    surfacelength.Config
		expectedErr error
	}{
		{
			name: "partial",
			data: `{"step_size": 0.1, "method": "total"}`,
			expected: surfacelength.Config{
				Columns:       512,
				Rows:          512,
				LengthPerUnit: 30,
				HeightPerUnit: 11,
				StepSize:      0.1,
				Method:        "total",
			},
		},
		{
			name: "dimensions",
			data: `{"columns": 64, "rows": 32, "length_per_unit": 25}`,
			expected: surfacelength.Config{
				Columns:       64,
				Rows:          32,
				LengthPerUnit: 25,
				HeightPerUnit: 11,
				StepSize:      1,
				Method:        "segment",
			},
		},
		{
			name:        "invalid_step_size",
			data:        `{"step_size": -1}`,
			expectedErr: surfacelength.ErrInvalidConfig,
		},
		{
			name:        "degenerate_step_size",
			data:        `{"step_size": 1e-12}`,
			expectedErr: surfacelength.ErrInvalidConfig,
		},
		{
			name:        "invalid_method",
			data:        `{"method": "trapezoid"}`,
			expectedErr: surfacelength.ErrInvalidConfig,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			assert.NoError(t, os.WriteFile(path, []byte(tc.data), 0o666))
			actual, err := surfacelength.LoadConfig(path)
			if tc.expectedErr != nil {
				assert.IsError(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := surfacelength.LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestConfig_EstimatorOptions(t *testing.T) {
	cfg := surfacelength.DefaultConfig()
	cfg.StepSize = 0.25
	cfg.LengthPerUnit = 10
	estimator := surfacelength.NewEstimator(cfg.EstimatorOptions()...)
	assert.Equal(t, 0.25, estimator.StepSize())
	assert.Equal(t, surfacelength.Calibration{LengthPerUnit: 10, HeightPerUnit: 11}, estimator.Calibration())
}

func TestConfig_Validate(t *testing.T) {
	cfg := surfacelength.DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.StepSize = surfacelength.MinStepSize
	assert.NoError(t, cfg.Validate())

	for _, stepSize := range []float64{0, 1e-12, surfacelength.MinStepSize / 2, math.NaN()} {
		cfg.StepSize = stepSize
		assert.IsError(t, cfg.Validate(), surfacelength.ErrInvalidConfig)
	}
}
