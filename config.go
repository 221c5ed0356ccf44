package surfacelength

import (
	"encoding/json"
	"fmt"
	"os"
)

// A Config holds the dimensions, calibration, and marching parameters of a
// comparison.
type Config struct {
	Columns       int     `json:"columns"`
	Rows          int     `json:"rows"`
	LengthPerUnit float64 `json:"length_per_unit"`
	HeightPerUnit float64 `json:"height_per_unit"`
	StepSize      float64 `json:"step_size"`
	Method        string  `json:"method"`
}

// DefaultConfig returns the configuration of the reference grids.
func DefaultConfig() Config {
	return Config{
		Columns:       DefaultColumns,
		Rows:          DefaultRows,
		LengthPerUnit: DefaultCalibration.LengthPerUnit,
		HeightPerUnit: DefaultCalibration.HeightPerUnit,
		StepSize:      DefaultStepSize,
		Method:        MethodSegmentHypotenuse.String(),
	}
}

// LoadConfig reads a JSON config from path. Fields omitted from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate returns an error wrapping ErrInvalidConfig if cfg cannot be used.
func (cfg Config) Validate() error {
	switch {
	case cfg.Columns <= 0 || cfg.Rows <= 0:
		return fmt.Errorf("%w: grid dimensions %dx%d", ErrInvalidConfig, cfg.Columns, cfg.Rows)
	case cfg.LengthPerUnit <= 0:
		return fmt.Errorf("%w: length_per_unit %g", ErrInvalidConfig, cfg.LengthPerUnit)
	case cfg.HeightPerUnit < 0:
		return fmt.Errorf("%w: height_per_unit %g", ErrInvalidConfig, cfg.HeightPerUnit)
	case !(cfg.StepSize >= MinStepSize):
		return fmt.Errorf("%w: step_size %g less than %g", ErrInvalidConfig, cfg.StepSize, MinStepSize)
	}
	_, err := ParseMethod(cfg.Method)
	return err
}

// Calibration returns cfg's calibration.
func (cfg Config) Calibration() Calibration {
	return Calibration{
		LengthPerUnit: cfg.LengthPerUnit,
		HeightPerUnit: cfg.HeightPerUnit,
	}
}

// GridOptions returns the grid options implied by cfg.
func (cfg Config) GridOptions() []GridOption {
	return []GridOption{
		WithDimensions(cfg.Columns, cfg.Rows),
	}
}

// EstimatorOptions returns the estimator options implied by cfg. cfg must be
// valid.
func (cfg Config) EstimatorOptions() []EstimatorOption {
	method, _ := ParseMethod(cfg.Method)
	return []EstimatorOption{
		WithCalibration(cfg.Calibration()),
		WithStepSize(cfg.StepSize),
		WithMethod(method),
	}
}
