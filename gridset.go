package surfacelength

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/maypok86/otter/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gridCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "surfacelength_grid_cache_hits_total",
		Help: "The total number of hits on the grid cache",
	})
	gridCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "surfacelength_grid_cache_misses_total",
		Help: "The total number of misses on the grid cache",
	})
	gridSourcesUnavailable = promauto.NewCounter(prometheus.CounterOpts{
		Name: "surfacelength_grid_sources_unavailable_total",
		Help: "The total number of grid sources that could not be read",
	})
)

// A GridSet loads named grids from a filesystem and caches them.
//
// Names ending in .gz are gzip-compressed raw grids, names ending in .tif or
// .tiff are 8-bit grayscale TIFFs, and all other names are raw grids of one
// byte per cell, row by row.
type GridSet struct {
	fsys        fs.FS
	cacheSize   int
	gridOptions []GridOption
	columns     int
	rows        int
	gridCache   *otter.Cache[string, *Grid]
}

// A GridSetOption sets an option on a GridSet.
type GridSetOption func(*GridSet)

// NewGridSet returns a new GridSet with the given options.
func NewGridSet(options ...GridSetOption) (*GridSet, error) {
	s := &GridSet{
		cacheSize: 8,
	}
	for _, option := range options {
		option(s)
	}
	if s.fsys == nil {
		return nil, fmt.Errorf("%w: no filesystem", ErrInvalidConfig)
	}

	dimensions := &Grid{
		columns: DefaultColumns,
		rows:    DefaultRows,
	}
	for _, option := range s.gridOptions {
		option(dimensions)
	}
	s.columns, s.rows = dimensions.columns, dimensions.rows

	var err error
	s.gridCache, err = otter.New(&otter.Options[string, *Grid]{
		MaximumSize: max(s.cacheSize, 1),
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func WithCacheSize(cacheSize int) GridSetOption {
	return func(s *GridSet) {
		s.cacheSize = cacheSize
	}
}

func WithFS(fsys fs.FS) GridSetOption {
	return func(s *GridSet) {
		s.fsys = fsys
	}
}

func WithGridOptions(gridOptions ...GridOption) GridSetOption {
	return func(s *GridSet) {
		s.gridOptions = gridOptions
	}
}

// Load returns the grid called name.
func (s *GridSet) Load(ctx context.Context, name string) (*Grid, error) {
	if grid, ok := s.gridCache.GetIfPresent(name); ok {
		gridCacheHits.Inc()
		return grid, nil
	}
	gridCacheMisses.Inc()
	return s.gridCache.Get(ctx, name, otter.LoaderFunc[string, *Grid](s.loadGrid))
}

// Calibration returns the calibration stored in the GeoTIFF tags of the grid
// called name. It returns false if name is not a GeoTIFF or has no pixel
// scale.
func (s *GridSet) Calibration(name string) (Calibration, bool, error) {
	if !isTIFF(name) {
		return Calibration{}, false, nil
	}
	data, err := s.readFile(name)
	if err != nil {
		return Calibration{}, false, err
	}
	return decodeGeoTIFFCalibration(data)
}

// loadGrid reads and decodes the grid called name.
func (s *GridSet) loadGrid(ctx context.Context, name string) (*Grid, error) {
	data, err := s.readFile(name)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.EqualFold(path.Ext(name), ".gz"):
		data, err = gunzip(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	case isTIFF(name):
		data, err = decodeTIFF(data, s.columns, s.rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	grid, err := NewGrid(data, s.gridOptions...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return grid, nil
}

// readFile reads name from s's filesystem.
func (s *GridSet) readFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		gridSourcesUnavailable.Inc()
		return nil, &SourceUnavailableError{
			Name: name,
			Err:  err,
		}
	}
	return data, nil
}

func gunzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func isTIFF(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".tif", ".tiff":
		return true
	default:
		return false
	}
}
