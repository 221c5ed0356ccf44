package surfacelength

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// A Comparison holds the surface lengths of the same segment before and after
// a change.
type Comparison struct {
	Before float64
	After  float64
}

// Difference returns the change in surface length.
func (c Comparison) Difference() float64 {
	return c.After - c.Before
}

type segment struct {
	start Coord
	end   Coord
}

// A Comparer compares surface lengths on a pair of grids.
type Comparer struct {
	before    *Grid
	after     *Grid
	estimator *Estimator
	cacheSize int
	cache     *lru.Cache[segment, Comparison]
}

// A ComparerOption sets an option on a Comparer.
type ComparerOption func(*Comparer)

// NewComparer returns a new Comparer of before and after, which must have the
// same dimensions.
func NewComparer(before, after *Grid, estimator *Estimator, options ...ComparerOption) (*Comparer, error) {
	if !before.sameSize(after) {
		return nil, &DimensionMismatchError{
			BeforeColumns: before.columns,
			BeforeRows:    before.rows,
			AfterColumns:  after.columns,
			AfterRows:     after.rows,
		}
	}
	if estimator == nil {
		estimator = NewEstimator()
	}
	c := &Comparer{
		before:    before,
		after:     after,
		estimator: estimator,
		cacheSize: 128,
	}
	for _, option := range options {
		option(c)
	}

	var err error
	c.cache, err = lru.New[segment, Comparison](max(c.cacheSize, 1))
	if err != nil {
		return nil, err
	}
	return c, nil
}

func WithComparisonCacheSize(cacheSize int) ComparerOption {
	return func(c *Comparer) {
		c.cacheSize = cacheSize
	}
}

// Compare returns the surface lengths from start to end on both grids. Both
// coordinates must lie within the grids.
func (c *Comparer) Compare(start, end Coord) Comparison {
	key := segment{start: start, end: end}
	if end.less(start) {
		key = segment{start: end, end: start}
	}
	if comparison, ok := c.cache.Get(key); ok {
		return comparison
	}
	comparison := Comparison{
		Before: c.estimator.Estimate(c.before, start, end),
		After:  c.estimator.Estimate(c.after, start, end),
	}
	c.cache.Add(key, comparison)
	return comparison
}

// Len returns the number of memoized comparisons.
func (c *Comparer) Len() int {
	return c.cache.Len()
}
