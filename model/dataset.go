package model

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/mixmc/errs"
)

// Observation is a single (group, x1, x2) record.
type Observation struct {
	Group Group
	X1    float64
	X2    float64
}

// Dataset is a validated, read-only set of observations.
//
// A Dataset never changes after construction and is safe to share between
// engines and goroutines.
type Dataset struct {
	rows  []Observation
	stats SufficientStats
}

// NewDataset validates obs and returns a Dataset holding a private copy.
//
// It fails with errs.ErrEmptyDataset for empty input, errs.ErrInvalidGroup for
// a group outside 1..4 and errs.ErrNonFinite for NaN or infinite coordinates.
func NewDataset(obs []Observation) (*Dataset, error) {
	if len(obs) == 0 {
		return nil, errs.ErrEmptyDataset
	}

	rows := make([]Observation, len(obs))
	for i, o := range obs {
		if !o.Group.Valid() {
			return nil, fmt.Errorf("row %d: %w: %d", i, errs.ErrInvalidGroup, uint8(o.Group))
		}
		if math.IsNaN(o.X1) || math.IsInf(o.X1, 0) || math.IsNaN(o.X2) || math.IsInf(o.X2, 0) {
			return nil, fmt.Errorf("row %d: %w", i, errs.ErrNonFinite)
		}
		rows[i] = o
	}

	d := &Dataset{rows: rows}
	d.stats = computeStats(rows)

	return d, nil
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// At returns the i-th observation.
func (d *Dataset) At(i int) Observation {
	return d.rows[i]
}

// All iterates over the observations in order.
func (d *Dataset) All() iter.Seq2[int, Observation] {
	return func(yield func(int, Observation) bool) {
		for i, o := range d.rows {
			if !yield(i, o) {
				return
			}
		}
	}
}

// Stats returns the per-group sufficient statistics.
func (d *Dataset) Stats() SufficientStats {
	return d.stats
}
