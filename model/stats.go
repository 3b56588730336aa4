package model

import (
	"fmt"

	"github.com/arloliu/mixmc/errs"
)

// GroupStats holds the count and coordinate means of one group.
type GroupStats struct {
	Count int
	Mean1 float64
	Mean2 float64
}

// SufficientStats holds GroupStats for every group, indexed by Group.Index.
type SufficientStats [NumGroups]GroupStats

// Group returns the statistics of g.
func (s SufficientStats) Group(g Group) GroupStats {
	return s[g.Index()]
}

// RequireAllGroups returns errs.ErrEmptyGroup if any group has no observations.
//
// A zero count would make that group's mean 0/0; callers relying on the group
// means reject such datasets instead of producing NaN chains.
func (s SufficientStats) RequireAllGroups() error {
	for _, g := range Groups {
		if s[g.Index()].Count == 0 {
			return fmt.Errorf("%w: %s", errs.ErrEmptyGroup, g)
		}
	}

	return nil
}

func computeStats(rows []Observation) SufficientStats {
	var sums [NumGroups][2]float64
	var stats SufficientStats
	for _, o := range rows {
		i := o.Group.Index()
		stats[i].Count++
		sums[i][0] += o.X1
		sums[i][1] += o.X2
	}

	for i := range stats {
		n := stats[i].Count
		if n == 0 {
			continue
		}
		stats[i].Mean1 = sums[i][0] / float64(n)
		stats[i].Mean2 = sums[i][1] / float64(n)
	}

	return stats
}
