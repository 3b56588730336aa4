package chain

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/internal/pool"
	"github.com/arloliu/mixmc/model"
)

// Percentiles reported by Summarize.
const (
	LowerPercentile = 0.05
	UpperPercentile = 0.95
)

// ParamSummary holds the posterior mean and the empirical 5th and 95th
// percentiles of one parameter.
type ParamSummary struct {
	Name  string
	Mean  float64
	Lower float64
	Upper float64
}

// Summary holds one ParamSummary per parameter, in model.ParamNames order.
type Summary struct {
	Engine  string
	Samples int
	Params  [model.NumParams]ParamSummary
}

// Summarize computes per-parameter means and percentiles of c.
//
// Percentiles use the order statistic sorted[floor(n*p)]. A chain holding any
// NaN is rejected with errs.ErrNaNInChain, since NaN has no place in a sort
// order.
func Summarize(c *Chain) (*Summary, error) {
	if c == nil || c.Len() == 0 {
		return nil, errs.ErrEmptyChain
	}

	col, release := pool.GetFloat64Slice(c.Len())
	defer release()

	sum := &Summary{Engine: c.Engine(), Samples: c.Len()}
	for i, name := range model.ParamNames {
		col = c.ColumnInto(i, col)
		if floats.HasNaN(col) {
			return nil, fmt.Errorf("%w: parameter %s", errs.ErrNaNInChain, name)
		}

		mean := stat.Mean(col, nil)
		slices.Sort(col)
		sum.Params[i] = ParamSummary{
			Name:  name,
			Mean:  mean,
			Lower: Quantile(col, LowerPercentile),
			Upper: Quantile(col, UpperPercentile),
		}
	}

	return sum, nil
}

// Quantile returns sorted[floor(len(sorted)*p)], clamped to the last element.
// sorted must be non-empty and in ascending order.
func Quantile(sorted []float64, p float64) float64 {
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}

	return sorted[idx]
}

// String renders one line per parameter as "name: mean [lower, upper]".
func (s *Summary) String() string {
	var sb strings.Builder
	for i, ps := range s.Params {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %.3f [%.3f, %.3f]", ps.Name, ps.Mean, ps.Lower, ps.Upper)
	}

	return sb.String()
}
