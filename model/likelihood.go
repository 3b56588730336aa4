package model

import (
	"fmt"
	"math"
)

// Pnorm is the unnormalized normal density exp(-(x-mean)^2/(2v)) / sqrt(v).
//
// v is a variance. The 1/sqrt(2*pi) factor is omitted; it cancels in every
// ratio the engines compute.
func Pnorm(x, mean, v float64) float64 {
	d := x - mean
	return math.Exp(-d*d/2/v) / math.Sqrt(v)
}

// LogPnorm is log(Pnorm(x, mean, v)).
func LogPnorm(x, mean, v float64) float64 {
	d := x - mean
	return -d*d/2/v - 0.5*math.Log(v)
}

// GroupMeans returns the mean of (x1, x2) for group g under p.
func GroupMeans(g Group, p Params) (float64, float64) {
	switch g {
	case Group1:
		return p.Mu1, p.Mu2
	case Group2:
		return p.Gamma1, p.Gamma2
	case Group3:
		return 0.5*p.Mu1 + 0.5*p.Gamma1, 0.5*p.Mu2 + 0.5*p.Gamma2
	case Group4:
		return p.Tau*p.Mu1 + (1-p.Tau)*p.Gamma1, p.Tau*p.Mu2 + (1-p.Tau)*p.Gamma2
	default:
		// NewDataset rejects invalid groups, so this is unreachable for dataset rows.
		panic(fmt.Sprintf("model: invalid group %d", uint8(g)))
	}
}

// RowLikelihood is Pnorm(x1, m1, s) * Pnorm(x2, m2, s) / s.
func RowLikelihood(o Observation, p Params) float64 {
	m1, m2 := GroupMeans(o.Group, p)
	return Pnorm(o.X1, m1, p.S) * Pnorm(o.X2, m2, p.S) / p.S
}

// RowLogLikelihood is log(RowLikelihood(o, p)).
func RowLogLikelihood(o Observation, p Params) float64 {
	m1, m2 := GroupMeans(o.Group, p)
	return LogPnorm(o.X1, m1, p.S) + LogPnorm(o.X2, m2, p.S) - math.Log(p.S)
}

// Likelihood is the product of RowLikelihood over d. It underflows for large
// datasets; engines use LogLikelihood.
func Likelihood(d *Dataset, p Params) float64 {
	l := 1.0
	for _, o := range d.rows {
		l *= RowLikelihood(o, p)
	}

	return l
}

// LogLikelihood is the sum of RowLogLikelihood over d.
func LogLikelihood(d *Dataset, p Params) float64 {
	var ll float64
	for _, o := range d.rows {
		ll += RowLogLikelihood(o, p)
	}

	return ll
}

// LogLikelihoodRatio returns log(L(next) / L(cur)).
func LogLikelihoodRatio(d *Dataset, next, cur Params) float64 {
	return LogLikelihood(d, next) - LogLikelihood(d, cur)
}
