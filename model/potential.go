package model

import "math"

// Position indices of the HMC coordinate vector q, which shares the
// ParamNames order.
const (
	IdxS = iota
	IdxTau
	IdxMu1
	IdxMu2
	IdxGamma1
	IdxGamma2
)

var log2Pi = math.Log(2 * math.Pi)

// Potential returns the HMC potential energy
//
//	U(q) = N*log(2*pi) + (N+1)*log(s) + sum_rows r^2 / (2*s)
//
// where r^2 is the squared distance of a row from its group mean. U is +Inf
// for s <= 0, so proposals outside the support are always rejected.
func Potential(d *Dataset, q [NumParams]float64) float64 {
	s := q[IdxS]
	if !(s > 0) {
		return math.Inf(1)
	}

	n := float64(len(d.rows))
	u := n*log2Pi + (n+1)*math.Log(s)

	p := ParamsFromVector(q)
	for _, o := range d.rows {
		m1, m2 := GroupMeans(o.Group, p)
		r1, r2 := o.X1-m1, o.X2-m2
		u += (r1*r1 + r2*r2) / (2 * s)
	}

	return u
}

// Gradient returns dU/dq for Potential.
func Gradient(d *Dataset, q [NumParams]float64) [NumParams]float64 {
	var du [NumParams]float64

	s, tau := q[IdxS], q[IdxTau]
	n := float64(len(d.rows))
	du[IdxS] = (n + 1) / s

	p := ParamsFromVector(q)
	for _, o := range d.rows {
		m1, m2 := GroupMeans(o.Group, p)
		r1, r2 := o.X1-m1, o.X2-m2
		du[IdxS] -= (r1*r1 + r2*r2) / (2 * s * s)

		switch o.Group {
		case Group1:
			du[IdxMu1] -= r1 / s
			du[IdxMu2] -= r2 / s
		case Group2:
			du[IdxGamma1] -= r1 / s
			du[IdxGamma2] -= r2 / s
		case Group3:
			h1, h2 := r1/(2*s), r2/(2*s)
			du[IdxMu1] -= h1
			du[IdxMu2] -= h2
			du[IdxGamma1] -= h1
			du[IdxGamma2] -= h2
		case Group4:
			du[IdxTau] += (r1*(q[IdxGamma1]-q[IdxMu1]) + r2*(q[IdxGamma2]-q[IdxMu2])) / s
			w1, w2 := r1/s, r2/s
			du[IdxMu1] -= tau * w1
			du[IdxMu2] -= tau * w2
			du[IdxGamma1] -= (1 - tau) * w1
			du[IdxGamma2] -= (1 - tau) * w2
		}
	}

	return du
}
