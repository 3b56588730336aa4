// Package importance implements a self-normalized importance estimator of the
// posterior mean of the mixmc parameters.
//
// Unlike the chain engines it returns a single point estimate. Each of the
// niter draws comes independently from a fixed trial distribution (see
// Trial), receives the weight
//
//	w = L(theta) / trial(theta)
//
// and the estimate is sum(w*theta) / sum(w). There is no resampling and no
// effective-sample-size diagnostic.
//
// The mean draws use MeanSD as a standard deviation, and the trial density
// evaluates them with model.Pnorm at variance MeanSD^2, so the density matches
// the draws up to a constant.
package importance
