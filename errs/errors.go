// Package errs defines the sentinel errors shared by the mixmc packages.
//
// Callers should match them with errors.Is; most call sites wrap them with
// additional context such as a row number or a parameter name.
package errs

import "errors"

// Dataset errors.
var (
	// ErrInvalidGroup is returned when an observation carries a group code outside 1..4.
	ErrInvalidGroup = errors.New("invalid group code")
	// ErrEmptyDataset is returned when a dataset has no observations.
	ErrEmptyDataset = errors.New("dataset has no observations")
	// ErrNonFinite is returned when an observation coordinate is NaN or infinite.
	ErrNonFinite = errors.New("non-finite observation value")
	// ErrEmptyGroup is returned when an engine needs every group populated and one is empty.
	ErrEmptyGroup = errors.New("group has no observations")
)

// Engine errors.
var (
	// ErrInvalidCount is returned for negative burn-in, sample or iteration counts.
	ErrInvalidCount = errors.New("invalid iteration count")
	// ErrInvalidScale is returned when a proposal scale, step size or mass is not positive.
	ErrInvalidScale = errors.New("scale must be positive and finite")
	// ErrInvalidParams is returned when a starting state violates s > 0 or 0 < tau < 1.
	ErrInvalidParams = errors.New("invalid parameter state")
	// ErrTauRejection is returned when the truncated tau draw exhausts its attempt budget.
	ErrTauRejection = errors.New("tau rejection sampling exhausted")
	// ErrDegenerateWeights is returned when no importance draw has a usable weight.
	ErrDegenerateWeights = errors.New("all importance weights are zero or undefined")
)

// Chain errors.
var (
	// ErrEmptyChain is returned when summarizing a chain without samples.
	ErrEmptyChain = errors.New("chain has no samples")
	// ErrNaNInChain is returned when a chain holds NaN values and cannot be ordered.
	ErrNaNInChain = errors.New("chain contains NaN")
	// ErrInvalidHeader is returned when a CSV header does not match the expected columns.
	ErrInvalidHeader = errors.New("invalid CSV header")
)
