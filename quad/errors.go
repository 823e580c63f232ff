package quad

import "errors"

// Sentinel errors returned by the integration routines. Failing to reach the
// requested tolerance is not an error; it is reported through Result.
var (
	// ErrBadInterval is returned when the lower bound is not strictly below
	// the upper bound, or either bound is not finite.
	ErrBadInterval = errors.New("quad: lower bound must be finite and below upper bound")

	// ErrBadTolerance is returned when a tolerance is negative or NaN, or when
	// both the absolute and the relative tolerance are zero.
	ErrBadTolerance = errors.New("quad: invalid tolerance")

	// ErrBadLimit is returned when the subinterval limit is negative.
	ErrBadLimit = errors.New("quad: subinterval limit must not be negative")
)
