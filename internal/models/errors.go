package models

import "errors"

// Engine error taxonomy. Computations that merely lack history degrade to
// documented neutral defaults instead of returning these; budget-safety and
// invariant violations always surface as errors.
var (
	// ErrInvalidProfileInput means the physical measurements are malformed
	// (non-positive weight or height, unknown activity level).
	ErrInvalidProfileInput = errors.New("invalid profile input")

	// ErrInsufficientBaselineData means fewer than 5 qualifying observed
	// days exist in the baseline window. The caller decides between
	// waiting and a declared-only estimate; the engine never substitutes.
	ErrInsufficientBaselineData = errors.New("insufficient baseline data")

	// ErrUnsafeBudgetFloor means the synthesized daily target fell below
	// the minimum safe intake. Budget creation is blocked, never clamped.
	ErrUnsafeBudgetFloor = errors.New("synthesized budget below safety floor")

	// ErrMissingBaselineData means rotation was attempted with no prior
	// period and no baseline measurement to carry forward.
	ErrMissingBaselineData = errors.New("missing baseline data")

	// ErrPeriodConflict means an overlapping or second active period was
	// detected. This is an upstream invariant violation; the existing
	// active period is never silently deactivated.
	ErrPeriodConflict = errors.New("conflicting weekly period")

	// ErrReservationInPast means a reservation was requested for a date
	// that has already elapsed.
	ErrReservationInPast = errors.New("reservation date is in the past")
)
