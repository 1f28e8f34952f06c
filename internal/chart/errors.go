package chart

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/graha/internal/zodiac"
)

// ErrMissingPlacement indicates a chart has no placement for a body that a
// caller needs.
var ErrMissingPlacement = errors.New("missing placement")

// MissingPlacementError names the body that was absent.
type MissingPlacementError struct {
	Body zodiac.Body
}

func (e *MissingPlacementError) Error() string {
	return fmt.Sprintf("chart: %s: %s", ErrMissingPlacement, e.Body)
}

// Unwrap returns ErrMissingPlacement so callers can use errors.Is.
func (e *MissingPlacementError) Unwrap() error {
	return ErrMissingPlacement
}

// DerivationError reports that a derived body could not be computed because
// the observation it derives from failed. Err is the source failure, usually
// an *ephemeris.OracleError.
type DerivationError struct {
	Body   zodiac.Body
	Source zodiac.Body
	Err    error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("chart: derive %s from %s: %v", e.Body, e.Source, e.Err)
}

// Unwrap returns the source failure.
func (e *DerivationError) Unwrap() error {
	return e.Err
}
