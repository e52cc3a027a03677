package canon

import (
	"errors"
	"fmt"

	"github.com/roach88/powcanon/internal/power"
)

// UnsupportedPowerError reports a descriptor whose regime has no lowering.
// Descriptors built by power.Normalize never produce one; seeing it means
// the regime set and the lowering table are out of sync.
type UnsupportedPowerError struct {
	Regime   power.Regime
	Exponent string
}

// Error implements the error interface.
func (e *UnsupportedPowerError) Error() string {
	return fmt.Sprintf("unsupported power: regime %s with exponent %s has no lowering", e.Regime, e.Exponent)
}

// IsUnsupportedPower returns true if the error is an UnsupportedPowerError.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedPower(err error) bool {
	var ue *UnsupportedPowerError
	return errors.As(err, &ue)
}
