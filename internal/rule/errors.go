package rule

import (
	"errors"
	"fmt"
)

// ConfigError reports a rule that cannot be built or whose calibration data is
// inconsistent. No partial table is ever returned alongside a ConfigError.
type ConfigError struct {
	// Code identifies the error category.
	Code ConfigErrorCode

	// Order is the requested or offending order.
	Order Order

	// Message is a human-readable description.
	Message string
}

// ConfigErrorCode categorizes configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeUnsupportedOrder indicates no calibration table exists for the order.
	ErrCodeUnsupportedOrder ConfigErrorCode = "UNSUPPORTED_ORDER"

	// ErrCodeCalibrationInvalid indicates a table violates a rule invariant.
	ErrCodeCalibrationInvalid ConfigErrorCode = "CALIBRATION_INVALID"
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s (order=%d)", e.Code, e.Message, int(e.Order))
}

// IsUnsupportedOrder returns true if err is an unsupported order error.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedOrder(err error) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeUnsupportedOrder
	}
	return false
}

// IsCalibrationInvalid returns true if err reports a broken calibration table.
func IsCalibrationInvalid(err error) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeCalibrationInvalid
	}
	return false
}

func newUnsupportedOrderError(o Order) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnsupportedOrder,
		Order:   o,
		Message: fmt.Sprintf("no Gauss-Legendre table for order %d, supported orders are %v", int(o), SupportedOrders()),
	}
}

func newCalibrationError(o Order, format string, args ...any) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeCalibrationInvalid,
		Order:   o,
		Message: fmt.Sprintf(format, args...),
	}
}
