package life

import (
	"errors"
	"fmt"
)

// Domain errors for engine operations.
var (
	// ErrConfig indicates an invalid tunable or an unknown preset name.
	ErrConfig = errors.New("life: invalid configuration")

	// ErrIndex indicates a type index outside the interaction matrix.
	ErrIndex = errors.New("life: index out of range")

	// ErrDimensionMismatch indicates a matrix whose size differs from the
	// active type count.
	ErrDimensionMismatch = errors.New("life: dimension mismatch between matrix and type count")
)

// ConfigError wraps ErrConfig with the offending field.
type ConfigError struct {
	Field string
	Value float64
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s = %g", ErrConfig, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}
