package fusion

import (
	"errors"
	"fmt"
)

// Domain errors for model evaluation.
var (
	// ErrDivisionUndefined indicates a formula divisor that is zero or negative.
	ErrDivisionUndefined = errors.New("fusion: division undefined")
)

// ParamError names the parameter that made a formula undefined.
type ParamError struct {
	Param   string
	Value   float64
	Wrapped error
}

// DivisionUndefined builds a ParamError for a non-positive divisor.
func DivisionUndefined(param string, value float64) *ParamError {
	return &ParamError{Param: param, Value: value, Wrapped: ErrDivisionUndefined}
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s must be positive, got %g", e.Wrapped.Error(), e.Param, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
