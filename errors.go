package malariasim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned for any out-of-range construction parameter.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError names the parameter that failed validation.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s = %v: %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// CheckProbability returns a *ParameterError unless v lies in [0,1].
func CheckProbability(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return &ParameterError{Name: name, Value: v, Reason: "must be within [0, 1]"}
	}
	return nil
}
