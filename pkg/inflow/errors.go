package inflow

import (
	"fmt"
	"math"
)

// Reason classifies why an input was rejected.
type Reason string

const (
	ReasonInvalidParameter       Reason = "invalid parameter"
	ReasonNonPositiveDrawdown    Reason = "non-positive drawdown"
	ReasonNonPositiveAquifer     Reason = "non-positive aquifer thickness"
	ReasonDrawdownExceedsAquifer Reason = "drawdown exceeds aquifer thickness"
	ReasonDegenerateRadius       Reason = "degenerate radius"
	ReasonFlowOutOfRange         Reason = "flow out of range"
)

// InvalidInputError is returned when the inputs fall outside the domain of
// the formulas. No partial result accompanies it.
type InvalidInputError struct {
	Reason Reason
	Field  string
	Value  float64
	Detail string
}

func (e *InvalidInputError) Error() string {
	msg := "invalid input: " + string(e.Reason)
	if e.Field != "" {
		msg += fmt.Sprintf(": %s = %v", e.Field, e.Value)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Is matches any InvalidInputError with the same reason, so callers can use
// errors.Is against the Err* values below.
func (e *InvalidInputError) Is(target error) bool {
	t, ok := target.(*InvalidInputError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

var (
	ErrInvalidParameter       = &InvalidInputError{Reason: ReasonInvalidParameter}
	ErrNonPositiveDrawdown    = &InvalidInputError{Reason: ReasonNonPositiveDrawdown}
	ErrNonPositiveAquifer     = &InvalidInputError{Reason: ReasonNonPositiveAquifer}
	ErrDrawdownExceedsAquifer = &InvalidInputError{Reason: ReasonDrawdownExceedsAquifer}
	ErrDegenerateRadius       = &InvalidInputError{Reason: ReasonDegenerateRadius}
	ErrFlowOutOfRange         = &InvalidInputError{Reason: ReasonFlowOutOfRange}
)

func invalid(reason Reason, field string, value float64, detail string) *InvalidInputError {
	return &InvalidInputError{Reason: reason, Field: field, Value: value, Detail: detail}
}

// checkFlow rejects a flow that is not a positive finite number, which
// happens only when the inputs are too large to evaluate in float64.
func checkFlow(q float64) error {
	if q > 0 && !math.IsInf(q, 0) {
		return nil
	}
	return invalid(ReasonFlowOutOfRange, "Q", q, "inputs are too large to evaluate")
}
