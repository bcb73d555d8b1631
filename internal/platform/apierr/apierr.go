package apierr

import (
	"errors"
	"fmt"
)

const (
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodePlanLimitReached  = "PLAN_LIMIT_REACHED"
	CodeValidation        = "VALIDATION"
	CodeSimulationFailed  = "SIMULATION_FAILED"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Code extracts the api error code from err's chain, or "" when none.
func Code(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func IsInsufficientFunds(err error) bool {
	return Code(err) == CodeInsufficientFunds
}

func IsPlanLimit(err error) bool {
	return Code(err) == CodePlanLimitReached
}
