package orderapi

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorKindAuth        ErrorKind = "auth_failure"
	ErrorKindEligibility ErrorKind = "eligibility_failure"
	ErrorKindPayment     ErrorKind = "payment_failure"
	ErrorKindConflict    ErrorKind = "conflict"
	ErrorKindValidation  ErrorKind = "validation_failure"
	ErrorKindGeneric     ErrorKind = "generic_failure"
)

// MutationError is the uniform outcome type for every order mutation. The
// backend's own message is kept for structured logs only; anything shown to
// an end user must go through the eligibility classifier instead.
type MutationError struct {
	Kind           ErrorKind
	Retryable      bool
	HTTPStatus     int
	BackendCode    string
	BackendMessage string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s (status: %d, code: %s): %s", e.Kind, e.HTTPStatus, e.BackendCode, e.BackendMessage)
}

func NewAuthFailure(httpStatus int, code string, message string) *MutationError {
	return &MutationError{Kind: ErrorKindAuth, HTTPStatus: httpStatus, BackendCode: code, BackendMessage: message}
}

func NewEligibilityFailure(code string, message string) *MutationError {
	return &MutationError{Kind: ErrorKindEligibility, HTTPStatus: 400, BackendCode: code, BackendMessage: message}
}

func NewPaymentFailure(retryable bool, code string, message string) *MutationError {
	return &MutationError{Kind: ErrorKindPayment, Retryable: retryable, HTTPStatus: 402, BackendCode: code, BackendMessage: message}
}

func NewConflict(code string, message string) *MutationError {
	return &MutationError{Kind: ErrorKindConflict, HTTPStatus: 409, BackendCode: code, BackendMessage: message}
}

func NewValidationFailure(message string) *MutationError {
	return &MutationError{Kind: ErrorKindValidation, HTTPStatus: 400, BackendMessage: message}
}

func NewGenericFailure(httpStatus int, code string, message string) *MutationError {
	return &MutationError{Kind: ErrorKindGeneric, HTTPStatus: httpStatus, BackendCode: code, BackendMessage: message}
}

// AsMutationError unwraps err into a MutationError. Unknown errors (network
// failures, unexpected shapes) are normalized into a generic failure so the
// taxonomy is total at the gateway boundary.
func AsMutationError(err error) *MutationError {
	var mutErr *MutationError
	if errors.As(err, &mutErr) {
		return mutErr
	}

	return &MutationError{Kind: ErrorKindGeneric, HTTPStatus: 0, BackendMessage: err.Error()}
}
