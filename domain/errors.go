package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	ErrUnimplemented = errors.New("Unimplemented")
	ErrUnauthorized  = errors.New("Unauthorized")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
	ErrInvalidAssetId = errors.New("invalid asset id")

	// ledger error
	ErrUnknownEvent    = errors.New("unknown event")
	ErrNilCredential   = errors.New("nil credential")
	ErrSignerMismatch  = errors.New("signature does not recover to sender")
	ErrWaitTimeout     = errors.New("timed out waiting for submission outcome")
	ErrOutcomeDropped  = errors.New("submission outcome channel closed without outcome")
	ErrUnsupportedMode = errors.New("unsupported mode")
)

// SigningError is a local credential or signing failure. Nothing has been
// submitted when it is returned.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing failed: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// SubmissionError is a transaction failure reported by the ledger: rejected
// on submit, or included and reverted. Reason is the ledger's wording.
type SubmissionError struct {
	TxHash TxHash
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	return e.Reason
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// TransportError is a connectivity failure between us and the ledger node
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
