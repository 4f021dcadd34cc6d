package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork        = errors.New("network error")
	ErrServer         = errors.New("server error")
	ErrClientNotFound = errors.New("client not found")
	ErrValidation     = errors.New("request rejected")

	ErrIdentityRequired  = errors.New("client id required")
	ErrAlreadySubmitting = errors.New("action already in flight")
)

// GatewayError carries the gateway's own message next to one of the
// sentinel kinds above.
type GatewayError struct {
	Kind    error
	Op      string
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Kind
}
