package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors. The typed errors below match these via errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrAlreadyRegistered = errors.New("registrant already registered")
	ErrGateway           = errors.New("payment gateway error")
	ErrInvalidInput      = errors.New("invalid input")

	// ErrChargeOutcomeUnknown is returned when the gateway did not give a
	// definite answer (timeout, transport failure, 5xx). The charge may have
	// succeeded server-side.
	ErrChargeOutcomeUnknown = errors.New("charge outcome unknown")
)

// Resource kinds used in NotFoundError and AlreadyExistsError.
const (
	KindEvent        = "Event"
	KindRegistrant   = "Registrant"
	KindRegistration = "Registration"
	KindPayment      = "Payment"
)

// NotFoundError is returned when a single resource lookup misses.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found whose key is %q", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AlreadyExistsError is returned when a uniqueness key (email, year, charge
// source token) is already taken.
type AlreadyExistsError struct {
	Kind string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	switch e.Kind {
	case KindRegistrant:
		return "Email address already belongs to a Registrant"
	case KindEvent:
		return fmt.Sprintf("Event already exists for the year %s", e.Key)
	case KindPayment:
		return "A payment exists with the charge source provided. To prevent a duplicate payment, your request refused to process."
	}
	return fmt.Sprintf("%s already exists for key %q", e.Kind, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

// AlreadyRegisteredError is returned when a registrant already holds a
// registration for the event.
type AlreadyRegisteredError struct {
	RegistrantID string
	EventID      string
	Year         int
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("Registrant is already registered for %d", e.Year)
}

func (e *AlreadyRegisteredError) Is(target error) bool { return target == ErrAlreadyRegistered }

// GatewayErrorDetail is one entry of a gateway error response.
type GatewayErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail,omitempty"`
	Field    string `json:"field,omitempty"`
}

// GatewayError is a definite error response from the payment gateway. It is
// passed through to callers unchanged.
type GatewayError struct {
	StatusCode int
	Errors     []GatewayErrorDetail
}

func (e *GatewayError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("payment gateway returned status %d", e.StatusCode)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		if d.Detail != "" {
			parts = append(parts, d.Code+": "+d.Detail)
			continue
		}
		parts = append(parts, d.Code)
	}
	return fmt.Sprintf("payment gateway returned status %d: %s", e.StatusCode, strings.Join(parts, "; "))
}

func (e *GatewayError) Is(target error) bool { return target == ErrGateway }

// gatewayTimeoutCode is the error code Square returns with a 408.
const gatewayTimeoutCode = "REQUEST_TIMEOUT"

// Timeout reports whether the gateway gave up on the request without a
// result. The charge may still have been taken.
func (e *GatewayError) Timeout() bool {
	if e.StatusCode == http.StatusRequestTimeout {
		return true
	}
	for _, d := range e.Errors {
		if d.Code == gatewayTimeoutCode {
			return true
		}
	}
	return false
}

// Code returns the first error code, or an empty string.
func (e *GatewayError) Code() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Code
}
