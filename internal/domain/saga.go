package domain

import (
	"context"
	"fmt"
)

// SagaState names a point in the registration saga.
type SagaState string

const (
	StateStart               SagaState = "START"
	StateRegistrantResolved  SagaState = "REGISTRANT_RESOLVED"
	StateCustomerResolved    SagaState = "CUSTOMER_RESOLVED"
	StateEventSelected       SagaState = "EVENT_SELECTED"
	StateRegistrationCreated SagaState = "REGISTRATION_CREATED"
	StatePaymentRecorded     SagaState = "PAYMENT_RECORDED"
	StateCharged             SagaState = "CHARGED"
	StateNotified            SagaState = "NOTIFIED"
)

// StepError reports the transition that failed. State is the state the saga
// was trying to reach.
type StepError struct {
	State SagaState
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("registration saga: %s: %v", e.State, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// RegistrationRequest is the input of a full registration: registrant
// profile, enrollment choices and payment details. IDs that the saga produces
// (registrant, event, registration) are ignored if set.
type RegistrationRequest struct {
	Registrant   Registrant
	Registration Registration
	Payment      Payment
}

// RegistrationResult is returned on full success.
type RegistrationResult struct {
	Registrant   *Registrant   `json:"registrant"`
	Registration *Registration `json:"registration"`
	Payment      *Payment      `json:"payment"`
	Event        *Event        `json:"event"`
}

// RegistrationService runs the full registration saga.
type RegistrationService interface {
	Register(ctx context.Context, req *RegistrationRequest) (*RegistrationResult, error)
}
