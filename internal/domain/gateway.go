package domain

import "context"

// ChargeRequest is what the gateway needs to create a charge.
type ChargeRequest struct {
	SourceID            string
	Amount              int64
	Currency            string
	IdempotencyKey      string
	StatementDescriptor string
	LocationID          string
	CustomerID          string
}

// Receipt is the gateway's record of a successful charge.
type Receipt struct {
	ID         string `json:"id"`
	ReceiptURL string `json:"receiptUrl"`
	Status     string `json:"status"`
}

// Customer is a billing identity held by the gateway.
type Customer struct {
	ID           string `json:"id"`
	EmailAddress string `json:"emailAddress"`
}

// PaymentGateway is the external payment provider. Charge returns a
// *GatewayError for definite failures and an error wrapping
// ErrChargeOutcomeUnknown when the outcome could not be determined.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*Receipt, error)
	// FindCustomerByEmail returns nil, nil when no customer matches.
	FindCustomerByEmail(ctx context.Context, email string) (*Customer, error)
	CreateCustomer(ctx context.Context, profile *Registrant) (*Customer, error)
}
