package domain

import (
	"context"
	"time"
)

// PaymentStatus tracks whether the gateway charge has completed.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Payment is a charge record tied to one registration. SourceID is the
// single-use charge source token and is unique across payments.
// swagger:model Payment
type Payment struct {
	ID                  string        `json:"id"`
	RegistrantID        string        `json:"registrantId"`
	RegistrationID      string        `json:"registrationId"`
	CustomerID          string        `json:"customerId,omitempty"`
	SourceID            string        `json:"sourceId"`
	Amount              int64         `json:"amount"`
	Currency            string        `json:"currency"`
	LocationID          string        `json:"locationId"`
	IdempotencyKey      string        `json:"idempotencyKey"`
	StatementDescriptor string        `json:"statementDescriptionIdentifier"`
	Status              PaymentStatus `json:"status"`
	GatewayPaymentID    string        `json:"gatewayPaymentId,omitempty"`
	ReceiptURL          string        `json:"receiptUrl,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
	DeletedAt           *time.Time    `json:"deletedAt"`
}

// PaymentRepository defines the interface for payment storage.
type PaymentRepository interface {
	// Create persists a pending payment. It fails when the registrant or
	// registration is missing or when SourceID was already used.
	Create(ctx context.Context, payment *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	GetMany(ctx context.Context) ([]*Payment, error)
	AttachReceipt(ctx context.Context, id string, receipt *Receipt) error
	Delete(ctx context.Context, id string) error
}

// PaymentProcessor charges a recorded payment through the gateway.
type PaymentProcessor interface {
	Charge(ctx context.Context, payment *Payment) (*Receipt, error)
}
