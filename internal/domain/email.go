package domain

import "context"

// Notifier sends a templated message (infrastructure port).
type Notifier interface {
	Send(ctx context.Context, templateID, recipient string, vars map[string]any) error
}

// RegistrationReceiptData holds data for the registration confirmation message.
type RegistrationReceiptData struct {
	Email           string
	FirstName       string
	LastName        string
	Amenity         Amenity
	RoommateRequest RoommateRequest
	SundayLunch     bool
	EventYear       int
	ReceiptURL      string
}

// NotificationService defines the contract for sending domain-level messages.
type NotificationService interface {
	SendRegistrationReceipt(ctx context.Context, data *RegistrationReceiptData) error
}
