package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventregistration/internal/domain"
)

// DefaultReceiptTemplate is the notifier template used for registration receipts.
const DefaultReceiptTemplate = "registration_receipt"

const noRoommateRequest = "None specified"

type notificationService struct {
	notifier        domain.Notifier
	receiptTemplate string
	logger          *slog.Logger
}

// NewNotificationService returns a NotificationService that sends through
// notifier. An empty receiptTemplate falls back to DefaultReceiptTemplate.
func NewNotificationService(notifier domain.Notifier, receiptTemplate string, logger *slog.Logger) domain.NotificationService {
	if receiptTemplate == "" {
		receiptTemplate = DefaultReceiptTemplate
	}
	return &notificationService{notifier: notifier, receiptTemplate: receiptTemplate, logger: logger}
}

// SendRegistrationReceipt sends the confirmation for a paid registration.
func (s *notificationService) SendRegistrationReceipt(ctx context.Context, data *domain.RegistrationReceiptData) error {
	if data == nil {
		return fmt.Errorf("registration receipt data is nil")
	}
	if data.Email == "" {
		return fmt.Errorf("registration receipt recipient is empty")
	}
	if err := s.notifier.Send(ctx, s.receiptTemplate, data.Email, receiptVars(data)); err != nil {
		return fmt.Errorf("failed to send registration receipt: %w", err)
	}
	s.logger.InfoContext(ctx, "registration receipt sent", "template", s.receiptTemplate, "event_year", data.EventYear)
	return nil
}

func receiptVars(data *domain.RegistrationReceiptData) map[string]any {
	roommate := string(data.RoommateRequest)
	if roommate == "" {
		roommate = noRoommateRequest
	}
	sundayLunch := "No"
	if data.SundayLunch {
		sundayLunch = "Yes"
	}
	return map[string]any{
		"firstName":       data.FirstName,
		"lastName":        data.LastName,
		"amenity":         string(data.Amenity),
		"roommateRequest": roommate,
		"sundayLunch":     sundayLunch,
		"eventYear":       data.EventYear,
		"receiptUrl":      data.ReceiptURL,
	}
}
