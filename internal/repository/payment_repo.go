package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventregistration/internal/domain"
)

const defaultCurrency = "USD"

type paymentRepository struct {
	store         domain.DocumentStore
	registrants   domain.RegistrantRepository
	registrations domain.RegistrationRepository
	now           func() time.Time
}

func NewPaymentRepository(store domain.DocumentStore, registrants domain.RegistrantRepository, registrations domain.RegistrationRepository) domain.PaymentRepository {
	return &paymentRepository{
		store:         store,
		registrants:   registrants,
		registrations: registrations,
		now:           utcNow,
	}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	// Both lookups only prove existence.
	if _, err := r.registrants.GetByID(ctx, p.RegistrantID); err != nil {
		return err
	}
	if _, err := r.registrations.GetByID(ctx, p.RegistrationID); err != nil {
		return err
	}
	sourceID := strings.TrimSpace(p.SourceID)
	if sourceID == "" {
		return fmt.Errorf("%w: sourceId is required", domain.ErrInvalidInput)
	}

	alreadyExists := &domain.AlreadyExistsError{Kind: domain.KindPayment, Key: sourceID}
	existing, err := r.store.QueryByField(ctx, domain.CollectionPayments, "sourceId", sourceID)
	if err != nil {
		return fmt.Errorf("query payments by source: %w", err)
	}
	if len(existing) > 0 {
		return alreadyExists
	}

	now := r.now()
	created := *p
	created.SourceID = sourceID
	if created.Currency == "" {
		created.Currency = defaultCurrency
	}
	if created.IdempotencyKey == "" {
		created.IdempotencyKey = uuid.NewString()
	}
	created.Status = domain.PaymentStatusPending
	created.ReceiptURL = ""
	created.GatewayPaymentID = ""
	created.CreatedAt, created.UpdatedAt, created.DeletedAt = now, now, nil
	data, err := encode(&created)
	if err != nil {
		return err
	}
	doc, err := insertIfAbsent(ctx, r.store, domain.CollectionPayments, sourceID, data)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentExists) {
			return alreadyExists
		}
		return fmt.Errorf("create payment: %w", err)
	}
	created.ID = doc.ID
	*p = created
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	doc, err := r.store.GetByID(ctx, domain.CollectionPayments, id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, &domain.NotFoundError{Kind: domain.KindPayment, ID: id}
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return decodePayment(doc)
}

func (r *paymentRepository) GetMany(ctx context.Context) ([]*domain.Payment, error) {
	docs, err := r.store.List(ctx, domain.CollectionPayments)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	payments := make([]*domain.Payment, 0, len(docs))
	for _, doc := range docs {
		p, err := decodePayment(doc)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r *paymentRepository) AttachReceipt(ctx context.Context, id string, receipt *domain.Receipt) error {
	patch := map[string]any{
		"receiptUrl":       receipt.ReceiptURL,
		"gatewayPaymentId": receipt.ID,
		"status":           domain.PaymentStatusCompleted,
		"updatedAt":        r.now(),
	}
	if err := r.store.Update(ctx, domain.CollectionPayments, id, patch); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return &domain.NotFoundError{Kind: domain.KindPayment, ID: id}
		}
		return fmt.Errorf("attach receipt: %w", err)
	}
	return nil
}

// Delete physically removes the payment.
func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, domain.CollectionPayments, id); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return &domain.NotFoundError{Kind: domain.KindPayment, ID: id}
		}
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

func decodePayment(doc *domain.Document) (*domain.Payment, error) {
	p := &domain.Payment{}
	if err := decode(doc, p); err != nil {
		return nil, err
	}
	p.ID = doc.ID
	return p, nil
}
