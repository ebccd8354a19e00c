package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventregistration/internal/domain"
)

type registrantRepository struct {
	store domain.DocumentStore
	now   func() time.Time
}

func NewRegistrantRepository(store domain.DocumentStore) domain.RegistrantRepository {
	return &registrantRepository{store: store, now: utcNow}
}

func (r *registrantRepository) Create(ctx context.Context, reg *domain.Registrant) error {
	email := domain.NormalizeEmail(reg.EmailAddress)
	if email == "" {
		return fmt.Errorf("%w: emailAddress is required", domain.ErrInvalidInput)
	}
	now := r.now()
	created := *reg
	created.EmailAddress = email
	created.CreatedAt, created.UpdatedAt, created.DeletedAt = now, now, nil
	data, err := encode(&created)
	if err != nil {
		return err
	}
	doc, err := insertIfAbsent(ctx, r.store, domain.CollectionRegistrants, email, data)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentExists) {
			return &domain.AlreadyExistsError{Kind: domain.KindRegistrant, Key: email}
		}
		return fmt.Errorf("create registrant: %w", err)
	}
	created.ID = doc.ID
	*reg = created
	return nil
}

func (r *registrantRepository) GetByID(ctx context.Context, id string) (*domain.Registrant, error) {
	doc, err := r.store.GetByID(ctx, domain.CollectionRegistrants, id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, &domain.NotFoundError{Kind: domain.KindRegistrant, ID: id}
		}
		return nil, fmt.Errorf("get registrant: %w", err)
	}
	return decodeRegistrant(doc)
}

func (r *registrantRepository) GetByEmail(ctx context.Context, email string) (*domain.Registrant, error) {
	email = domain.NormalizeEmail(email)
	docs, err := r.store.QueryByField(ctx, domain.CollectionRegistrants, "emailAddress", email)
	if err != nil {
		return nil, fmt.Errorf("query registrant by email: %w", err)
	}
	if len(docs) == 0 {
		return nil, &domain.NotFoundError{Kind: domain.KindRegistrant, ID: email}
	}
	return decodeRegistrant(oldest(docs))
}

func (r *registrantRepository) GetMany(ctx context.Context) ([]*domain.Registrant, error) {
	docs, err := r.store.List(ctx, domain.CollectionRegistrants)
	if err != nil {
		return nil, fmt.Errorf("list registrants: %w", err)
	}
	registrants := make([]*domain.Registrant, 0, len(docs))
	for _, doc := range docs {
		reg, err := decodeRegistrant(doc)
		if err != nil {
			return nil, err
		}
		registrants = append(registrants, reg)
	}
	return registrants, nil
}

// Upsert is not atomic: the lookup after a failed create and the update are
// separate store calls.
func (r *registrantRepository) Upsert(ctx context.Context, reg *domain.Registrant) (*domain.Registrant, error) {
	created := *reg
	err := r.Create(ctx, &created)
	if err == nil {
		return &created, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return nil, err
	}

	existing, err := r.GetByEmail(ctx, reg.EmailAddress)
	if err != nil {
		return nil, err
	}
	existing.Merge(reg)
	existing.EmailAddress = domain.NormalizeEmail(existing.EmailAddress)
	existing.UpdatedAt = r.now()

	patch, err := toPatch(existing)
	if err != nil {
		return nil, err
	}
	if err := r.store.Update(ctx, domain.CollectionRegistrants, existing.ID, patch); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, &domain.NotFoundError{Kind: domain.KindRegistrant, ID: existing.ID}
		}
		return nil, fmt.Errorf("update registrant: %w", err)
	}
	return existing, nil
}

func decodeRegistrant(doc *domain.Document) (*domain.Registrant, error) {
	reg := &domain.Registrant{}
	if err := decode(doc, reg); err != nil {
		return nil, err
	}
	reg.ID = doc.ID
	return reg, nil
}
