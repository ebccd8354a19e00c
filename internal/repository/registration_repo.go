package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventregistration/internal/domain"
)

type registrationRepository struct {
	store       domain.DocumentStore
	registrants domain.RegistrantRepository
	events      domain.EventRepository
	now         func() time.Time
}

func NewRegistrationRepository(store domain.DocumentStore, registrants domain.RegistrantRepository, events domain.EventRepository) domain.RegistrationRepository {
	return &registrationRepository{
		store:       store,
		registrants: registrants,
		events:      events,
		now:         utcNow,
	}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	registrant, err := r.registrants.GetByID(ctx, reg.RegistrantID)
	if err != nil {
		return err
	}
	event, err := r.events.GetByID(ctx, reg.EventID)
	if err != nil {
		return err
	}
	price, ok := reg.Amenity.Price()
	if !ok {
		return fmt.Errorf("%w: unknown amenity %q", domain.ErrInvalidInput, reg.Amenity)
	}

	alreadyRegistered := &domain.AlreadyRegisteredError{
		RegistrantID: registrant.ID,
		EventID:      event.ID,
		Year:         event.Year,
	}
	docs, err := r.store.QueryByField(ctx, domain.CollectionRegistrations, "registrantId", registrant.ID)
	if err != nil {
		return fmt.Errorf("query registrations by registrant: %w", err)
	}
	for _, doc := range docs {
		existing, err := decodeRegistration(doc)
		if err != nil {
			return err
		}
		if existing.EventID == event.ID {
			return alreadyRegistered
		}
	}

	now := r.now()
	created := *reg
	created.RegistrantID = registrant.ID
	created.EventID = event.ID
	created.BalanceDue = price
	created.CreatedAt, created.UpdatedAt, created.DeletedAt = now, now, nil
	data, err := encode(&created)
	if err != nil {
		return err
	}
	doc, err := insertIfAbsent(ctx, r.store, domain.CollectionRegistrations, registrationKey(registrant.ID, event.ID), data)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentExists) {
			return alreadyRegistered
		}
		return fmt.Errorf("create registration: %w", err)
	}
	created.ID = doc.ID
	*reg = created
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	doc, err := r.store.GetByID(ctx, domain.CollectionRegistrations, id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, &domain.NotFoundError{Kind: domain.KindRegistration, ID: id}
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return decodeRegistration(doc)
}

func (r *registrationRepository) GetMany(ctx context.Context) ([]*domain.Registration, error) {
	docs, err := r.store.List(ctx, domain.CollectionRegistrations)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	regs := make([]*domain.Registration, 0, len(docs))
	for _, doc := range docs {
		reg, err := decodeRegistration(doc)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

// Delete physically removes the registration.
func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, domain.CollectionRegistrations, id); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return &domain.NotFoundError{Kind: domain.KindRegistration, ID: id}
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func registrationKey(registrantID, eventID string) string {
	return registrantID + "/" + eventID
}

func decodeRegistration(doc *domain.Document) (*domain.Registration, error) {
	reg := &domain.Registration{}
	if err := decode(doc, reg); err != nil {
		return nil, err
	}
	reg.ID = doc.ID
	return reg, nil
}
