package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"eventregistration/internal/domain"
)

type eventRepository struct {
	store domain.DocumentStore
	now   func() time.Time
}

func NewEventRepository(store domain.DocumentStore) domain.EventRepository {
	return &eventRepository{store: store, now: utcNow}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	now := r.now()
	e.CreatedAt, e.UpdatedAt, e.DeletedAt = now, now, nil
	data, err := encode(e)
	if err != nil {
		return err
	}
	key := strconv.Itoa(e.Year)
	doc, err := insertIfAbsent(ctx, r.store, domain.CollectionEvents, key, data)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentExists) {
			return &domain.AlreadyExistsError{Kind: domain.KindEvent, Key: key}
		}
		return fmt.Errorf("create event: %w", err)
	}
	e.ID = doc.ID
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	doc, err := r.store.GetByID(ctx, domain.CollectionEvents, id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, &domain.NotFoundError{Kind: domain.KindEvent, ID: id}
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return decodeEvent(doc)
}

func (r *eventRepository) GetMany(ctx context.Context) ([]*domain.Event, error) {
	docs, err := r.store.List(ctx, domain.CollectionEvents)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]*domain.Event, 0, len(docs))
	for _, doc := range docs {
		e, err := decodeEvent(doc)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *eventRepository) MostRecent(ctx context.Context) (*domain.Event, error) {
	docs, err := r.store.List(ctx, domain.CollectionEvents)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if len(docs) == 0 {
		return nil, &domain.NotFoundError{Kind: domain.KindEvent, ID: "latest"}
	}
	latest := docs[0]
	for _, doc := range docs[1:] {
		if doc.Seq > latest.Seq {
			latest = doc
		}
	}
	return decodeEvent(latest)
}

func decodeEvent(doc *domain.Document) (*domain.Event, error) {
	e := &domain.Event{}
	if err := decode(doc, e); err != nil {
		return nil, err
	}
	e.ID = doc.ID
	return e, nil
}
