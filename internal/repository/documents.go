// Package repository implements the event, registrant, registration and
// payment repositories on top of a domain.DocumentStore.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eventregistration/internal/domain"
)

// emulatedKeyField holds the uniqueness key when the store cannot insert conditionally.
const emulatedKeyField = "_key"

// insertIfAbsent stores data unless another document of the collection holds
// key. Stores implementing domain.ConditionalInserter do this atomically.
// Other stores get check, create, then re-check: when a concurrent writer
// created the same key, the document with the higher sequence removes itself.
func insertIfAbsent(ctx context.Context, store domain.DocumentStore, collection, key string, data json.RawMessage) (*domain.Document, error) {
	if ci, ok := store.(domain.ConditionalInserter); ok {
		return ci.CreateIfAbsent(ctx, collection, key, data)
	}

	existing, err := store.QueryByField(ctx, collection, emulatedKeyField, key)
	if err != nil {
		return nil, fmt.Errorf("check key: %w", err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrDocumentExists
	}

	tagged, err := withField(data, emulatedKeyField, key)
	if err != nil {
		return nil, err
	}
	doc, err := store.Create(ctx, collection, tagged)
	if err != nil {
		return nil, err
	}

	holders, err := store.QueryByField(ctx, collection, emulatedKeyField, key)
	if err != nil {
		// Unverified; the pre-check still held when we wrote.
		return doc, nil
	}
	winner := doc
	for _, h := range holders {
		if h.Seq < winner.Seq {
			winner = h
		}
	}
	if winner.ID != doc.ID {
		if err := store.Delete(ctx, collection, doc.ID); err != nil && !errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, fmt.Errorf("back out duplicate key %q: %w", key, err)
		}
		return nil, domain.ErrDocumentExists
	}
	return doc, nil
}

// oldest returns the lowest-seq document. A racing emulated insert can be
// visible briefly before it backs out; the oldest holder is the one that stays.
func oldest(docs []*domain.Document) *domain.Document {
	first := docs[0]
	for _, d := range docs[1:] {
		if d.Seq < first.Seq {
			first = d
		}
	}
	return first
}

func withField(data json.RawMessage, field, value string) (json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	fields[field] = raw
	return json.Marshal(fields)
}

// encode marshals an entity for storage. The id lives outside the body.
func encode(v any) (json.RawMessage, error) {
	fields, err := toPatch(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// toPatch renders v as a top-level field map without its id.
func toPatch(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}

func decode(doc *domain.Document, dest any) error {
	if err := json.Unmarshal(doc.Data, dest); err != nil {
		return fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	return nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
