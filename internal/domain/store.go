package domain

import (
	"context"
	"encoding/json"
	"errors"
)

// Store-level sentinel errors returned by DocumentStore implementations.
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentExists   = errors.New("document key already taken")
)

// Collection names.
const (
	CollectionEvents        = "events"
	CollectionRegistrants   = "registrants"
	CollectionRegistrations = "registrations"
	CollectionPayments      = "payments"
)

// Document is one stored record. Seq is the store-assigned insertion order.
type Document struct {
	ID   string
	Seq  int64
	Data json.RawMessage
}

// DocumentStore is a key/value collection store with field-equality queries.
// It offers no cross-document transactions.
type DocumentStore interface {
	Create(ctx context.Context, collection string, data json.RawMessage) (*Document, error)
	GetByID(ctx context.Context, collection, id string) (*Document, error)
	// QueryByField returns documents whose top-level field renders to value,
	// ordered by insertion.
	QueryByField(ctx context.Context, collection, field, value string) ([]*Document, error)
	// List returns every document of the collection ordered by insertion.
	List(ctx context.Context, collection string) ([]*Document, error)
	// Update merges patch over the stored top-level fields.
	Update(ctx context.Context, collection, id string, patch map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// ConditionalInserter is implemented by stores that can insert atomically
// unless another document of the collection already holds key.
type ConditionalInserter interface {
	CreateIfAbsent(ctx context.Context, collection, key string, data json.RawMessage) (*Document, error)
}
