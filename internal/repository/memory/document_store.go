// Package memory provides an in-process DocumentStore for tests and local runs.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"eventregistration/internal/domain"
)

type record struct {
	seq    int64
	key    string
	fields map[string]any
}

// Store is a DocumentStore backed by maps. It is safe for concurrent use and
// implements domain.ConditionalInserter atomically.
type Store struct {
	mu          sync.Mutex
	seq         int64
	collections map[string]map[string]*record
	keys        map[string]map[string]string // collection -> unique key -> id
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		collections: make(map[string]map[string]*record),
		keys:        make(map[string]map[string]string),
	}
}

var (
	_ domain.DocumentStore       = (*Store)(nil)
	_ domain.ConditionalInserter = (*Store)(nil)
)

func (s *Store) Create(ctx context.Context, collection string, data json.RawMessage) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fields, err := decodeFields(data)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(collection, "", fields)
}

func (s *Store) CreateIfAbsent(ctx context.Context, collection, key string, data json.RawMessage) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fields, err := decodeFields(data)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.keys[collection][key]; taken {
		return nil, domain.ErrDocumentExists
	}
	return s.insertLocked(collection, key, fields)
}

func (s *Store) insertLocked(collection, key string, fields map[string]any) (*domain.Document, error) {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]*record)
		s.collections[collection] = docs
	}
	s.seq++
	id := uuid.NewString()
	rec := &record{seq: s.seq, key: key, fields: fields}
	docs[id] = rec
	if key != "" {
		if s.keys[collection] == nil {
			s.keys[collection] = make(map[string]string)
		}
		s.keys[collection][key] = id
	}
	return toDocument(id, rec)
}

func (s *Store) GetByID(ctx context.Context, collection, id string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.collections[collection][id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return toDocument(id, rec)
}

func (s *Store) QueryByField(ctx context.Context, collection, field, value string) ([]*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(collection, func(rec *record) bool {
		v, ok := rec.fields[field]
		if !ok {
			return false
		}
		text, ok := renderField(v)
		return ok && text == value
	})
}

func (s *Store) List(ctx context.Context, collection string) ([]*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(collection, func(*record) bool { return true })
}

func (s *Store) selectLocked(collection string, match func(*record) bool) ([]*domain.Document, error) {
	type hit struct {
		id  string
		rec *record
	}
	var hits []hit
	for id, rec := range s.collections[collection] {
		if match(rec) {
			hits = append(hits, hit{id, rec})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].rec.seq < hits[j].rec.seq })
	docs := make([]*domain.Document, 0, len(hits))
	for _, h := range hits {
		doc, err := toDocument(h.id, h.rec)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Round-trip the patch so stored values have the same shapes as decoded documents.
	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}
	fields, err := decodeFields(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	for k, v := range fields {
		rec.fields[k] = v
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	delete(s.collections[collection], id)
	if rec.key != "" {
		delete(s.keys[collection], rec.key)
	}
	return nil
}

func decodeFields(data json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("decode document: not a JSON object")
	}
	return fields, nil
}

func toDocument(id string, rec *record) (*domain.Document, error) {
	raw, err := json.Marshal(rec.fields)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return &domain.Document{ID: id, Seq: rec.seq, Data: raw}, nil
}

// renderField renders a decoded JSON value the way PostgreSQL's ->> operator
// does. Null never matches.
func renderField(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(raw), true
	}
}
