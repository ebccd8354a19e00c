package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eventregistration/internal/domain"
)

// Schema creates the documents table. unique_key backs CreateIfAbsent.
const Schema = `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		seq BIGSERIAL NOT NULL,
		unique_key TEXT,
		body JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (collection, id)
	);
	CREATE UNIQUE INDEX IF NOT EXISTS documents_collection_unique_key
		ON documents (collection, unique_key) WHERE unique_key IS NOT NULL;
	CREATE INDEX IF NOT EXISTS documents_collection_seq ON documents (collection, seq);
`

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type documentStore struct {
	DB *sql.DB
}

// NewDocumentStore returns a DocumentStore over a PostgreSQL JSONB table.
// The returned value also implements domain.ConditionalInserter.
func NewDocumentStore(db *sql.DB) domain.DocumentStore {
	return &documentStore{DB: db}
}

// Migrate applies Schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply documents schema: %w", err)
	}
	return nil
}

func (s *documentStore) Create(ctx context.Context, collection string, data json.RawMessage) (*domain.Document, error) {
	query := `
		INSERT INTO documents (collection, id, body)
		VALUES ($1, $2, $3)
		RETURNING seq
	`
	doc := &domain.Document{ID: uuid.NewString(), Data: data}
	if err := s.DB.QueryRowContext(ctx, query, collection, doc.ID, []byte(data)).Scan(&doc.Seq); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentStore) CreateIfAbsent(ctx context.Context, collection, key string, data json.RawMessage) (*domain.Document, error) {
	query := `
		INSERT INTO documents (collection, id, unique_key, body)
		VALUES ($1, $2, $3, $4)
		RETURNING seq
	`
	doc := &domain.Document{ID: uuid.NewString(), Data: data}
	err := s.DB.QueryRowContext(ctx, query, collection, doc.ID, key, []byte(data)).Scan(&doc.Seq)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrDocumentExists
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentStore) GetByID(ctx context.Context, collection, id string) (*domain.Document, error) {
	query := `
		SELECT id, seq, body
		FROM documents
		WHERE collection = $1 AND id = $2
	`
	doc := &domain.Document{}
	var body []byte
	err := s.DB.QueryRowContext(ctx, query, collection, id).Scan(&doc.ID, &doc.Seq, &body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	doc.Data = body
	return doc, nil
}

func (s *documentStore) QueryByField(ctx context.Context, collection, field, value string) ([]*domain.Document, error) {
	query := `
		SELECT id, seq, body
		FROM documents
		WHERE collection = $1 AND body->>$2 = $3
		ORDER BY seq
	`
	return s.queryDocuments(ctx, query, collection, field, value)
}

func (s *documentStore) List(ctx context.Context, collection string) ([]*domain.Document, error) {
	query := `
		SELECT id, seq, body
		FROM documents
		WHERE collection = $1
		ORDER BY seq
	`
	return s.queryDocuments(ctx, query, collection)
}

func (s *documentStore) queryDocuments(ctx context.Context, query string, args ...any) ([]*domain.Document, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]*domain.Document, 0)
	for rows.Next() {
		doc := &domain.Document{}
		var body []byte
		if err := rows.Scan(&doc.ID, &doc.Seq, &body); err != nil {
			return nil, err
		}
		doc.Data = body
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *documentStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}
	query := `
		UPDATE documents
		SET body = body || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`
	result, err := s.DB.ExecContext(ctx, query, collection, id, raw)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (s *documentStore) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`
	result, err := s.DB.ExecContext(ctx, query, collection, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
