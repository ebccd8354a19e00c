// Package sqlite provides a SQLite-backed DocumentStore for single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"eventregistration/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		unique_key TEXT,
		body TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE (collection, id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS documents_collection_unique_key
		ON documents (collection, unique_key) WHERE unique_key IS NOT NULL`,
}

// Store persists documents in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var (
	_ domain.DocumentStore       = (*Store)(nil)
	_ domain.ConditionalInserter = (*Store)(nil)
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens a SQLite document store and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer at a time; SQLite serializes writes anyway.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	for _, stmt := range schema {
		if _, err := sqlDB.Exec(stmt); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Create(ctx context.Context, collection string, data json.RawMessage) (*domain.Document, error) {
	return s.insert(ctx, collection, nil, data)
}

func (s *Store) CreateIfAbsent(ctx context.Context, collection, key string, data json.RawMessage) (*domain.Document, error) {
	doc, err := s.insert(ctx, collection, &key, data)
	if err != nil && isUniqueViolation(err) {
		return nil, domain.ErrDocumentExists
	}
	return doc, err
}

func (s *Store) insert(ctx context.Context, collection string, key *string, data json.RawMessage) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("document is not valid JSON")
	}
	now := toMillis(s.now())
	id := uuid.NewString()
	var uniqueKey sql.NullString
	if key != nil {
		uniqueKey = sql.NullString{String: *key, Valid: true}
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO documents (collection, id, unique_key, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		collection, id, uniqueKey, string(data), now, now,
	)
	if err != nil {
		return nil, err
	}
	seq, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read insert sequence: %w", err)
	}
	return &domain.Document{ID: id, Seq: seq, Data: data}, nil
}

func (s *Store) GetByID(ctx context.Context, collection, id string) (*domain.Document, error) {
	doc := &domain.Document{}
	var body string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, seq, body FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&doc.ID, &doc.Seq, &body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	doc.Data = json.RawMessage(body)
	return doc, nil
}

// QueryByField compares the text form of the field. Booleans render as 1/0.
func (s *Store) QueryByField(ctx context.Context, collection, field, value string) ([]*domain.Document, error) {
	return s.queryDocuments(ctx,
		`SELECT id, seq, body FROM documents
		WHERE collection = ? AND CAST(json_extract(body, ?) AS TEXT) = ?
		ORDER BY seq`,
		collection, fieldPath(field), value,
	)
}

func (s *Store) List(ctx context.Context, collection string) ([]*domain.Document, error) {
	return s.queryDocuments(ctx,
		`SELECT id, seq, body FROM documents WHERE collection = ? ORDER BY seq`,
		collection,
	)
}

func (s *Store) queryDocuments(ctx context.Context, query string, args ...any) ([]*domain.Document, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	docs := make([]*domain.Document, 0)
	for rows.Next() {
		doc := &domain.Document{}
		var body string
		if err := rows.Scan(&doc.ID, &doc.Seq, &body); err != nil {
			return nil, err
		}
		doc.Data = json.RawMessage(body)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *Store) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var body string
	err = tx.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrDocumentNotFound
		}
		return err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return fmt.Errorf("decode stored document: %w", err)
	}
	for k, v := range patch {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode patch field %s: %w", k, err)
		}
		fields[k] = raw
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET body = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		string(merged), toMillis(s.now()), collection, id,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func fieldPath(field string) string {
	return `$."` + strings.ReplaceAll(field, `"`, `\"`) + `"`
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
