package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
)

func TestDocumentStore_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantSeq int64
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO documents \(collection, id, body\)`).
					WithArgs("events", sqlmock.AnyArg(), []byte(`{"year":2026}`)).
					WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(7)))
			},
			wantSeq: 7,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO documents`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			store := NewDocumentStore(db)
			doc, err := store.Create(ctx, "events", json.RawMessage(`{"year":2026}`))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, doc.ID)
			require.Equal(t, tt.wantSeq, doc.Seq)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDocumentStore_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO documents \(collection, id, unique_key, body\)`).
					WithArgs("payments", sqlmock.AnyArg(), "tok_1", []byte(`{"sourceId":"tok_1"}`)).
					WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(1)))
			},
		},
		{
			name: "unique violation returns ErrDocumentExists",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO documents`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDocumentExists,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO documents`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
			errIs:   sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			store := NewDocumentStore(db).(domain.ConditionalInserter)
			_, err = store.CreateIfAbsent(ctx, "payments", "tok_1", json.RawMessage(`{"sourceId":"tok_1"}`))
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDocumentStore_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    string
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, seq, body`).
					WithArgs("events", "ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "seq", "body"}).
						AddRow("ev-1", int64(3), []byte(`{"year":2026}`)))
			},
			want: `{"year":2026}`,
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, seq, body`).
					WithArgs("events", "ev-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrDocumentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			doc, err := NewDocumentStore(db).GetByID(ctx, "events", "ev-1")
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "ev-1", doc.ID)
			require.Equal(t, int64(3), doc.Seq)
			require.JSONEq(t, tt.want, string(doc.Data))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDocumentStore_QueryByField(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, seq, body\s+FROM documents\s+WHERE collection = \$1 AND body->>\$2 = \$3\s+ORDER BY seq`).
		WithArgs("registrants", "emailAddress", "a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "seq", "body"}).
			AddRow("r-1", int64(1), []byte(`{"emailAddress":"a@b.com"}`)).
			AddRow("r-2", int64(4), []byte(`{"emailAddress":"a@b.com"}`)))

	docs, err := NewDocumentStore(db).QueryByField(context.Background(), "registrants", "emailAddress", "a@b.com")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "r-1", docs[0].ID)
	require.Equal(t, "r-2", docs[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_List_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, seq, body`).
		WithArgs("events").
		WillReturnRows(sqlmock.NewRows([]string{"id", "seq", "body"}))

	docs, err := NewDocumentStore(db).List(context.Background(), "events")
	require.NoError(t, err)
	require.NotNil(t, docs)
	require.Empty(t, docs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE documents`).
					WithArgs("payments", "p-1", []byte(`{"receiptUrl":"https://r"}`)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found zero rows affected",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE documents`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrDocumentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewDocumentStore(db).Update(ctx, "payments", "p-1", map[string]any{"receiptUrl": "https://r"})
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDocumentStore_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM documents WHERE collection = \$1 AND id = \$2`).
					WithArgs("registrations", "reg-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM documents`).
					WithArgs("registrations", "reg-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewDocumentStore(db).Delete(ctx, "registrations", "reg-1")
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrDocumentNotFound)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS documents`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
