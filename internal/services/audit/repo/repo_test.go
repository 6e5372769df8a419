package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"gatehouse/internal/modkit/repokit"
	perr "gatehouse/internal/platform/errors"
	"gatehouse/internal/services/audit/domain"
)

// failQueryer fails every call with a fixed error
type failQueryer struct{ err error }

func (f *failQueryer) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, f.err
}

func (f *failQueryer) Query(context.Context, string, ...any) (repokit.Rows, error) {
	return nil, f.err
}

func (f *failQueryer) QueryRow(context.Context, string, ...any) repokit.Row { return nil }

func TestInsert_MapsPostgresErrors(t *testing.T) {
	cause := &pgconn.PgError{Code: "23502", Message: "null value in column"}
	store := NewPG().Bind(&failQueryer{err: cause})

	err := store.Insert(context.Background(), domain.CallRecord{
		ID:        uuid.New(),
		Caller:    "10.0.0.1",
		Operation: "search_docs",
		CreatedAt: time.Now().UTC(),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := perr.CodeOf(err); got != perr.ErrorCodeValidation {
		t.Fatalf("code = %v, want %v", got, perr.ErrorCodeValidation)
	}
}

func TestRecentByCaller_MapsPostgresErrors(t *testing.T) {
	cause := &pgconn.PgError{Code: "57P03", Message: "the database system is starting up"}
	store := NewPG().Bind(&failQueryer{err: cause})

	_, err := store.RecentByCaller(context.Background(), "10.0.0.1", 10)
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := perr.CodeOf(err); got != perr.ErrorCodeUnavailable {
		t.Fatalf("code = %v, want %v", got, perr.ErrorCodeUnavailable)
	}
}
