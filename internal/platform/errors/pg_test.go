package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgErr(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, Message: "pg says no"}
}

func TestDBErrorCode(t *testing.T) {
	tests := []struct {
		sqlstate string
		want     ErrorCode
	}{
		{"23502", ErrorCodeValidation},      // not null
		{"23514", ErrorCodeValidation},      // check
		{"23503", ErrorCodeInvalidArgument}, // fk
		{"22001", ErrorCodeInvalidArgument}, // right truncation
		{"22P02", ErrorCodeInvalidArgument}, // invalid text rep
		{"23505", ErrorCodeDB},              // unique
		{"40001", ErrorCodeDB},              // serialization
		{"40P01", ErrorCodeDB},              // deadlock
		{"57P03", ErrorCodeUnavailable},     // cannot connect now
		{"99999", ErrorCodeDB},              // anything else is still a db error
	}
	for _, tc := range tests {
		got, ok := DBErrorCode(pgErr(tc.sqlstate))
		if !ok || got != tc.want {
			t.Fatalf("DBErrorCode(%s) = %v, %v; want %v, true", tc.sqlstate, got, ok, tc.want)
		}
	}

	if _, ok := DBErrorCode(stderrs.New("not a pg error")); ok {
		t.Fatal("non-pg error should report !ok")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "noop") != nil {
		t.Fatal("nil in should be nil out")
	}

	err := FromPostgresf(pgErr("23505"), "insert %s", "record")
	if CodeOf(err) != ErrorCodeDB {
		t.Fatalf("code = %v, want %v", CodeOf(err), ErrorCodeDB)
	}
	var pe *pgconn.PgError
	if !stderrs.As(err, &pe) {
		t.Fatal("wrapped error should expose the PgError cause")
	}

	// non-pg causes still become db errors
	if CodeOf(FromPostgres(stderrs.New("conn reset"), "insert")) != ErrorCodeDB {
		t.Fatal("generic cause should map to db error")
	}
}

func TestIsRetryable(t *testing.T) {
	retryable := []error{
		pgErr("40001"),
		pgErr("40P01"),
		pgErr("55P03"),
		stderrs.New("commit unexpectedly resulted in rollback"),
		fmt.Errorf("exec: %w", stderrs.New("deadlock detected")),
	}
	for _, err := range retryable {
		if !IsRetryable(err) {
			t.Fatalf("IsRetryable(%v) = false, want true", err)
		}
	}

	notRetryable := []error{
		nil,
		pgErr("23505"),
		context.Canceled,
		context.DeadlineExceeded,
		stderrs.New("syntax error at or near"),
	}
	for _, err := range notRetryable {
		if IsRetryable(err) {
			t.Fatalf("IsRetryable(%v) = true, want false", err)
		}
	}
}

func TestIsSQLState(t *testing.T) {
	wrapped := FromPostgres(pgErr("57P03"), "ping")
	if !IsSQLState(wrapped, "57P03") {
		t.Fatal("IsSQLState should see through wrapping")
	}
	if !IsConnectionUnavailable(wrapped) {
		t.Fatal("57P03 is a connection availability error")
	}
	if IsSQLState(stderrs.New("plain"), "57P03") {
		t.Fatal("plain error has no sqlstate")
	}
}
