// Package repo provides the audit trail repository implementation.
package repo

import (
	"context"

	"gatehouse/internal/modkit/repokit"
	perr "gatehouse/internal/platform/errors"
	"gatehouse/internal/services/audit/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the audit repository
type Storage interface {
	Insert(ctx context.Context, rec domain.CallRecord) error
	RecentByCaller(ctx context.Context, caller string, limit int) ([]domain.CallRecord, error)
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, rec domain.CallRecord) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO gate_calls (id, caller, operation, is_error, code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.Caller, rec.Operation, rec.IsError, rec.Code, rec.CreatedAt,
	)
	return perr.FromPostgresf(err, "insert call record")
}

// RecentByCaller implements Storage
func (s *pg) RecentByCaller(ctx context.Context, caller string, limit int) ([]domain.CallRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.q.Query(ctx, `
		SELECT id, caller, operation, is_error, code, created_at
		FROM gate_calls
		WHERE caller = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		caller, limit,
	)
	if err != nil {
		return nil, perr.FromPostgresf(err, "query call records")
	}
	defer rows.Close()

	var out []domain.CallRecord
	for rows.Next() {
		var rec domain.CallRecord
		if err := rows.Scan(&rec.ID, &rec.Caller, &rec.Operation, &rec.IsError, &rec.Code, &rec.CreatedAt); err != nil {
			return nil, perr.FromPostgresf(err, "scan call record")
		}
		out = append(out, rec)
	}
	return out, perr.FromPostgresf(rows.Err(), "iterate call records")
}
