// Package service contains the best-effort audit trail workflow
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gatehouse/internal/modkit/repokit"
	perr "gatehouse/internal/platform/errors"
	"gatehouse/internal/platform/logger"
	"gatehouse/internal/services/audit/domain"
	"gatehouse/internal/services/audit/repo"
)

const recordTimeout = 2 * time.Second

// Service records dispatched calls. It never blocks or fails a call:
// a write error is logged and dropped
type Service struct {
	store repo.Storage
	db    repokit.TxRunner
	log   logger.Logger
}

// New constructs an audit service. A nil TxRunner yields a disabled
// service whose Record is a no-op
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Service {
	s := &Service{log: *logger.Named("audit")}
	if db == nil {
		return s
	}
	if binder == nil {
		binder = repo.NewPG()
	}
	s.db = db
	s.store = binder.Bind(db)
	return s
}

// Enabled reports whether records are persisted
func (s *Service) Enabled() bool { return s.store != nil }

// Record persists one call record. The write runs on a detached
// context so a cancelled request cannot abort the trail
func (s *Service) Record(ctx context.Context, caller, operation string, isError bool, code string) {
	if s.store == nil {
		return
	}
	rec := domain.CallRecord{
		ID:        uuid.New(),
		Caller:    caller,
		Operation: operation,
		IsError:   isError,
		Code:      code,
		CreatedAt: time.Now().UTC(),
	}
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := s.store.Insert(wctx, rec); err != nil {
		s.log.Warn().
			Str("operation", operation).
			Str("code", perr.CodeOf(err).String()).
			Bool("retryable", perr.Retryable(err)).
			Err(err).
			Msg("audit insert failed")
	}
}

// RecentByCaller lists the newest records for one caller
func (s *Service) RecentByCaller(ctx context.Context, caller string, limit int) ([]domain.CallRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.RecentByCaller(ctx, caller, limit)
}
