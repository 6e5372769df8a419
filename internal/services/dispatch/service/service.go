// Package service contains the gate dispatch workflow
package service

import (
	"context"
	"encoding/json"
	"runtime/debug"
	"sort"
	"sync"

	"gatehouse/internal/core/ratelimit"
	perr "gatehouse/internal/platform/errors"
	"gatehouse/internal/platform/logger"
	pnet "gatehouse/internal/platform/net"
	"gatehouse/internal/services/dispatch/domain"
)

// Service defines the dispatch contract
type Service interface {
	domain.RegistryPort
}

// Options configure the registry
type Options struct {
	// Production suppresses error detail in envelopes
	Production bool

	// Recorder is optional; nil disables the audit trail
	Recorder domain.Recorder
}

type registration struct {
	desc string
	h    domain.Handler
}

// Registry routes gated calls to registered operations. Registration
// happens during bootstrap; Dispatch is safe for concurrent use
type Registry struct {
	mu      sync.RWMutex
	ops     map[string]registration
	limiter *ratelimit.Limiter
	log     logger.Logger
	opt     Options
}

// New constructs a Registry guarded by the given per-caller limiter
func New(limiter *ratelimit.Limiter, opt Options) *Registry {
	if limiter == nil {
		panic("dispatch.Registry requires a non nil limiter")
	}
	return &Registry{
		ops:     map[string]registration{},
		limiter: limiter,
		log:     *logger.Named("dispatch"),
		opt:     opt,
	}
}

// Register adds an operation to the registry
func (g *Registry) Register(name, description string, h domain.Handler) {
	if name == "" || h == nil {
		panic("dispatch: operation needs a name and a handler")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, dup := g.ops[name]; dup {
		panic("dispatch: duplicate operation " + name)
	}
	g.ops[name] = registration{desc: description, h: h}
}

// Operations lists registered operations sorted by name
func (g *Registry) Operations() []domain.OperationInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.OperationInfo, 0, len(g.ops))
	for name, reg := range g.ops {
		out = append(out, domain.OperationInfo{Name: name, Description: reg.desc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dispatch runs one gated call. The per-caller budget is charged before
// the operation is looked up, so unknown operations still consume quota
// exactly like real ones and cannot be used to probe for free
func (g *Registry) Dispatch(ctx context.Context, in domain.CallInput) domain.Envelope {
	caller := pnet.CallerID(ctx)
	if caller == "" {
		caller = "unknown"
	}

	if !g.limiter.Admit(caller) {
		g.audit(ctx, caller, in.Operation, true, perr.ErrorCodeTooManyRequests.String())
		return g.failure(perr.RateLimitedf("rate limit exceeded, try again later"))
	}

	g.mu.RLock()
	reg, ok := g.ops[in.Operation]
	g.mu.RUnlock()
	if !ok {
		g.log.Warn().Str("operation", in.Operation).Str("caller", caller).Msg("unknown operation")
		g.audit(ctx, caller, in.Operation, true, perr.ErrorCodeNotFound.String())
		return g.failure(perr.NotFoundf("unknown operation %q", in.Operation))
	}

	res, err := g.invoke(ctx, reg.h, in.Arguments)
	if err != nil {
		code := perr.CodeOf(err)
		g.log.Warn().
			Str("operation", in.Operation).
			Str("caller", caller).
			Str("code", code.String()).
			Err(err).
			Msg("operation failed")
		g.audit(ctx, caller, in.Operation, true, code.String())
		return g.failure(err)
	}

	g.audit(ctx, caller, in.Operation, false, "")
	return domain.TextEnvelope(res.Text, res.Structured)
}

// invoke runs the handler and converts panics into errors so one bad
// operation cannot take the process down
func (g *Registry) invoke(ctx context.Context, h domain.Handler, args json.RawMessage) (res domain.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			g.log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("operation panicked")
			err = perr.PanicErrf("operation panicked: %v", rec)
		}
	}()
	return h(ctx, args)
}

// audit hands the outcome to the recorder off the dispatch path. The
// recorder detaches from the request context and never fails the call,
// so a slow trail store cannot add latency to responses
func (g *Registry) audit(ctx context.Context, caller, operation string, isError bool, code string) {
	if g.opt.Recorder == nil {
		return
	}
	go g.opt.Recorder.Record(ctx, caller, operation, isError, code)
}

// failure renders an error envelope, hiding detail in production
func (g *Registry) failure(err error) domain.Envelope {
	code := perr.CodeOf(err)
	detail := domain.ErrorDetail{Code: code.String()}
	if code == perr.ErrorCodeUpstream {
		detail.Status = perr.StatusOf(err)
	}

	msg := err.Error()
	if g.opt.Production {
		msg = genericMessage(code)
	}
	return domain.ErrorEnvelope(msg, detail)
}

// genericMessage maps a code to a caller-safe message with no internals
func genericMessage(code perr.ErrorCode) string {
	switch code {
	case perr.ErrorCodeTooManyRequests:
		return "rate limit exceeded, try again later"
	case perr.ErrorCodeValidation, perr.ErrorCodeJSON, perr.ErrorCodeInvalidArgument:
		return "invalid request"
	case perr.ErrorCodeNotFound:
		return "unknown operation"
	case perr.ErrorCodeForbidden:
		return "access denied"
	case perr.ErrorCodeUnavailable:
		return "upstream unavailable, try again later"
	case perr.ErrorCodeUpstream:
		return "upstream request failed"
	default:
		return "internal error"
	}
}
