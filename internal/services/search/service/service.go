// Package service contains the documentation search workflow
package service

import (
	"context"
	"strings"

	"gatehouse/internal/core/allowlist"
	"gatehouse/internal/core/ratelimit"
	"gatehouse/internal/core/sanitize"
	perr "gatehouse/internal/platform/errors"
	"gatehouse/internal/platform/logger"
	pnet "gatehouse/internal/platform/net"
	"gatehouse/internal/services/search/domain"

	searchadapter "gatehouse/internal/adapters/search"
)

// NoResultText is returned verbatim when the provider finds nothing,
// so callers can branch on it without parsing
const NoResultText = "no relevant result found"

const defaultCount = 5

// Searcher is the outbound provider seam
type Searcher interface {
	Search(ctx context.Context, query string) ([]searchadapter.Result, error)
}

// Service defines the search service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the search workflow: charge the search budget, scrub
// the query, pin it to the allowlist, then ask the provider once
type Svc struct {
	client  Searcher
	allow   *allowlist.List
	limiter *ratelimit.Limiter
	log     logger.Logger
}

// New constructs a search service
func New(client Searcher, allow *allowlist.List, limiter *ratelimit.Limiter) *Svc {
	if client == nil {
		panic("search.Service requires a non nil Searcher")
	}
	if allow == nil || allow.Len() == 0 {
		panic("search.Service requires a non empty allowlist")
	}
	if limiter == nil {
		panic("search.Service requires a non nil limiter")
	}
	return &Svc{
		client:  client,
		allow:   allow,
		limiter: limiter,
		log:     *logger.Named("search"),
	}
}

// Search runs one gated documentation lookup
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.SearchOutput, error) {
	caller := pnet.CallerID(ctx)
	if caller == "" {
		caller = "unknown"
	}
	if !s.limiter.Admit(caller) {
		return domain.SearchOutput{}, perr.RateLimitedf("search rate limit exceeded, try again later")
	}

	clean, err := sanitize.Query(in.Query)
	if err != nil {
		return domain.SearchOutput{}, err
	}

	restricted := s.allow.Restrict(clean)
	s.log.Debug().Str("caller", caller).Str("query", clean).Msg("search dispatching")

	hits, err := s.client.Search(ctx, restricted)
	if err != nil {
		return domain.SearchOutput{}, err
	}

	count := in.Count
	if count <= 0 {
		count = defaultCount
	}
	if len(hits) > count {
		hits = hits[:count]
	}

	out := domain.SearchOutput{Query: clean, Results: make([]domain.ResultItem, 0, len(hits))}
	for _, h := range hits {
		out.Results = append(out.Results, domain.ResultItem{
			Title:   h.Title,
			Link:    h.Link,
			Snippet: h.Snippet,
		})
	}
	out.ResultCount = len(out.Results)
	return out, nil
}

// Summary renders the envelope text for an output
func Summary(out domain.SearchOutput) string {
	if len(out.Results) == 0 {
		return NoResultText
	}
	top := out.Results[0]
	var b strings.Builder
	b.WriteString(top.Title)
	if top.Link != "" {
		b.WriteString(" - ")
		b.WriteString(top.Link)
	}
	if top.Snippet != "" {
		b.WriteString("\n")
		b.WriteString(top.Snippet)
	}
	return b.String()
}
