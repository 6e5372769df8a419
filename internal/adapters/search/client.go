// Package search provides a minimal SerpAPI-compatible client for the
// gateway's outbound documentation lookups
package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	perr "gatehouse/internal/platform/errors"
	"gatehouse/internal/platform/logger"
)

const (
	baseURLDefault = "https://serpapi.com"
	engineDefault  = "google"
	defaultTimeout = 5 * time.Second
	defaultUA      = "gatehouse-api"

	// maxBodyBytes caps how much of an upstream response is read.
	// Result pages well beyond this are garbage anyway
	maxBodyBytes = 1 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	Engine    string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

// Client is a single-shot search client. A request gets exactly one
// attempt inside the configured timeout; failures surface to the caller
// instead of being retried, so the per-caller budget stays predictable
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Engine == "" {
		o.Engine = engineDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("search"),
	}
}

// Search issues one query and decodes the organic results. The query is
// expected to already carry the caller's site restriction; this layer does
// not inspect or rewrite it
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("engine", c.opts.Engine)
	q.Set("q", query)
	if c.opts.APIKey != "" {
		q.Set("api_key", c.opts.APIKey)
	}
	u := c.opts.BaseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "search new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	lat := time.Since(start)
	if err != nil {
		c.log.Warn().Err(err).Dur("latency", lat).Msg("search transport error")
		return nil, perr.Unavailablef("search provider unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("search http response")

	if resp.StatusCode != http.StatusOK {
		// read a small tail for diagnostics then discard
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Warn().Int("status", resp.StatusCode).Str("body", string(body)).Msg("search upstream status")
		return nil, perr.Upstreamf(resp.StatusCode, "search provider returned status %d", resp.StatusCode)
	}

	var page resultsPage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&page); err != nil {
		return nil, perr.Upstreamf(resp.StatusCode, "search provider returned malformed body")
	}
	if page.Error != "" {
		return nil, perr.Upstreamf(resp.StatusCode, "search provider error: %s", page.Error)
	}
	return page.Organic, nil
}
