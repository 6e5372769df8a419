package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"gatehouse/internal/core/ratelimit"
	phttp "gatehouse/internal/platform/net/http"
	"gatehouse/internal/platform/net/middleware"
	"gatehouse/internal/platform/testkit"
	"gatehouse/internal/services/dispatch/domain"
	dispatchsvc "gatehouse/internal/services/dispatch/service"
)

func newGateServer(t *testing.T, reg *dispatchsvc.Registry) *httptest.Server {
	t.Helper()

	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Use(middleware.RealIP(), middleware.CallerIdentity())
	Register(r, reg)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postCall(t *testing.T, srv *httptest.Server, body string) (int, phttp.Envelope, domain.Envelope) {
	t.Helper()

	resp, err := stdhttp.Post(srv.URL+"/call", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var wire struct {
		phttp.Envelope
		Data domain.Envelope `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, wire.Envelope, wire.Data
}

func TestCall_EndToEnd(t *testing.T) {
	reg := dispatchsvc.New(
		ratelimit.New("http-test", ratelimit.Config{Max: 30, Window: time.Minute}),
		dispatchsvc.Options{},
	)
	reg.Register("ping", "replies pong", func(_ context.Context, _ json.RawMessage) (domain.Result, error) {
		return domain.Result{Text: "pong"}, nil
	})
	srv := newGateServer(t, reg)

	status, _, env := postCall(t, srv, `{"operation":"ping"}`)
	if status != stdhttp.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if env.IsError || env.Content[0].Text != "pong" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestCall_UnknownOperationIs200WithErrorEnvelope(t *testing.T) {
	reg := dispatchsvc.New(
		ratelimit.New("http-test-unknown", ratelimit.Config{Max: 30, Window: time.Minute}),
		dispatchsvc.Options{},
	)
	srv := newGateServer(t, reg)

	status, _, env := postCall(t, srv, `{"operation":"missing_op"}`)
	if status != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 with in-band error", status)
	}
	if !env.IsError {
		t.Fatalf("expected error envelope: %+v", env)
	}
	testkit.MustContain(t, env.Content[0].Text, "missing_op")
}

func TestCall_BadPayloadIsTransportError(t *testing.T) {
	reg := dispatchsvc.New(
		ratelimit.New("http-test-bad", ratelimit.Config{Max: 30, Window: time.Minute}),
		dispatchsvc.Options{},
	)
	srv := newGateServer(t, reg)

	// missing operation fails request validation before dispatch
	status, wire, _ := postCall(t, srv, `{}`)
	if status != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if wire.Error == "" {
		t.Fatalf("expected transport error, got %+v", wire)
	}

	// so does a malformed operation name
	status, _, _ = postCall(t, srv, `{"operation":"Not A Name!"}`)
	if status != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestOperations_Listing(t *testing.T) {
	reg := dispatchsvc.New(
		ratelimit.New("http-test-ops", ratelimit.Config{Max: 30, Window: time.Minute}),
		dispatchsvc.Options{},
	)
	reg.Register("ping", "replies pong", func(_ context.Context, _ json.RawMessage) (domain.Result, error) {
		return domain.Result{Text: "pong"}, nil
	})
	srv := newGateServer(t, reg)

	resp, err := stdhttp.Get(srv.URL + "/operations")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var wire struct {
		Data []domain.OperationInfo `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(wire.Data) != 1 || wire.Data[0].Name != "ping" {
		t.Fatalf("operations = %+v", wire.Data)
	}
}
