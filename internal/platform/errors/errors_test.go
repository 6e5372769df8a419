package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestCodeOf_And_Wrapping(t *testing.T) {
	base := stderrs.New("boom")
	wrapped := Wrapf(base, ErrorCodeUnavailable, "search provider unreachable")

	if got := CodeOf(wrapped); got != ErrorCodeUnavailable {
		t.Fatalf("CodeOf = %v", got)
	}
	if !stderrs.Is(wrapped, base) {
		t.Fatal("wrapped error should unwrap to base")
	}
	if CodeOf(base) != ErrorCodeUnknown {
		t.Fatal("plain errors default to unknown")
	}
	if CodeOf(nil) != ErrorCodeUnknown {
		t.Fatal("nil defaults to unknown")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validationf("bad query"), http.StatusBadRequest},
		{JSONErrf("bad json"), http.StatusBadRequest},
		{InvalidArgf("bad arg"), http.StatusUnprocessableEntity},
		{RateLimitedf("slow down"), http.StatusTooManyRequests},
		{Forbiddenf("no"), http.StatusForbidden},
		{NotFoundf("missing"), http.StatusNotFound},
		{Unavailablef("down"), http.StatusServiceUnavailable},
		{Upstreamf(500, "upstream broke"), http.StatusBadGateway},
		{PanicErrf("recovered"), http.StatusInternalServerError},
		{Internalf("oops"), http.StatusInternalServerError},
		{stderrs.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestUpstreamf_CarriesStatus(t *testing.T) {
	err := Upstreamf(429, "provider rate limited")
	if got := StatusOf(err); got != 429 {
		t.Fatalf("StatusOf = %d", got)
	}
	if got := StatusOf(Validationf("x")); got != 0 {
		t.Fatalf("non-upstream StatusOf = %d, want 0", got)
	}
}

func TestErrorCodeString(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrorCodeTooManyRequests, "rate_limited"},
		{ErrorCodeValidation, "validation_error"},
		{ErrorCodeUpstream, "upstream_error"},
		{ErrorCodeForbidden, "forbidden"},
		{ErrorCodeNotFound, "not_found"},
		{ErrorCodeUnavailable, "unavailable"},
		{ErrorCodePanic, "panic"},
		{ErrorCodeUnknown, "unknown"},
		{ErrorCode(999), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.code.String(); got != tc.want {
			t.Fatalf("String(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestWithField(t *testing.T) {
	err := WithField(Validationf("must not be empty"), "query")
	pe, ok := As(err)
	if !ok {
		t.Fatal("expected project error")
	}
	if pe.Field() != "query" {
		t.Fatalf("field = %q", pe.Field())
	}
}
