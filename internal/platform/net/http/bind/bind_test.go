package bind

import (
	"encoding/json"
	"testing"

	perr "gatehouse/internal/platform/errors"
)

type argShape struct {
	Query string `json:"query" validate:"required,max=512"`
	Count int    `json:"count,omitempty" validate:"omitempty,min=1,max=10"`
}

type optShape struct {
	Files []string `json:"files,omitempty" validate:"omitempty,max=8,dive,required"`
}

func TestDecodeValidate_OK(t *testing.T) {
	got, err := DecodeValidate[argShape](json.RawMessage(`{"query":"go docs","count":3}`))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if got.Query != "go docs" || got.Count != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestDecodeValidate_RequiredEnforced(t *testing.T) {
	for _, raw := range []string{`{}`, ``, `null`, `{"count":3}`} {
		_, err := DecodeValidate[argShape](json.RawMessage(raw))
		if err == nil {
			t.Fatalf("raw %q should fail required validation", raw)
		}
		if code := perr.CodeOf(err); code != perr.ErrorCodeValidation {
			t.Fatalf("raw %q code = %v", raw, code)
		}
	}
}

func TestDecodeValidate_RangeEnforced(t *testing.T) {
	_, err := DecodeValidate[argShape](json.RawMessage(`{"query":"q","count":11}`))
	if err == nil {
		t.Fatal("count over max should fail")
	}
}

func TestDecodeValidate_UnknownFieldRejected(t *testing.T) {
	_, err := DecodeValidate[argShape](json.RawMessage(`{"query":"q","bogus":true}`))
	if code := perr.CodeOf(err); code != perr.ErrorCodeJSON {
		t.Fatalf("code = %v, want json error", code)
	}
}

func TestDecodeValidate_MalformedRejected(t *testing.T) {
	_, err := DecodeValidate[argShape](json.RawMessage(`{"query":`))
	if code := perr.CodeOf(err); code != perr.ErrorCodeJSON {
		t.Fatalf("code = %v, want json error", code)
	}
}

func TestDecodeValidate_TrailingDataRejected(t *testing.T) {
	_, err := DecodeValidate[argShape](json.RawMessage(`{"query":"a"}{"query":"b"}`))
	if code := perr.CodeOf(err); code != perr.ErrorCodeJSON {
		t.Fatalf("code = %v, want json error", code)
	}
}

func TestDecodeValidate_EmptyOKForOptionalShape(t *testing.T) {
	for _, raw := range []string{``, `null`, `{}`} {
		got, err := DecodeValidate[optShape](json.RawMessage(raw))
		if err != nil {
			t.Fatalf("raw %q: %v", raw, err)
		}
		if len(got.Files) != 0 {
			t.Fatalf("raw %q: %+v", raw, got)
		}
	}
}

func TestOpNameTag(t *testing.T) {
	type call struct {
		Operation string `json:"operation" validate:"required,op_name"`
	}

	for _, ok := range []string{"search_docs", "a", "op2", "describe_project"} {
		if _, err := DecodeValidate[call](json.RawMessage(`{"operation":"` + ok + `"}`)); err != nil {
			t.Fatalf("%q should be a valid operation name: %v", ok, err)
		}
	}
	for _, bad := range []string{"Search", "2op", "has space", "has-dash", "_leading"} {
		if _, err := DecodeValidate[call](json.RawMessage(`{"operation":"` + bad + `"}`)); err == nil {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}
