// Package domain holds DTOs for the gate call surface
package domain

import "encoding/json"

// CallInput is the uniform request shape for every gated operation
type CallInput struct {
	Operation string          `json:"operation" validate:"required,op_name" example:"search_docs"`
	Arguments json.RawMessage `json:"arguments,omitempty" swaggertype:"object"`
}

// Content is one block of operation output
type Content struct {
	Type string `json:"type" example:"text"`
	Text string `json:"text" example:"Effective Go - go.dev/doc/effective_go"`
}

// Envelope is the uniform result shape for every gated operation.
// Failures ride in-band with IsError set rather than as transport errors,
// so the caller always gets a decodable body
type Envelope struct {
	IsError           bool      `json:"isError"`
	Content           []Content `json:"content"`
	StructuredContent any       `json:"structuredContent,omitempty"`
}

// ErrorDetail is the structured payload attached to error envelopes
type ErrorDetail struct {
	Code string `json:"code" example:"rate_limited"`

	// Status carries the upstream HTTP status for upstream_error codes
	Status int `json:"status,omitempty" example:"502"`
}

// Result is what operation handlers return on success
type Result struct {
	Text       string
	Structured any
}

// OperationInfo describes one registered operation for discovery
type OperationInfo struct {
	Name        string `json:"name" example:"search_docs"`
	Description string `json:"description" example:"Search allowlisted documentation sites"`
}

// TextEnvelope wraps a success payload
func TextEnvelope(text string, structured any) Envelope {
	return Envelope{
		Content:           []Content{{Type: "text", Text: text}},
		StructuredContent: structured,
	}
}

// ErrorEnvelope wraps a failure message with its structured detail
func ErrorEnvelope(msg string, detail ErrorDetail) Envelope {
	return Envelope{
		IsError:           true,
		Content:           []Content{{Type: "text", Text: msg}},
		StructuredContent: detail,
	}
}
