package domain

import (
	"context"
	"encoding/json"
)

// Handler executes one registered operation. Arguments arrive as raw JSON
// and each handler decodes its own input shape
type Handler func(ctx context.Context, args json.RawMessage) (Result, error)

// RegistryPort is consumed by transports and other modules
type RegistryPort interface {
	// Register adds an operation; duplicate names panic during bootstrap
	Register(name, description string, h Handler)

	// Dispatch runs one gated call and always returns an envelope
	Dispatch(ctx context.Context, in CallInput) Envelope

	// Operations lists registered operations sorted by name
	Operations() []OperationInfo
}

// Recorder receives a best-effort audit record per dispatched call
type Recorder interface {
	Record(ctx context.Context, caller, operation string, isError bool, code string)
}
