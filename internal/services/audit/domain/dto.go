// Package domain holds the audit trail record shape
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CallRecord is one dispatched gate call
type CallRecord struct {
	ID        uuid.UUID `json:"id"`
	Caller    string    `json:"caller"`
	Operation string    `json:"operation"`
	IsError   bool      `json:"is_error"`
	Code      string    `json:"code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
