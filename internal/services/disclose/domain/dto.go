// Package domain holds DTOs for the project disclosure operation
package domain

// DiscloseInput optionally narrows disclosure to a subset of the
// fixed descriptors. Empty means all of them
type DiscloseInput struct {
	Files []string `json:"files,omitempty" validate:"omitempty,max=8,dive,required,max=255" example:"README.md"`
}

// FileSection is one disclosed file. Error is set instead of Content
// when the file could not be read; the operation still succeeds
type FileSection struct {
	Name    string `json:"name" example:"README.md"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty" example:"file too large"`
}

// DiscloseOutput is the structured payload for the disclosure envelope
type DiscloseOutput struct {
	Sections []FileSection `json:"sections"`
}
