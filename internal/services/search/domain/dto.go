// Package domain holds DTOs for the documentation search operation
package domain

// SearchInput is the argument shape for the search operation.
// The raw query cap matches the sanitizer's input ceiling
type SearchInput struct {
	Query string `json:"query" validate:"required,max=512" example:"golang context cancellation"`
	Count int    `json:"count,omitempty" validate:"omitempty,min=1,max=10" example:"5"`
}

// ResultItem is one hit returned to the caller
type ResultItem struct {
	Title   string `json:"title" example:"The Go Blog: Context"`
	Link    string `json:"link" example:"https://go.dev/blog/context"`
	Snippet string `json:"snippet" example:"Package context defines the Context type"`
}

// SearchOutput is the structured payload for the search envelope.
// ResultCount always equals len(Results)
type SearchOutput struct {
	Query       string       `json:"query" example:"golang context cancellation"`
	ResultCount int          `json:"result_count" example:"5"`
	Results     []ResultItem `json:"results"`
}
