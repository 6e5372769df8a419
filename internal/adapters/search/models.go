package search

// Result is one organic hit from the provider
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// resultsPage mirrors the subset of the provider payload the gateway
// consumes. Providers signal application errors in-band with a 200 and
// an error string, so both shapes are decoded together
type resultsPage struct {
	Organic []Result `json:"organic_results"`
	Error   string   `json:"error"`
}
