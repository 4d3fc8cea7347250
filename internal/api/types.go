package api

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ResultsResponse wraps listing and search results.
type ResultsResponse struct {
	Results any `json:"results"`
}

// FeedItem is one entry in the high-priority feed: a visible flagged record
// tagged with the collection it came from.
type FeedItem struct {
	Type      string `json:"type"`
	FlaggedAt string `json:"flagged_at,omitempty"`
	Record    any    `json:"record"`
}
