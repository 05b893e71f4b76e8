package domain

import "time"

// QueryError records a single per-query fetch or parse failure. Failures are
// data, they ride along in the artifact instead of aborting the run.
type QueryError struct {
	Query string `json:"query"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Artifact is the full snapshot produced by one ingestion run. It is replaced
// wholesale on every run, never patched incrementally.
type Artifact struct {
	GeneratedAt time.Time    `json:"generated_at"`
	ItemCount   int          `json:"item_count"`
	QueryCount  int          `json:"query_count"`
	Errors      []QueryError `json:"errors"`
	Items       []Item       `json:"items"`
}
