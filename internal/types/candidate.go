package types

import "time"

// Candidate is a work experience returned by search, carrying the
// provider-supplied base relevance score. BaseRelevance is clamped to [0, 1]
// by the ranker before use.
type Candidate struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	BaseRelevance float64   `json:"base_relevance"`
	Timestamp     time.Time `json:"timestamp"`
	Skills        []string  `json:"skills"`
	Source        string    `json:"source,omitempty"`
}
