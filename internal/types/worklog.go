// Package types defines the shared domain types for the resume journal.
package types

import "time"

// WorkLogEntry is a single journaled unit of work. Entries are the primary
// evidence source for skill detection and resume generation.
type WorkLogEntry struct {
	ID              string            `json:"id"`
	Content         string            `json:"content"`
	UserID          string            `json:"user_id"`
	Timestamp       time.Time         `json:"timestamp"`
	ExtractedSkills []string          `json:"extracted_skills"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}
