package types

import "time"

// ResumeRecord is a generated resume kept in generation history.
type ResumeRecord struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	Format         string    `json:"format"`
	JobDescription string    `json:"job_description"`
	TargetRole     string    `json:"target_role,omitempty"`
	RequiredSkills []string  `json:"required_skills"`
	SourceLogIDs   []string  `json:"source_log_ids"`
	SessionID      string    `json:"session_id,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}
