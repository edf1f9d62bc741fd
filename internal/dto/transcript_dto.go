package dto

import "time"

// TranscriptMessage is one role-tagged message of a day's transcript.
type TranscriptMessage struct {
	Role      string     `json:"role"` // user | assistant | system
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// DayTranscript merges the user's own same-day messages with provider-synced
// content, time-sorted. It is recomputed each run and never persisted verbatim.
type DayTranscript struct {
	Date             time.Time           `json:"date"`
	Messages         []TranscriptMessage `json:"messages"`
	SourceSessionIds []string            `json:"source_session_ids"`
}

// IsEmpty reports whether the transcript carries no material at all.
func (t *DayTranscript) IsEmpty() bool {
	return t == nil || len(t.Messages) == 0
}
