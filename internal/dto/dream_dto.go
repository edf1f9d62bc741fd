package dto

import (
	"time"

	"github.com/google/uuid"
)

// SyncResult reports one provider's sync attempt.
type SyncResult struct {
	ProviderId     uuid.UUID `json:"provider_id"`
	Category       string    `json:"category"`
	ItemsProcessed int       `json:"items_processed"`
	Skipped        bool      `json:"skipped"` // cool-down suppression
	Errors         []string  `json:"errors,omitempty"`
}

// ProgressionResult reports the progression phase.
type ProgressionResult struct {
	Mode                string   `json:"mode"`
	Graduated           bool     `json:"graduated"`
	DaysOfInteraction   int      `json:"days_of_interaction"`
	MissingRequirements []string `json:"missing_requirements,omitempty"`
}

// DreamRunResult is the immutable envelope of one orchestrator invocation.
// All phase fields are always present; zero values mark degraded phases.
type DreamRunResult struct {
	RunId       uuid.UUID          `json:"run_id"`
	UserId      uuid.UUID          `json:"user_id"`
	RanAt       time.Time          `json:"ran_at"`
	Empty       bool               `json:"empty"` // no transcript material existed
	Sync        []SyncResult       `json:"sync"`
	Extraction  ExtractedRecordSet `json:"extraction"`
	Routing     RoutingCounts      `json:"routing"`
	Reflection  ReflectionOutput   `json:"reflection"`
	Planner     PlannerOutput      `json:"planner"`
	ToughLove   ToughLoveOutput    `json:"tough_love"`
	Progression ProgressionResult  `json:"progression"`
	Errors      []string           `json:"errors,omitempty"`
}
