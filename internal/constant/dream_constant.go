package constant

import "time"

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Onboarding modes
	OnboardingModeTutorial    = "tutorial"
	OnboardingModeDevelopment = "development"

	// Provider statuses
	TaskStatusOpen    = "open"
	TaskStatusBlocked = "blocked"
	TaskStatusDone    = "done"
	TaskStatusDropped = "dropped"

	TaskPriorityLow      = "low"
	TaskPriorityMedium   = "medium"
	TaskPriorityHigh     = "high"
	TaskPriorityCritical = "critical"

	ProviderStatusPending = "pending"
	ProviderStatusActive  = "active"
	ProviderStatusError   = "error"
	ProviderStatusPaused  = "paused"
	ProviderStatusRevoked = "revoked"

	// Provider categories
	ProviderCategoryTranscript = "transcript"
	ProviderCategoryMailbox    = "mailbox"

	// Dream run statuses
	DreamRunStatusCompleted = "completed"

	// Event codes
	EventDreamRunCompleted = "DREAM_RUN_COMPLETED"
	EventProviderSynced    = "PROVIDER_SYNCED"
)

// DayFormat buckets timestamps into calendar days for transcript lookup,
// interaction counting and recurring-theme detection.
const DayFormat = "2006-01-02"

// Day returns the calendar-day bucket for t.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// Required onboarding milestones; all three must be recorded before graduation.
var RequiredMilestones = []string{"first_project", "first_goal", "first_task"}

// Optional onboarding milestones; at least MinOptionalMilestones of these
// must be recorded before graduation.
var OptionalMilestones = []string{
	"first_glossary_term",
	"first_lead_confirmed",
	"first_reflection_read",
	"first_weekly_review",
	"first_provider_connected",
}

const MinOptionalMilestones = 3

// Question subsets gating graduation. IDs follow the onboarding deck order.
var CommunicationPrefQuestions = []string{"q_comm_style", "q_comm_channel", "q_comm_cadence"}
var CrisisPatternQuestions = []string{"q_crisis_signs", "q_crisis_support"}

// QuestionSignalTable maps onboarding question IDs to persona signal names.
// The reflection engine merges answers through this table when extraction
// confidence exceeds SignalConfidenceGate.
var QuestionSignalTable = map[string]string{
	"q_comm_style":     "communication_style",
	"q_comm_channel":   "preferred_channel",
	"q_comm_cadence":   "checkin_cadence",
	"q_crisis_signs":   "crisis_indicators",
	"q_crisis_support": "crisis_support_plan",
	"q_motivation":     "motivation_driver",
	"q_feedback":       "feedback_tolerance",
	"q_schedule":       "daily_rhythm",
	"q_priorities":     "top_priorities",
	"q_accountability": "accountability_style",
}

// SignalConfidenceGate: persona signals are only overwritten when the
// extracted answer's confidence exceeds this value.
const SignalConfidenceGate = 0.5
