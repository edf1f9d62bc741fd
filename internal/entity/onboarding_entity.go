package entity

import (
	"time"

	"github.com/google/uuid"
)

// OnboardingState is the per-user progression row. GraduatedAt is set exactly
// once; it is the terminal marker of the tutorial -> development transition.
type OnboardingState struct {
	UserId                 uuid.UUID
	Mode                   string // tutorial | development
	QuestionsAnswered      map[string]string
	QuestionsAnsweredCount int
	MilestonesCompleted    map[string]time.Time
	PersonaSignals         map[string]string
	DaysOfInteraction      int
	LastInteractionDay     string // calendar-day bucket, for idempotent counting
	ToughLoveEnabled       bool
	GraduatedAt            *time.Time
	CreatedAt              time.Time
	UpdatedAt              *time.Time
}

// AnsweredAll reports whether every question in ids has an answer recorded.
func (s *OnboardingState) AnsweredAll(ids []string) bool {
	for _, id := range ids {
		if _, ok := s.QuestionsAnswered[id]; !ok {
			return false
		}
	}
	return true
}

// QuestionAnswer is the durable record of one extracted onboarding answer.
type QuestionAnswer struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	QuestionId string
	Answer     string
	Quality    string // full | partial
	Confidence float64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
