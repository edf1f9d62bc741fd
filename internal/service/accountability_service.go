package service

import (
	"context"

	"github.com/google/uuid"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/repository/unitofwork"
)

type IAccountabilityService interface {
	IsEnabled(ctx context.Context, userId uuid.UUID) (bool, error)
	Analyze(today *dto.ExtractedRecordSet, planner *dto.PlannerOutput) dto.ToughLoveOutput
}

// Feedback templates are fixed literals on purpose: the accountability
// voice must stay identical from run to run, not be re-derived each night.
var toughLoveTemplates = map[string]string{
	"on_track":        "Clean day. Everything you said you'd do is either done or on schedule. Keep the streak.",
	"minor_slip":      "Mostly solid, but something slipped. Look at what got dropped and decide tonight whether it still matters.",
	"significant_gap": "There's a real gap between what you committed to and what happened. Pick the two most important dropped items and deal with them tomorrow before anything new.",
	"crisis":          "This week is off the rails. Stop adding tasks. Tomorrow is triage only: drop what's dead, unblock what's stuck, and restart from a short list.",
}

type accountabilityService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAccountabilityService(uowFactory unitofwork.RepositoryFactory) IAccountabilityService {
	return &accountabilityService{uowFactory: uowFactory}
}

// IsEnabled reads the per-user persisted toggle. No onboarding state means
// the feature was never opted into.
func (s *accountabilityService) IsEnabled(ctx context.Context, userId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.OnboardingStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		return false, err
	}
	return state != nil && state.ToughLoveEnabled, nil
}

// Analyze accumulates penalty points deterministically and buckets them
// into the four-level assessment.
func (s *accountabilityService) Analyze(today *dto.ExtractedRecordSet, planner *dto.PlannerOutput) dto.ToughLoveOutput {
	score := 0

	for _, ball := range planner.DroppedBalls {
		switch ball.Urgency {
		case "critical":
			score += 3
		case "high":
			score += 2
		default:
			score += 1
		}
	}

	if !planner.Weekly.OnTrack {
		score += 2
	}

	for _, pacing := range planner.GoalPacing {
		if pacing.Progress < 25 {
			score++
		}
	}

	assessment := bucketScore(score)
	return dto.ToughLoveOutput{
		Enabled:    true,
		Score:      score,
		Assessment: assessment,
		Feedback:   toughLoveTemplates[assessment],
	}
}

func bucketScore(score int) string {
	switch {
	case score == 0:
		return "on_track"
	case score <= 2:
		return "minor_slip"
	case score <= 5:
		return "significant_gap"
	default:
		return "crisis"
	}
}
