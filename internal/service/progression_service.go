package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/config"
	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/unitofwork"
)

type IProgressionService interface {
	RecordInteraction(ctx context.Context, userId uuid.UUID, now time.Time) error
	RecordMilestone(ctx context.Context, userId uuid.UUID, name string) (firstTime bool, err error)
	CheckProgression(ctx context.Context, userId uuid.UUID) (*dto.ProgressionResult, error)
}

// progressionService drives the tutorial -> development state machine. The
// transition is one-way: GraduatedAt is written exactly once and eligibility
// is re-verified from the persisted state on every check, never cached.
type progressionService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        config.DreamConfig
	log        logger.ILogger
}

func NewProgressionService(uowFactory unitofwork.RepositoryFactory, cfg config.DreamConfig, log logger.ILogger) IProgressionService {
	return &progressionService{
		uowFactory: uowFactory,
		cfg:        cfg,
		log:        log,
	}
}

func (s *progressionService) loadOrCreateState(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.OnboardingState, error) {
	state, err := uow.OnboardingStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if state != nil {
		return state, nil
	}
	state = &entity.OnboardingState{
		UserId:              userId,
		Mode:                constant.OnboardingModeTutorial,
		QuestionsAnswered:   make(map[string]string),
		MilestonesCompleted: make(map[string]time.Time),
		PersonaSignals:      make(map[string]string),
		CreatedAt:           time.Now(),
	}
	if err := uow.OnboardingStateRepository().Create(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// RecordInteraction bumps the day counter at most once per calendar day.
func (s *progressionService) RecordInteraction(ctx context.Context, userId uuid.UUID, now time.Time) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := s.loadOrCreateState(ctx, uow, userId)
	if err != nil {
		return err
	}

	day := constant.Day(now)
	if state.LastInteractionDay == day {
		return nil
	}
	state.LastInteractionDay = day
	state.DaysOfInteraction++
	return uow.OnboardingStateRepository().Update(ctx, state)
}

// RecordMilestone is idempotent: re-recording reports firstTime=false and
// leaves the original completion timestamp alone.
func (s *progressionService) RecordMilestone(ctx context.Context, userId uuid.UUID, name string) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := s.loadOrCreateState(ctx, uow, userId)
	if err != nil {
		return false, err
	}
	if state.MilestonesCompleted == nil {
		state.MilestonesCompleted = make(map[string]time.Time)
	}
	if _, done := state.MilestonesCompleted[name]; done {
		return false, nil
	}
	state.MilestonesCompleted[name] = time.Now()
	if err := uow.OnboardingStateRepository().Update(ctx, state); err != nil {
		return false, err
	}
	return true, nil
}

// CheckProgression re-verifies every graduation requirement against the
// stored state and fires the transition when all of them hold.
func (s *progressionService) CheckProgression(ctx context.Context, userId uuid.UUID) (*dto.ProgressionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := s.loadOrCreateState(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	result := &dto.ProgressionResult{
		Mode:              state.Mode,
		DaysOfInteraction: state.DaysOfInteraction,
	}

	if state.Mode == constant.OnboardingModeDevelopment {
		return result, nil
	}

	missing := s.missingRequirements(state)
	result.MissingRequirements = missing
	if len(missing) > 0 {
		return result, nil
	}

	now := time.Now()
	state.Mode = constant.OnboardingModeDevelopment
	if state.GraduatedAt == nil {
		state.GraduatedAt = &now
	}
	if err := uow.OnboardingStateRepository().Update(ctx, state); err != nil {
		return nil, err
	}

	s.log.Info("progression", "user graduated to development mode", map[string]interface{}{
		"user_id": userId,
		"days":    state.DaysOfInteraction,
	})

	result.Mode = state.Mode
	result.Graduated = true
	return result, nil
}

func (s *progressionService) missingRequirements(state *entity.OnboardingState) []string {
	var missing []string

	if state.QuestionsAnsweredCount < s.cfg.RequiredQuestions {
		missing = append(missing, fmt.Sprintf("questions answered %d/%d", state.QuestionsAnsweredCount, s.cfg.RequiredQuestions))
	}
	if !state.AnsweredAll(constant.CommunicationPrefQuestions) {
		missing = append(missing, "communication preference questions incomplete")
	}
	if !state.AnsweredAll(constant.CrisisPatternQuestions) {
		missing = append(missing, "crisis pattern questions incomplete")
	}
	for _, m := range constant.RequiredMilestones {
		if _, done := state.MilestonesCompleted[m]; !done {
			missing = append(missing, fmt.Sprintf("milestone %s not recorded", m))
		}
	}
	optional := 0
	for _, m := range constant.OptionalMilestones {
		if _, done := state.MilestonesCompleted[m]; done {
			optional++
		}
	}
	if optional < constant.MinOptionalMilestones {
		missing = append(missing, fmt.Sprintf("optional milestones %d/%d", optional, constant.MinOptionalMilestones))
	}
	if state.DaysOfInteraction < s.cfg.MinInteractionDays {
		missing = append(missing, fmt.Sprintf("interaction days %d/%d", state.DaysOfInteraction, s.cfg.MinInteractionDays))
	}

	return missing
}
