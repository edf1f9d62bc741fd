package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/model"
)

type OnboardingMapper struct{}

func NewOnboardingMapper() *OnboardingMapper {
	return &OnboardingMapper{}
}

func (m *OnboardingMapper) StateToEntity(s *model.OnboardingState) *entity.OnboardingState {
	if s == nil {
		return nil
	}

	questions := make(map[string]string)
	if len(s.QuestionsAnswered) > 0 {
		_ = json.Unmarshal(s.QuestionsAnswered, &questions)
	}
	milestones := make(map[string]time.Time)
	if len(s.MilestonesCompleted) > 0 {
		_ = json.Unmarshal(s.MilestonesCompleted, &milestones)
	}
	signals := make(map[string]string)
	if len(s.PersonaSignals) > 0 {
		_ = json.Unmarshal(s.PersonaSignals, &signals)
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.OnboardingState{
		UserId:                 s.UserId,
		Mode:                   s.Mode,
		QuestionsAnswered:      questions,
		QuestionsAnsweredCount: s.QuestionsAnsweredCount,
		MilestonesCompleted:    milestones,
		PersonaSignals:         signals,
		DaysOfInteraction:      s.DaysOfInteraction,
		LastInteractionDay:     s.LastInteractionDay,
		ToughLoveEnabled:       s.ToughLoveEnabled,
		GraduatedAt:            s.GraduatedAt,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              updatedAt,
	}
}

func (m *OnboardingMapper) StateToModel(s *entity.OnboardingState) *model.OnboardingState {
	if s == nil {
		return nil
	}

	questions, _ := json.Marshal(orEmptyStringMap(s.QuestionsAnswered))
	milestones, _ := json.Marshal(orEmptyTimeMap(s.MilestonesCompleted))
	signals, _ := json.Marshal(orEmptyStringMap(s.PersonaSignals))

	out := &model.OnboardingState{
		UserId:                 s.UserId,
		Mode:                   s.Mode,
		QuestionsAnswered:      datatypes.JSON(questions),
		QuestionsAnsweredCount: s.QuestionsAnsweredCount,
		MilestonesCompleted:    datatypes.JSON(milestones),
		PersonaSignals:         datatypes.JSON(signals),
		DaysOfInteraction:      s.DaysOfInteraction,
		LastInteractionDay:     s.LastInteractionDay,
		ToughLoveEnabled:       s.ToughLoveEnabled,
		GraduatedAt:            s.GraduatedAt,
		CreatedAt:              s.CreatedAt,
	}
	if s.UpdatedAt != nil {
		out.UpdatedAt = *s.UpdatedAt
	}
	return out
}

func (m *OnboardingMapper) AnswerToEntity(a *model.QuestionAnswer) *entity.QuestionAnswer {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.QuestionAnswer{
		Id:         a.Id,
		UserId:     a.UserId,
		QuestionId: a.QuestionId,
		Answer:     a.Answer,
		Quality:    a.Quality,
		Confidence: a.Confidence,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *OnboardingMapper) AnswerToModel(a *entity.QuestionAnswer) *model.QuestionAnswer {
	if a == nil {
		return nil
	}
	out := &model.QuestionAnswer{
		Id:         a.Id,
		UserId:     a.UserId,
		QuestionId: a.QuestionId,
		Answer:     a.Answer,
		Quality:    a.Quality,
		Confidence: a.Confidence,
		CreatedAt:  a.CreatedAt,
	}
	if a.UpdatedAt != nil {
		out.UpdatedAt = *a.UpdatedAt
	}
	return out
}

func (m *OnboardingMapper) AnswersToEntities(as []*model.QuestionAnswer) []*entity.QuestionAnswer {
	out := make([]*entity.QuestionAnswer, len(as))
	for i, a := range as {
		out[i] = m.AnswerToEntity(a)
	}
	return out
}

func orEmptyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func orEmptyTimeMap(m map[string]time.Time) map[string]time.Time {
	if m == nil {
		return map[string]time.Time{}
	}
	return m
}
