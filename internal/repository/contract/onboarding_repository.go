package contract

import (
	"context"

	"github.com/google/uuid"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/repository/specification"
)

type OnboardingStateRepository interface {
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.OnboardingState, error)
	Create(ctx context.Context, state *entity.OnboardingState) error
	Update(ctx context.Context, state *entity.OnboardingState) error
}

type QuestionAnswerRepository interface {
	// Upsert writes the answer, replacing any prior answer for the same
	// (user, question) pair.
	Upsert(ctx context.Context, answer *entity.QuestionAnswer) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuestionAnswer, error)
}
