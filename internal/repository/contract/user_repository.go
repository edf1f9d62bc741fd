package contract

import (
	"context"

	"github.com/google/uuid"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/repository/specification"
)

type UserRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ChatMessageRepository interface {
	Create(ctx context.Context, msg *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
}
