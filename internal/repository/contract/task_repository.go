package contract

import (
	"context"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/repository/specification"
)

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	Update(ctx context.Context, task *entity.Task) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Task, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Task, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type GoalRepository interface {
	Create(ctx context.Context, goal *entity.Goal) error
	Update(ctx context.Context, goal *entity.Goal) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Goal, error)
}
