package contract

import (
	"context"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/repository/specification"
)

type DreamRunRepository interface {
	Create(ctx context.Context, run *entity.DreamRun) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DreamRun, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DreamRun, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
