package contract

import (
	"context"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/repository/specification"
)

type KnownEntityRepository interface {
	Create(ctx context.Context, ke *entity.KnownEntity) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnownEntity, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnownEntity, error)
}

type GlossaryTermRepository interface {
	// Create is idempotent on the case-insensitive (user, term) pair.
	Create(ctx context.Context, term *entity.GlossaryTerm) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GlossaryTerm, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GlossaryTerm, error)
}
