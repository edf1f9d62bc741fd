package contract

import (
	"context"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/repository/specification"
)

type ProviderRegistrationRepository interface {
	Create(ctx context.Context, reg *entity.ProviderRegistration) error
	// Update persists cursor, lastExtractionAt and error state in one row
	// write; the store's single-row atomicity is all the sync engine needs.
	Update(ctx context.Context, reg *entity.ProviderRegistration) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProviderRegistration, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProviderRegistration, error)
}

type SyncAuditLogRepository interface {
	// Create is idempotent on (provider, source id); duplicate deliveries
	// from the bus are absorbed.
	Create(ctx context.Context, log *entity.SyncAuditLog) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
