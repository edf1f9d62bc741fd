package contract

import (
	"context"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/repository/specification"
)

type JournalEntryRepository interface {
	Create(ctx context.Context, entry *entity.JournalEntry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JournalEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JournalEntry, error)
}

type EntityMentionRepository interface {
	// Create is idempotent on (journal_entry_id, known_entity_id); replays
	// are absorbed by the unique constraint.
	Create(ctx context.Context, mention *entity.EntityMention) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EntityMention, error)
}

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error)
}
