package dto

import (
	"time"

	"github.com/google/uuid"
)

// SyncAuditMessage is the bus payload for one processed provider item. The
// consumer persists it; the unique (provider, source) key makes redelivery
// harmless.
type SyncAuditMessage struct {
	UserId     uuid.UUID `json:"user_id"`
	ProviderId uuid.UUID `json:"provider_id"`
	SourceId   string    `json:"source_id"`
	SourceType string    `json:"source_type"`
	SourceDate time.Time `json:"source_date"`
}
