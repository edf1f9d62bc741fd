package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-companion-be/pkg/provider"
)

// ProviderRegistration is one registered external content source. Only the
// sync engine mutates it: cursor advance on success, error counter on
// failure. Registrations are never deleted, only soft-revoked.
type ProviderRegistration struct {
	Id                  uuid.UUID
	UserId              uuid.UUID
	Category            string // transcript | mailbox | ...
	DisplayName         string
	ConnectionConfig    map[string]string
	Status              string // pending | active | error | paused | revoked
	ExtractionCursor    provider.Cursor
	LastExtractionAt    *time.Time
	LastError           string
	ErrorCount          int
	SupportsIncremental bool
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// SyncAuditLog records one processed provider item, written by the audit
// consumer off the in-process bus.
type SyncAuditLog struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	ProviderId uuid.UUID
	SourceId   string
	SourceType string
	SourceDate time.Time
	CreatedAt  time.Time
}
