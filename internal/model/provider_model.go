package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProviderRegistration struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId              uuid.UUID      `gorm:"type:uuid;not null;index:idx_providers_user_status,priority:1"`
	Category            string         `gorm:"type:varchar(32);not null"`
	DisplayName         string         `gorm:"type:varchar(128)"`
	ConnectionConfig    datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Status              string         `gorm:"type:varchar(16);default:'pending';index:idx_providers_user_status,priority:2"`
	ExtractionCursor    datatypes.JSON `gorm:"type:jsonb"`
	LastExtractionAt    *time.Time
	LastError           string    `gorm:"type:text"`
	ErrorCount          int       `gorm:"default:0"`
	SupportsIncremental bool      `gorm:"default:true"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (ProviderRegistration) TableName() string {
	return "provider_registrations"
}

type SyncAuditLog struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_sync_audit_provider_source,priority:1"`
	SourceId   string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_sync_audit_provider_source,priority:2"`
	SourceType string    `gorm:"type:varchar(64)"`
	SourceDate time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (SyncAuditLog) TableName() string {
	return "sync_audit_logs"
}
