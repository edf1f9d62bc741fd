package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DreamRun struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_dream_runs_user_ran,priority:1"`
	Status    string         `gorm:"type:varchar(16);not null"`
	Result    datatypes.JSON `gorm:"type:jsonb"`
	Errors    datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	RanAt     time.Time      `gorm:"not null;index:idx_dream_runs_user_ran,priority:2"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (DreamRun) TableName() string {
	return "dream_runs"
}
