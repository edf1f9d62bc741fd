package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_user_status,priority:1"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	Context     string     `gorm:"type:text"`
	Priority    string     `gorm:"type:varchar(16);default:'medium'"`
	Status      string     `gorm:"type:varchar(16);default:'open';index:idx_tasks_user_status,priority:2"`
	IsExplicit  bool       `gorm:"default:false"`
	DueDate     *time.Time `gorm:"index"`
	ParentId    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}

type Goal struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Timeframe string    `gorm:"type:varchar(16);default:'weekly'"`
	Progress  float64   `gorm:"default:0"`
	WeekStart time.Time `gorm:"type:date"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Goal) TableName() string {
	return "goals"
}
