package model

import (
	"time"

	"github.com/google/uuid"
)

type KnownEntity struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null;index"`
	Type      string    `gorm:"type:varchar(32);default:'unknown'"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (KnownEntity) TableName() string {
	return "known_entities"
}

type GlossaryTerm struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_glossary_user_term,priority:1"`
	Term       string    `gorm:"type:varchar(128);not null"`
	TermLower  string    `gorm:"type:varchar(128);not null;uniqueIndex:uq_glossary_user_term,priority:2"`
	Definition string    `gorm:"type:text"`
	TermType   string    `gorm:"type:varchar(32)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (GlossaryTerm) TableName() string {
	return "glossary_terms"
}
