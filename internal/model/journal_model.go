package model

import (
	"time"

	"github.com/google/uuid"
)

type JournalEntry struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_journal_entries_user_date,priority:1"`
	Date      time.Time `gorm:"type:date;not null;index:idx_journal_entries_user_date,priority:2"`
	Summary   string    `gorm:"type:text"`
	MoodTrend string    `gorm:"type:varchar(16)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

type EntityMention struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	JournalEntryId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_mentions_entry_entity,priority:1"`
	KnownEntityId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_mentions_entry_entity,priority:2"`
	Context        string    `gorm:"type:text"`
	Sentiment      string    `gorm:"type:varchar(32)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (EntityMention) TableName() string {
	return "entity_mentions"
}

type Lead struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"`
	JournalEntryId   uuid.UUID `gorm:"type:uuid;not null;index"`
	MentionText      string    `gorm:"type:varchar(255);not null"`
	Context          string    `gorm:"type:text"`
	RelationshipType string    `gorm:"type:varchar(32);default:'unknown'"`
	Confirmed        bool      `gorm:"default:false"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (Lead) TableName() string {
	return "leads"
}
