package entity

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is the parent summary record one dream run writes; mentions
// and leads link back to it.
type JournalEntry struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Date      time.Time
	Summary   string
	MoodTrend string
	CreatedAt time.Time
}

// EntityMention links a journal entry to a resolved known entity.
type EntityMention struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	JournalEntryId uuid.UUID
	KnownEntityId  uuid.UUID
	Context        string
	Sentiment      string
	CreatedAt      time.Time
}

// Lead is an unresolved entity mention awaiting human confirmation.
type Lead struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	JournalEntryId   uuid.UUID
	MentionText      string
	Context          string
	RelationshipType string // family | colleague | friend | business | unknown
	Confirmed        bool
	CreatedAt        time.Time
}
