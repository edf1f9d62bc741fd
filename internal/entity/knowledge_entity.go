package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnownEntity is a confirmed person, company or project the user has
// referenced before; extraction resolves new mentions against these by name.
type KnownEntity struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Type      string // person | company | project | unknown
	Notes     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type GlossaryTerm struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Term       string
	Definition string
	TermType   string // acronym | jargon | name
	CreatedAt  time.Time
}
