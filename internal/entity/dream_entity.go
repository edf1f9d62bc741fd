package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/dto"
)

// DreamRun is the persisted audit record of one pipeline invocation.
type DreamRun struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Status    string // completed
	Result    dto.DreamRunResult
	Errors    []string
	RanAt     time.Time
	CreatedAt time.Time
}
