package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one message of the user's own conversation history; the
// orchestrator reads the same-day slice of these as the base transcript.
type ChatMessage struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	SessionId string
	Role      string // user | assistant | system
	Content   string
	CreatedAt time.Time
}
