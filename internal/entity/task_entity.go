package entity

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Description string
	Context     string
	Priority    string // low | medium | high | critical
	Status      string // open | blocked | done | dropped
	IsExplicit  bool
	DueDate     *time.Time
	ParentId    *uuid.UUID // set on follow-up tasks
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Goal is a weekly (or longer) goal scored by the planning engine.
type Goal struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Timeframe string  // weekly | monthly
	Progress  float64 // 0-100
	WeekStart time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}
