package specification

import (
	"time"

	"gorm.io/gorm"
)

// CreatedBetween bounds created_at to [From, To).
type CreatedBetween struct {
	From time.Time
	To   time.Time
}

func (s CreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ? AND created_at < ?", s.From, s.To)
}

// RanAfter filters runs newer than the given instant.
type RanAfter struct {
	After time.Time
}

func (s RanAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ran_at > ?", s.After)
}

// ByStatus filters by a status column value.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByStatusIn filters by a set of status values.
type ByStatusIn struct {
	Statuses []string
}

func (s ByStatusIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// DueBefore filters tasks whose due date is strictly before the instant.
type DueBefore struct {
	Before time.Time
}

func (s DueBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("due_date IS NOT NULL AND due_date < ?", s.Before)
}

// DueOn filters tasks due on one calendar day.
type DueOn struct {
	Day time.Time
}

func (s DueOn) Apply(db *gorm.DB) *gorm.DB {
	start := time.Date(s.Day.Year(), s.Day.Month(), s.Day.Day(), 0, 0, 0, 0, s.Day.Location())
	return db.Where("due_date >= ? AND due_date < ?", start, start.AddDate(0, 0, 1))
}

// NameILike matches a name column case-insensitively.
type NameILike struct {
	Name string
}

func (s NameILike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(name) = LOWER(?)", s.Name)
}

// ByTermLower matches glossary terms case-insensitively.
type ByTermLower struct {
	Term string
}

func (s ByTermLower) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("term_lower = LOWER(?)", s.Term)
}

// ByTimeframe filters goals by timeframe (weekly, monthly).
type ByTimeframe struct {
	Timeframe string
}

func (s ByTimeframe) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("timeframe = ?", s.Timeframe)
}
