package dto

import (
	"time"

	"github.com/google/uuid"
)

// DroppedBall is an open task whose due date has passed.
type DroppedBall struct {
	TaskId      uuid.UUID `json:"task_id"`
	Title       string    `json:"title"`
	DueDate     time.Time `json:"due_date"`
	DaysOverdue int       `json:"days_overdue"`
	Urgency     string    `json:"urgency"` // medium | high | critical
}

// TomorrowPriority is one ranked slot of the next-day plan.
type TomorrowPriority struct {
	Rank   int       `json:"rank"`
	TaskId uuid.UUID `json:"task_id"`
	Title  string    `json:"title"`
	Reason string    `json:"reason"` // due_tomorrow | critical | blocked
}

// GoalPacing scores one weekly goal against its expected progress.
type GoalPacing struct {
	GoalId   uuid.UUID `json:"goal_id"`
	Title    string    `json:"title"`
	Progress float64   `json:"progress"` // 0-100
	Expected float64   `json:"expected"` // 0-100
}

// WeeklyStatus summarizes weekly-goal pacing.
type WeeklyStatus struct {
	Expected float64  `json:"expected"`
	Actual   float64  `json:"actual"`
	OnTrack  bool     `json:"on_track"`
	Blockers []string `json:"blockers,omitempty"`
}

// FollowUp is a newly proposed follow-up task for a dropped ball.
type FollowUp struct {
	ParentTaskId uuid.UUID `json:"parent_task_id"`
	Title        string    `json:"title"`
	Priority     string    `json:"priority"`
	DueDate      time.Time `json:"due_date"`
}

// PlannerOutput is the planning phase envelope.
type PlannerOutput struct {
	DroppedBalls       []DroppedBall      `json:"dropped_balls,omitempty"`
	TomorrowPriorities []TomorrowPriority `json:"tomorrow_priorities,omitempty"`
	FollowUps          []FollowUp         `json:"follow_ups,omitempty"`
	GoalPacing         []GoalPacing       `json:"goal_pacing,omitempty"`
	Weekly             WeeklyStatus       `json:"weekly"`
}
