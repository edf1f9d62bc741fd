package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/internal/repository/unitofwork"
)

type IPlanningService interface {
	Plan(ctx context.Context, userId uuid.UUID, now time.Time) (*dto.PlannerOutput, error)
	Save(ctx context.Context, userId uuid.UUID, out *dto.PlannerOutput) error
}

const (
	tomorrowPriorityCap = 5
	criticalSlotCap     = 2
	blockedSlotCap      = 2
	onTrackTolerance    = 10.0
	blockerLag          = 20.0
)

// planningService detects dropped balls, assembles tomorrow's priorities
// and paces weekly goals against the calendar.
type planningService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewPlanningService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IPlanningService {
	return &planningService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *planningService) Plan(ctx context.Context, userId uuid.UUID, now time.Time) (*dto.PlannerOutput, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	out := &dto.PlannerOutput{}

	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	// Dropped balls: open tasks whose due date is strictly in the past.
	overdue, err := uow.TaskRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByStatus{Status: constant.TaskStatusOpen},
		specification.DueBefore{Before: today},
	)
	if err != nil {
		return nil, err
	}
	for _, task := range overdue {
		gap := int(today.Sub(startOfDay(*task.DueDate)).Hours() / 24)
		out.DroppedBalls = append(out.DroppedBalls, dto.DroppedBall{
			TaskId:      task.Id,
			Title:       task.Title,
			DueDate:     *task.DueDate,
			DaysOverdue: gap,
			Urgency:     escalateUrgency(task.Priority, gap),
		})
		out.FollowUps = append(out.FollowUps, dto.FollowUp{
			ParentTaskId: task.Id,
			Title:        fmt.Sprintf("Follow up: %s", task.Title),
			Priority:     followUpPriority(escalateUrgency(task.Priority, gap)),
			DueDate:      tomorrow,
		})
	}

	if err := s.planTomorrow(ctx, uow.TaskRepository().FindAll, userId, tomorrow, out); err != nil {
		return nil, err
	}

	if err := s.paceGoals(ctx, uow.GoalRepository().FindAll, userId, now, out); err != nil {
		return nil, err
	}

	return out, nil
}

type taskFinder = func(ctx context.Context, specs ...specification.Specification) ([]*entity.Task, error)

// planTomorrow fills the priority slots in strict precedence order: due
// tomorrow, then up to two criticals, then up to two blocked tasks, capped
// at five and re-ranked 1..N.
func (s *planningService) planTomorrow(ctx context.Context, findTasks taskFinder, userId uuid.UUID, tomorrow time.Time, out *dto.PlannerOutput) error {
	taken := make(map[uuid.UUID]bool)

	add := func(taskId uuid.UUID, title, reason string) bool {
		if taken[taskId] || len(out.TomorrowPriorities) >= tomorrowPriorityCap {
			return false
		}
		taken[taskId] = true
		out.TomorrowPriorities = append(out.TomorrowPriorities, dto.TomorrowPriority{
			Rank:   len(out.TomorrowPriorities) + 1,
			TaskId: taskId,
			Title:  title,
			Reason: reason,
		})
		return true
	}

	dueTomorrow, err := findTasks(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByStatus{Status: constant.TaskStatusOpen},
		specification.DueOn{Day: tomorrow},
	)
	if err != nil {
		return err
	}
	for _, t := range dueTomorrow {
		add(t.Id, t.Title, "due_tomorrow")
	}

	criticals, err := findTasks(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByStatus{Status: constant.TaskStatusOpen},
		specification.Filter("priority", constant.TaskPriorityCritical),
	)
	if err != nil {
		return err
	}
	slots := criticalSlotCap
	for _, t := range criticals {
		if slots == 0 {
			break
		}
		if add(t.Id, t.Title, "critical") {
			slots--
		}
	}

	blocked, err := findTasks(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByStatus{Status: constant.TaskStatusBlocked},
	)
	if err != nil {
		return err
	}
	slots = blockedSlotCap
	for _, t := range blocked {
		if slots == 0 {
			break
		}
		if add(t.Id, t.Title, "blocked") {
			slots--
		}
	}

	return nil
}

type goalFinder = func(ctx context.Context, specs ...specification.Specification) ([]*entity.Goal, error)

func (s *planningService) paceGoals(ctx context.Context, findGoals goalFinder, userId uuid.UUID, now time.Time, out *dto.PlannerOutput) error {
	goals, err := findGoals(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByTimeframe{Timeframe: "weekly"},
	)
	if err != nil {
		return err
	}

	expected := expectedWeeklyProgress(now)
	out.Weekly.Expected = expected

	if len(goals) == 0 {
		out.Weekly.OnTrack = true
		return nil
	}

	var total float64
	for _, g := range goals {
		total += g.Progress
		out.GoalPacing = append(out.GoalPacing, dto.GoalPacing{
			GoalId:   g.Id,
			Title:    g.Title,
			Progress: g.Progress,
			Expected: expected,
		})
		if expected-g.Progress > blockerLag {
			out.Weekly.Blockers = append(out.Weekly.Blockers, g.Title)
		}
	}
	out.Weekly.Actual = total / float64(len(goals))
	// Being ahead of pace never counts against the plan.
	out.Weekly.OnTrack = expected-out.Weekly.Actual <= onTrackTolerance
	return nil
}

// Save persists the plan's side effects: overdue parents are marked dropped
// and their follow-up tasks are created, linked via ParentId. Follow-ups are
// only created for parents that transitioned in this call, so replaying the
// same output does not duplicate them.
func (s *planningService) Save(ctx context.Context, userId uuid.UUID, out *dto.PlannerOutput) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	dropped := make(map[uuid.UUID]bool)
	for _, ball := range out.DroppedBalls {
		task, err := uow.TaskRepository().FindOne(ctx, specification.ByID{ID: ball.TaskId})
		if err != nil {
			return err
		}
		if task == nil || task.Status != constant.TaskStatusOpen {
			continue
		}
		task.Status = constant.TaskStatusDropped
		if err := uow.TaskRepository().Update(ctx, task); err != nil {
			return err
		}
		dropped[task.Id] = true
	}

	for _, f := range out.FollowUps {
		if !dropped[f.ParentTaskId] {
			continue
		}
		parentId := f.ParentTaskId
		due := f.DueDate
		task := &entity.Task{
			Id:        uuid.New(),
			UserId:    userId,
			Title:     f.Title,
			Priority:  f.Priority,
			Status:    constant.TaskStatusOpen,
			DueDate:   &due,
			ParentId:  &parentId,
			CreatedAt: time.Now(),
		}
		if err := uow.TaskRepository().Create(ctx, task); err != nil {
			return err
		}
	}

	return nil
}

// escalateUrgency applies the overdue ladder: critical by priority or a gap
// over 7 days, high by priority or a gap over 3 days, else medium.
func escalateUrgency(priority string, daysOverdue int) string {
	switch {
	case priority == constant.TaskPriorityCritical || daysOverdue > 7:
		return "critical"
	case priority == constant.TaskPriorityHigh || daysOverdue > 3:
		return "high"
	default:
		return "medium"
	}
}

func followUpPriority(urgency string) string {
	switch urgency {
	case "critical":
		return constant.TaskPriorityCritical
	case "high":
		return constant.TaskPriorityHigh
	default:
		return constant.TaskPriorityMedium
	}
}

// expectedWeeklyProgress maps the elapsed share of the week (Monday-based)
// onto a 0-100 scale.
func expectedWeeklyProgress(now time.Time) float64 {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	return float64(weekday) / 7 * 100
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
