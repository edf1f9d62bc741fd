package mapper

import (
	"time"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/model"
)

type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

func (m *TaskMapper) ToEntity(t *model.Task) *entity.Task {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Task{
		Id:          t.Id,
		UserId:      t.UserId,
		Title:       t.Title,
		Description: t.Description,
		Context:     t.Context,
		Priority:    t.Priority,
		Status:      t.Status,
		IsExplicit:  t.IsExplicit,
		DueDate:     t.DueDate,
		ParentId:    t.ParentId,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *TaskMapper) ToModel(t *entity.Task) *model.Task {
	if t == nil {
		return nil
	}
	out := &model.Task{
		Id:          t.Id,
		UserId:      t.UserId,
		Title:       t.Title,
		Description: t.Description,
		Context:     t.Context,
		Priority:    t.Priority,
		Status:      t.Status,
		IsExplicit:  t.IsExplicit,
		DueDate:     t.DueDate,
		ParentId:    t.ParentId,
		CreatedAt:   t.CreatedAt,
	}
	if t.UpdatedAt != nil {
		out.UpdatedAt = *t.UpdatedAt
	}
	return out
}

func (m *TaskMapper) ToEntities(ts []*model.Task) []*entity.Task {
	out := make([]*entity.Task, len(ts))
	for i, t := range ts {
		out[i] = m.ToEntity(t)
	}
	return out
}

func (m *TaskMapper) GoalToEntity(g *model.Goal) *entity.Goal {
	if g == nil {
		return nil
	}

	var updatedAt *time.Time
	if !g.UpdatedAt.IsZero() {
		u := g.UpdatedAt
		updatedAt = &u
	}

	return &entity.Goal{
		Id:        g.Id,
		UserId:    g.UserId,
		Title:     g.Title,
		Timeframe: g.Timeframe,
		Progress:  g.Progress,
		WeekStart: g.WeekStart,
		CreatedAt: g.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *TaskMapper) GoalToModel(g *entity.Goal) *model.Goal {
	if g == nil {
		return nil
	}
	out := &model.Goal{
		Id:        g.Id,
		UserId:    g.UserId,
		Title:     g.Title,
		Timeframe: g.Timeframe,
		Progress:  g.Progress,
		WeekStart: g.WeekStart,
		CreatedAt: g.CreatedAt,
	}
	if g.UpdatedAt != nil {
		out.UpdatedAt = *g.UpdatedAt
	}
	return out
}

func (m *TaskMapper) GoalsToEntities(gs []*model.Goal) []*entity.Goal {
	out := make([]*entity.Goal, len(gs))
	for i, g := range gs {
		out[i] = m.GoalToEntity(g)
	}
	return out
}
