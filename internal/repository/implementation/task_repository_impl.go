package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/mapper"
	"ai-companion-be/internal/model"
	"ai-companion-be/internal/repository/contract"
	"ai-companion-be/internal/repository/specification"
)

type TaskRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskMapper
}

func NewTaskRepository(db *gorm.DB) contract.TaskRepository {
	return &TaskRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskMapper(),
	}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entity.Task) error {
	m := r.mapper.ToModel(task)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.ToEntity(m)
	return nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entity.Task) error {
	m := r.mapper.ToModel(task)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.ToEntity(m)
	return nil
}

func (r *TaskRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Task, error) {
	var m model.Task
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TaskRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Task, error) {
	var models []*model.Task
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TaskRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Task{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type GoalRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskMapper
}

func NewGoalRepository(db *gorm.DB) contract.GoalRepository {
	return &GoalRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskMapper(),
	}
}

func (r *GoalRepositoryImpl) Create(ctx context.Context, goal *entity.Goal) error {
	m := r.mapper.GoalToModel(goal)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*goal = *r.mapper.GoalToEntity(m)
	return nil
}

func (r *GoalRepositoryImpl) Update(ctx context.Context, goal *entity.Goal) error {
	m := r.mapper.GoalToModel(goal)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*goal = *r.mapper.GoalToEntity(m)
	return nil
}

func (r *GoalRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Goal, error) {
	var models []*model.Goal
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.GoalsToEntities(models), nil
}
