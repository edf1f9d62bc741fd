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

type DreamRunRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DreamMapper
}

func NewDreamRunRepository(db *gorm.DB) contract.DreamRunRepository {
	return &DreamRunRepositoryImpl{
		db:     db,
		mapper: mapper.NewDreamMapper(),
	}
}

func (r *DreamRunRepositoryImpl) Create(ctx context.Context, run *entity.DreamRun) error {
	m := r.mapper.ToModel(run)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*run = *r.mapper.ToEntity(m)
	return nil
}

func (r *DreamRunRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DreamRun, error) {
	var m model.DreamRun
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DreamRunRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DreamRun, error) {
	var models []*model.DreamRun
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DreamRunRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.DreamRun{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
