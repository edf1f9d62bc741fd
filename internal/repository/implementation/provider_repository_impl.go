package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/mapper"
	"ai-companion-be/internal/model"
	"ai-companion-be/internal/repository/contract"
	"ai-companion-be/internal/repository/specification"
)

type ProviderRegistrationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProviderMapper
}

func NewProviderRegistrationRepository(db *gorm.DB) contract.ProviderRegistrationRepository {
	return &ProviderRegistrationRepositoryImpl{
		db:     db,
		mapper: mapper.NewProviderMapper(),
	}
}

func (r *ProviderRegistrationRepositoryImpl) Create(ctx context.Context, reg *entity.ProviderRegistration) error {
	m := r.mapper.ToModel(reg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*reg = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProviderRegistrationRepositoryImpl) Update(ctx context.Context, reg *entity.ProviderRegistration) error {
	m := r.mapper.ToModel(reg)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*reg = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProviderRegistrationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProviderRegistration, error) {
	var m model.ProviderRegistration
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProviderRegistrationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProviderRegistration, error) {
	var models []*model.ProviderRegistration
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

type SyncAuditLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProviderMapper
}

func NewSyncAuditLogRepository(db *gorm.DB) contract.SyncAuditLogRepository {
	return &SyncAuditLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewProviderMapper(),
	}
}

func (r *SyncAuditLogRepositoryImpl) Create(ctx context.Context, log *entity.SyncAuditLog) error {
	m := r.mapper.AuditToModel(log)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider_id"}, {Name: "source_id"}},
			DoNothing: true,
		}).
		Create(m).Error
}

func (r *SyncAuditLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.SyncAuditLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
