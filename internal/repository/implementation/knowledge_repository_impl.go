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

type KnownEntityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnownEntityRepository(db *gorm.DB) contract.KnownEntityRepository {
	return &KnownEntityRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnownEntityRepositoryImpl) Create(ctx context.Context, ke *entity.KnownEntity) error {
	m := r.mapper.EntityToModel(ke)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ke = *r.mapper.EntityToEntity(m)
	return nil
}

func (r *KnownEntityRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnownEntity, error) {
	var m model.KnownEntity
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.EntityToEntity(&m), nil
}

func (r *KnownEntityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnownEntity, error) {
	var models []*model.KnownEntity
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.EntitiesToEntities(models), nil
}

type GlossaryTermRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewGlossaryTermRepository(db *gorm.DB) contract.GlossaryTermRepository {
	return &GlossaryTermRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *GlossaryTermRepositoryImpl) Create(ctx context.Context, term *entity.GlossaryTerm) error {
	m := r.mapper.TermToModel(term)
	// Case-insensitive dedupe lives in the unique (user_id, term_lower) key.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "term_lower"}},
			DoNothing: true,
		}).
		Create(m).Error
}

func (r *GlossaryTermRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GlossaryTerm, error) {
	var m model.GlossaryTerm
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TermToEntity(&m), nil
}

func (r *GlossaryTermRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GlossaryTerm, error) {
	var models []*model.GlossaryTerm
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TermsToEntities(models), nil
}
