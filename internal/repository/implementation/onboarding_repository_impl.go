package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/mapper"
	"ai-companion-be/internal/model"
	"ai-companion-be/internal/repository/contract"
	"ai-companion-be/internal/repository/specification"
)

type OnboardingStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OnboardingMapper
}

func NewOnboardingStateRepository(db *gorm.DB) contract.OnboardingStateRepository {
	return &OnboardingStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewOnboardingMapper(),
	}
}

func (r *OnboardingStateRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.OnboardingState, error) {
	var m model.OnboardingState
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.StateToEntity(&m), nil
}

func (r *OnboardingStateRepositoryImpl) Create(ctx context.Context, state *entity.OnboardingState) error {
	m := r.mapper.StateToModel(state)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*state = *r.mapper.StateToEntity(m)
	return nil
}

func (r *OnboardingStateRepositoryImpl) Update(ctx context.Context, state *entity.OnboardingState) error {
	m := r.mapper.StateToModel(state)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*state = *r.mapper.StateToEntity(m)
	return nil
}

type QuestionAnswerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OnboardingMapper
}

func NewQuestionAnswerRepository(db *gorm.DB) contract.QuestionAnswerRepository {
	return &QuestionAnswerRepositoryImpl{
		db:     db,
		mapper: mapper.NewOnboardingMapper(),
	}
}

func (r *QuestionAnswerRepositoryImpl) Upsert(ctx context.Context, answer *entity.QuestionAnswer) error {
	m := r.mapper.AnswerToModel(answer)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"answer", "quality", "confidence", "updated_at"}),
		}).
		Create(m).Error
}

func (r *QuestionAnswerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuestionAnswer, error) {
	var models []*model.QuestionAnswer
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.AnswersToEntities(models), nil
}
