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

type JournalEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JournalMapper
}

func NewJournalEntryRepository(db *gorm.DB) contract.JournalEntryRepository {
	return &JournalEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewJournalMapper(),
	}
}

func (r *JournalEntryRepositoryImpl) Create(ctx context.Context, entry *entity.JournalEntry) error {
	m := r.mapper.EntryToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.EntryToEntity(m)
	return nil
}

func (r *JournalEntryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JournalEntry, error) {
	var m model.JournalEntry
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.EntryToEntity(&m), nil
}

func (r *JournalEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JournalEntry, error) {
	var models []*model.JournalEntry
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.EntriesToEntities(models), nil
}

type EntityMentionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JournalMapper
}

func NewEntityMentionRepository(db *gorm.DB) contract.EntityMentionRepository {
	return &EntityMentionRepositoryImpl{
		db:     db,
		mapper: mapper.NewJournalMapper(),
	}
}

func (r *EntityMentionRepositoryImpl) Create(ctx context.Context, mention *entity.EntityMention) error {
	m := r.mapper.MentionToModel(mention)
	// Replays of the same (entry, entity) pair are no-ops.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "journal_entry_id"}, {Name: "known_entity_id"}},
			DoNothing: true,
		}).
		Create(m).Error
}

func (r *EntityMentionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EntityMention, error) {
	var models []*model.EntityMention
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.EntityMention, len(models))
	for i, m := range models {
		out[i] = r.mapper.MentionToEntity(m)
	}
	return out, nil
}

type LeadRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JournalMapper
}

func NewLeadRepository(db *gorm.DB) contract.LeadRepository {
	return &LeadRepositoryImpl{
		db:     db,
		mapper: mapper.NewJournalMapper(),
	}
}

func (r *LeadRepositoryImpl) Create(ctx context.Context, lead *entity.Lead) error {
	m := r.mapper.LeadToModel(lead)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*lead = *r.mapper.LeadToEntity(m)
	return nil
}

func (r *LeadRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error) {
	var m model.Lead
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.LeadToEntity(&m), nil
}

func (r *LeadRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error) {
	var models []*model.Lead
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Lead, len(models))
	for i, m := range models {
		out[i] = r.mapper.LeadToEntity(m)
	}
	return out, nil
}
