package mapper

import (
	"strings"
	"time"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/model"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) EntityToEntity(k *model.KnownEntity) *entity.KnownEntity {
	if k == nil {
		return nil
	}

	var updatedAt *time.Time
	if !k.UpdatedAt.IsZero() {
		t := k.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnownEntity{
		Id:        k.Id,
		UserId:    k.UserId,
		Name:      k.Name,
		Type:      k.Type,
		Notes:     k.Notes,
		CreatedAt: k.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *KnowledgeMapper) EntityToModel(k *entity.KnownEntity) *model.KnownEntity {
	if k == nil {
		return nil
	}
	out := &model.KnownEntity{
		Id:        k.Id,
		UserId:    k.UserId,
		Name:      k.Name,
		Type:      k.Type,
		Notes:     k.Notes,
		CreatedAt: k.CreatedAt,
	}
	if k.UpdatedAt != nil {
		out.UpdatedAt = *k.UpdatedAt
	}
	return out
}

func (m *KnowledgeMapper) EntitiesToEntities(ks []*model.KnownEntity) []*entity.KnownEntity {
	out := make([]*entity.KnownEntity, len(ks))
	for i, k := range ks {
		out[i] = m.EntityToEntity(k)
	}
	return out
}

func (m *KnowledgeMapper) TermToEntity(t *model.GlossaryTerm) *entity.GlossaryTerm {
	if t == nil {
		return nil
	}
	return &entity.GlossaryTerm{
		Id:         t.Id,
		UserId:     t.UserId,
		Term:       t.Term,
		Definition: t.Definition,
		TermType:   t.TermType,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *KnowledgeMapper) TermToModel(t *entity.GlossaryTerm) *model.GlossaryTerm {
	if t == nil {
		return nil
	}
	return &model.GlossaryTerm{
		Id:         t.Id,
		UserId:     t.UserId,
		Term:       t.Term,
		TermLower:  strings.ToLower(t.Term),
		Definition: t.Definition,
		TermType:   t.TermType,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *KnowledgeMapper) TermsToEntities(ts []*model.GlossaryTerm) []*entity.GlossaryTerm {
	out := make([]*entity.GlossaryTerm, len(ts))
	for i, t := range ts {
		out[i] = m.TermToEntity(t)
	}
	return out
}
