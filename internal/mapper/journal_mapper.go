package mapper

import (
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/model"
)

// JournalMapper covers the journal aggregate: entries, mentions and leads.
type JournalMapper struct{}

func NewJournalMapper() *JournalMapper {
	return &JournalMapper{}
}

func (m *JournalMapper) EntryToEntity(e *model.JournalEntry) *entity.JournalEntry {
	if e == nil {
		return nil
	}
	return &entity.JournalEntry{
		Id:        e.Id,
		UserId:    e.UserId,
		Date:      e.Date,
		Summary:   e.Summary,
		MoodTrend: e.MoodTrend,
		CreatedAt: e.CreatedAt,
	}
}

func (m *JournalMapper) EntryToModel(e *entity.JournalEntry) *model.JournalEntry {
	if e == nil {
		return nil
	}
	return &model.JournalEntry{
		Id:        e.Id,
		UserId:    e.UserId,
		Date:      e.Date,
		Summary:   e.Summary,
		MoodTrend: e.MoodTrend,
		CreatedAt: e.CreatedAt,
	}
}

func (m *JournalMapper) MentionToEntity(mm *model.EntityMention) *entity.EntityMention {
	if mm == nil {
		return nil
	}
	return &entity.EntityMention{
		Id:             mm.Id,
		UserId:         mm.UserId,
		JournalEntryId: mm.JournalEntryId,
		KnownEntityId:  mm.KnownEntityId,
		Context:        mm.Context,
		Sentiment:      mm.Sentiment,
		CreatedAt:      mm.CreatedAt,
	}
}

func (m *JournalMapper) MentionToModel(mm *entity.EntityMention) *model.EntityMention {
	if mm == nil {
		return nil
	}
	return &model.EntityMention{
		Id:             mm.Id,
		UserId:         mm.UserId,
		JournalEntryId: mm.JournalEntryId,
		KnownEntityId:  mm.KnownEntityId,
		Context:        mm.Context,
		Sentiment:      mm.Sentiment,
		CreatedAt:      mm.CreatedAt,
	}
}

func (m *JournalMapper) LeadToEntity(l *model.Lead) *entity.Lead {
	if l == nil {
		return nil
	}
	return &entity.Lead{
		Id:               l.Id,
		UserId:           l.UserId,
		JournalEntryId:   l.JournalEntryId,
		MentionText:      l.MentionText,
		Context:          l.Context,
		RelationshipType: l.RelationshipType,
		Confirmed:        l.Confirmed,
		CreatedAt:        l.CreatedAt,
	}
}

func (m *JournalMapper) LeadToModel(l *entity.Lead) *model.Lead {
	if l == nil {
		return nil
	}
	return &model.Lead{
		Id:               l.Id,
		UserId:           l.UserId,
		JournalEntryId:   l.JournalEntryId,
		MentionText:      l.MentionText,
		Context:          l.Context,
		RelationshipType: l.RelationshipType,
		Confirmed:        l.Confirmed,
		CreatedAt:        l.CreatedAt,
	}
}

func (m *JournalMapper) EntriesToEntities(entries []*model.JournalEntry) []*entity.JournalEntry {
	out := make([]*entity.JournalEntry, len(entries))
	for i, e := range entries {
		out[i] = m.EntryToEntity(e)
	}
	return out
}
