package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/model"
	"ai-companion-be/pkg/provider"
)

type ProviderMapper struct{}

func NewProviderMapper() *ProviderMapper {
	return &ProviderMapper{}
}

func (m *ProviderMapper) ToEntity(p *model.ProviderRegistration) *entity.ProviderRegistration {
	if p == nil {
		return nil
	}

	config := make(map[string]string)
	if len(p.ConnectionConfig) > 0 {
		_ = json.Unmarshal(p.ConnectionConfig, &config)
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.ProviderRegistration{
		Id:                  p.Id,
		UserId:              p.UserId,
		Category:            p.Category,
		DisplayName:         p.DisplayName,
		ConnectionConfig:    config,
		Status:              p.Status,
		ExtractionCursor:    provider.ParseCursor(p.ExtractionCursor),
		LastExtractionAt:    p.LastExtractionAt,
		LastError:           p.LastError,
		ErrorCount:          p.ErrorCount,
		SupportsIncremental: p.SupportsIncremental,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *ProviderMapper) ToModel(p *entity.ProviderRegistration) *model.ProviderRegistration {
	if p == nil {
		return nil
	}

	config, _ := json.Marshal(orEmptyStringMap(p.ConnectionConfig))
	cursor, _ := json.Marshal(p.ExtractionCursor)

	out := &model.ProviderRegistration{
		Id:                  p.Id,
		UserId:              p.UserId,
		Category:            p.Category,
		DisplayName:         p.DisplayName,
		ConnectionConfig:    datatypes.JSON(config),
		Status:              p.Status,
		ExtractionCursor:    datatypes.JSON(cursor),
		LastExtractionAt:    p.LastExtractionAt,
		LastError:           p.LastError,
		ErrorCount:          p.ErrorCount,
		SupportsIncremental: p.SupportsIncremental,
		CreatedAt:           p.CreatedAt,
	}
	if p.UpdatedAt != nil {
		out.UpdatedAt = *p.UpdatedAt
	}
	return out
}

func (m *ProviderMapper) ToEntities(ps []*model.ProviderRegistration) []*entity.ProviderRegistration {
	out := make([]*entity.ProviderRegistration, len(ps))
	for i, p := range ps {
		out[i] = m.ToEntity(p)
	}
	return out
}

func (m *ProviderMapper) AuditToModel(a *entity.SyncAuditLog) *model.SyncAuditLog {
	if a == nil {
		return nil
	}
	return &model.SyncAuditLog{
		Id:         a.Id,
		UserId:     a.UserId,
		ProviderId: a.ProviderId,
		SourceId:   a.SourceId,
		SourceType: a.SourceType,
		SourceDate: a.SourceDate,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *ProviderMapper) AuditToEntity(a *model.SyncAuditLog) *entity.SyncAuditLog {
	if a == nil {
		return nil
	}
	return &entity.SyncAuditLog{
		Id:         a.Id,
		UserId:     a.UserId,
		ProviderId: a.ProviderId,
		SourceId:   a.SourceId,
		SourceType: a.SourceType,
		SourceDate: a.SourceDate,
		CreatedAt:  a.CreatedAt,
	}
}
