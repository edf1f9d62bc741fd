package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/model"
)

type DreamMapper struct{}

func NewDreamMapper() *DreamMapper {
	return &DreamMapper{}
}

func (m *DreamMapper) ToEntity(r *model.DreamRun) *entity.DreamRun {
	if r == nil {
		return nil
	}

	var result dto.DreamRunResult
	if len(r.Result) > 0 {
		_ = json.Unmarshal(r.Result, &result)
	}
	var errs []string
	if len(r.Errors) > 0 {
		_ = json.Unmarshal(r.Errors, &errs)
	}

	return &entity.DreamRun{
		Id:        r.Id,
		UserId:    r.UserId,
		Status:    r.Status,
		Result:    result,
		Errors:    errs,
		RanAt:     r.RanAt,
		CreatedAt: r.CreatedAt,
	}
}

func (m *DreamMapper) ToModel(r *entity.DreamRun) *model.DreamRun {
	if r == nil {
		return nil
	}

	result, _ := json.Marshal(r.Result)
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	errsJSON, _ := json.Marshal(errs)

	return &model.DreamRun{
		Id:        r.Id,
		UserId:    r.UserId,
		Status:    r.Status,
		Result:    datatypes.JSON(result),
		Errors:    datatypes.JSON(errsJSON),
		RanAt:     r.RanAt,
		CreatedAt: r.CreatedAt,
	}
}

func (m *DreamMapper) ToEntities(rs []*model.DreamRun) []*entity.DreamRun {
	out := make([]*entity.DreamRun, len(rs))
	for i, r := range rs {
		out[i] = m.ToEntity(r)
	}
	return out
}
