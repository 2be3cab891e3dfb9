package mapper

import (
	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/model"
)

type StrengthMapper struct{}

func NewStrengthMapper() *StrengthMapper {
	return &StrengthMapper{}
}

func (m *StrengthMapper) ToEntity(r *model.StrengthReport) *entity.StrengthReport {
	if r == nil {
		return nil
	}
	return &entity.StrengthReport{
		Id:         r.Id,
		CaseId:     r.CaseId,
		Score:      r.Score,
		Summary:    r.Summary,
		Weaknesses: jsonToStrings(r.Weaknesses),
		CreatedAt:  r.CreatedAt,
	}
}

func (m *StrengthMapper) ToModel(r *entity.StrengthReport) *model.StrengthReport {
	if r == nil {
		return nil
	}
	return &model.StrengthReport{
		Id:         r.Id,
		CaseId:     r.CaseId,
		Score:      r.Score,
		Summary:    r.Summary,
		Weaknesses: stringsToJson(r.Weaknesses),
		CreatedAt:  r.CreatedAt,
	}
}
