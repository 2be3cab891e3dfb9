package mapper

import (
	"encoding/json"
	"time"

	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CaseMapper struct{}

func NewCaseMapper() *CaseMapper {
	return &CaseMapper{}
}

func (m *CaseMapper) ToEntity(c *model.Case) *entity.Case {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Case{
		Id:     c.Id,
		UserId: c.UserId,

		DocumentType: c.DocumentType,

		ApplicantName:           c.ApplicantName,
		ApplicantIdentification: c.ApplicantIdentification,
		ApplicantAddress:        c.ApplicantAddress,
		ApplicantPhone:          c.ApplicantPhone,
		ApplicantEmail:          c.ApplicantEmail,

		ActsInRepresentation:      c.ActsInRepresentation,
		RepresentedName:           c.RepresentedName,
		RepresentedIdentification: c.RepresentedIdentification,
		RepresentedRelation:       c.RepresentedRelation,
		RepresentedType:           c.RepresentedType,

		AccusedEntity:  c.AccusedEntity,
		EntityAddress:  c.EntityAddress,
		Facts:          c.Facts,
		FactsCity:      c.FactsCity,
		ViolatedRights: c.ViolatedRights,
		Claims:         c.Claims,
		LegalGrounds:   c.LegalGrounds,
		Evidence:       c.Evidence,

		HasGeneratedDocument: c.HasGeneratedDocument,
		GeneratedDocument:    c.GeneratedDocument,
		GeneratedAt:          c.GeneratedAt,
		QualityScore:         c.QualityScore,
		Citations:            jsonToStrings(c.Citations),
		Suggestions:          jsonToStrings(c.Suggestions),

		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: c.DeletedAt.Valid,
	}
}

func (m *CaseMapper) ToModel(c *entity.Case) *model.Case {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Case{
		Id:     c.Id,
		UserId: c.UserId,

		DocumentType: c.DocumentType,

		ApplicantName:           c.ApplicantName,
		ApplicantIdentification: c.ApplicantIdentification,
		ApplicantAddress:        c.ApplicantAddress,
		ApplicantPhone:          c.ApplicantPhone,
		ApplicantEmail:          c.ApplicantEmail,

		ActsInRepresentation:      c.ActsInRepresentation,
		RepresentedName:           c.RepresentedName,
		RepresentedIdentification: c.RepresentedIdentification,
		RepresentedRelation:       c.RepresentedRelation,
		RepresentedType:           c.RepresentedType,

		AccusedEntity:  c.AccusedEntity,
		EntityAddress:  c.EntityAddress,
		Facts:          c.Facts,
		FactsCity:      c.FactsCity,
		ViolatedRights: c.ViolatedRights,
		Claims:         c.Claims,
		LegalGrounds:   c.LegalGrounds,
		Evidence:       c.Evidence,

		HasGeneratedDocument: c.HasGeneratedDocument,
		GeneratedDocument:    c.GeneratedDocument,
		GeneratedAt:          c.GeneratedAt,
		QualityScore:         c.QualityScore,
		Citations:            stringsToJson(c.Citations),
		Suggestions:          stringsToJson(c.Suggestions),

		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *CaseMapper) ToEntities(cases []*model.Case) []*entity.Case {
	entities := make([]*entity.Case, len(cases))
	for i, c := range cases {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func jsonToStrings(data datatypes.JSON) []string {
	if len(data) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func stringsToJson(values []string) datatypes.JSON {
	if values == nil {
		return nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
