package mapper

import (
	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/model"
)

type TranscriptMapper struct{}

func NewTranscriptMapper() *TranscriptMapper {
	return &TranscriptMapper{}
}

func (m *TranscriptMapper) ToEntity(t *model.TranscriptMessage) *entity.TranscriptMessage {
	if t == nil {
		return nil
	}
	return &entity.TranscriptMessage{
		Id:         t.Id,
		CaseId:     t.CaseId,
		ExternalId: t.ExternalId,
		Role:       t.Role,
		Text:       t.Text,
		Timestamp:  t.Timestamp,
		IsFinal:    t.IsFinal,
		Position:   t.Position,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *TranscriptMapper) ToModel(t *entity.TranscriptMessage) *model.TranscriptMessage {
	if t == nil {
		return nil
	}
	return &model.TranscriptMessage{
		Id:         t.Id,
		CaseId:     t.CaseId,
		ExternalId: t.ExternalId,
		Role:       t.Role,
		Text:       t.Text,
		Timestamp:  t.Timestamp,
		IsFinal:    t.IsFinal,
		Position:   t.Position,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *TranscriptMapper) ToEntities(msgs []*model.TranscriptMessage) []*entity.TranscriptMessage {
	entities := make([]*entity.TranscriptMessage, len(msgs))
	for i, t := range msgs {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
