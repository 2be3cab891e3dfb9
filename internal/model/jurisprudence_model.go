package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type JurisprudenceDocument struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Reference      string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Court          string          `gorm:"type:varchar(255)"`
	Summary        string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text uses 768 dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (JurisprudenceDocument) TableName() string {
	return "jurisprudence_documents"
}
