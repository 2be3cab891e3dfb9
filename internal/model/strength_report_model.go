package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type StrengthReport struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaseId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Score      float64        `gorm:"not null"`
	Summary    string         `gorm:"type:text"`
	Weaknesses datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (StrengthReport) TableName() string {
	return "strength_reports"
}
