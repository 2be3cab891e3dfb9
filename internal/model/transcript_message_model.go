package model

import (
	"time"

	"github.com/google/uuid"
)

type TranscriptMessage struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaseId     uuid.UUID `gorm:"type:uuid;not null;index"`
	ExternalId string    `gorm:"type:varchar(255);not null;index"`
	Role       string    `gorm:"type:varchar(50);not null"`
	Text       string    `gorm:"type:text;not null"`
	Timestamp  time.Time `gorm:"not null"`
	IsFinal    bool      `gorm:"default:false"`
	Position   int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (TranscriptMessage) TableName() string {
	return "transcript_messages"
}
