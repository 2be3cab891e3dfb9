package entity

import (
	"time"

	"github.com/google/uuid"
)

// StrengthReport is a scored assessment of a case's likelihood of success.
type StrengthReport struct {
	Id         uuid.UUID
	CaseId     uuid.UUID
	Score      float64
	Summary    string
	Weaknesses []string
	CreatedAt  time.Time
}
