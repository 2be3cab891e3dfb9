package entity

import (
	"time"

	"github.com/google/uuid"
)

// JurisprudenceDocument is one ruling in the citation corpus. Generated
// documents cite the closest rulings by embedding similarity over Summary.
type JurisprudenceDocument struct {
	Id        uuid.UUID
	Reference string // e.g. "T-760/08"
	Court     string
	Summary   string
	CreatedAt time.Time
}
