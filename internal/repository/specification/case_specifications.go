package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCaseID filters child records by their parent case
type ByCaseID struct {
	CaseID uuid.UUID
}

func (s ByCaseID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("case_id = ?", s.CaseID)
}

// FinalOnly keeps only finalized transcript messages
type FinalOnly struct{}

func (s FinalOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_final = ?", true)
}

// WithGeneratedDocument keeps only cases that produced a document
type WithGeneratedDocument struct{}

func (s WithGeneratedDocument) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("has_generated_document = ?", true)
}
