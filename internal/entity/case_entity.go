package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document types supported by the intake flow.
const (
	DocumentTypeTutela   = "tutela"
	DocumentTypePeticion = "derecho_peticion"
)

// Case is the server-side case record built up during an intake session.
// Applicant fields are copied from the user profile at creation and are
// read-only afterwards; the rest is filled by extraction and user edits.
type Case struct {
	Id     uuid.UUID
	UserId uuid.UUID

	DocumentType string

	// Applicant (solicitante), copied from profile
	ApplicantName           string
	ApplicantIdentification string
	ApplicantAddress        string
	ApplicantPhone          string
	ApplicantEmail          string

	// Representation (representado)
	ActsInRepresentation      bool
	RepresentedName           string
	RepresentedIdentification string
	RepresentedRelation       string
	RepresentedType           string

	// Substance
	AccusedEntity  string // entidad_accionada / destinataria
	EntityAddress  string
	Facts          string
	FactsCity      string
	ViolatedRights string
	Claims         string // pretensiones / peticiones
	LegalGrounds   string
	Evidence       string

	// Generation result
	HasGeneratedDocument bool
	GeneratedDocument    string
	GeneratedAt          *time.Time
	QualityScore         *float64
	Citations            []string
	Suggestions          []string

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
