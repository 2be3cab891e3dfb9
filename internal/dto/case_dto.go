package dto

import (
	"time"

	"github.com/google/uuid"
)

// CaseResponse mirrors the case record with the wire names the web client
// and the drafting backend share.
type CaseResponse struct {
	Id           uuid.UUID `json:"id"`
	DocumentType string    `json:"tipo_documento"`

	ApplicantName           string `json:"nombre_solicitante"`
	ApplicantIdentification string `json:"identificacion_solicitante"`
	ApplicantAddress        string `json:"direccion_solicitante"`
	ApplicantPhone          string `json:"telefono_solicitante"`
	ApplicantEmail          string `json:"correo_solicitante"`

	ActsInRepresentation      bool   `json:"actua_en_representacion"`
	RepresentedName           string `json:"nombre_representado,omitempty"`
	RepresentedIdentification string `json:"identificacion_representado,omitempty"`
	RepresentedRelation       string `json:"parentesco,omitempty"`
	RepresentedType           string `json:"tipo_representacion,omitempty"`

	AccusedEntity  string `json:"entidad_accionada"`
	EntityAddress  string `json:"direccion_entidad"`
	Facts          string `json:"hechos"`
	FactsCity      string `json:"ciudad_de_los_hechos"`
	ViolatedRights string `json:"derechos_vulnerados"`
	Claims         string `json:"pretensiones"`
	LegalGrounds   string `json:"fundamentos_juridicos"`
	Evidence       string `json:"pruebas"`

	HasGeneratedDocument bool       `json:"tiene_documento_generado"`
	GeneratedDocument    string     `json:"documento_generado,omitempty"`
	GeneratedAt          *time.Time `json:"fecha_generacion,omitempty"`
	QualityScore         *float64   `json:"puntaje_calidad,omitempty"`
	Citations            []string   `json:"citas_jurisprudencia,omitempty"`
	Suggestions          []string   `json:"sugerencias,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ListCasesResponse struct {
	Cases []CaseResponse `json:"casos"`
	Total int64          `json:"total"`
}

// UpdateCaseFieldsRequest is a partial field update keyed by wire name.
type UpdateCaseFieldsRequest struct {
	Fields map[string]string `json:"campos" validate:"required,min=1"`
}

type ConversationMessageResponse struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ConversationResponse struct {
	Messages []ConversationMessageResponse `json:"mensajes"`
}
