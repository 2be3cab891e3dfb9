package session

import "time"

// Wire field names shared with the web client and the drafting backend.
const (
	FieldDocumentType              = "tipo_documento"
	FieldAccusedEntity             = "entidad_accionada"
	FieldEntityAddress             = "direccion_entidad"
	FieldFacts                     = "hechos"
	FieldFactsCity                 = "ciudad_de_los_hechos"
	FieldViolatedRights            = "derechos_vulnerados"
	FieldClaims                    = "pretensiones"
	FieldLegalGrounds              = "fundamentos_juridicos"
	FieldEvidence                  = "pruebas"
	FieldActsInRepresentation      = "actua_en_representacion"
	FieldRepresentedName           = "nombre_representado"
	FieldRepresentedIdentification = "identificacion_representado"
	FieldRepresentedRelation       = "parentesco"
	FieldRepresentedType           = "tipo_representacion"
)

// CaseDraft is the mutable field set being built during review. It mirrors
// the server case record; applicant identity lives server-side only.
type CaseDraft struct {
	DocumentType   string
	AccusedEntity  string
	EntityAddress  string
	Facts          string
	FactsCity      string
	ViolatedRights string
	Claims         string
	LegalGrounds   string
	Evidence       string

	ActsInRepresentation      bool
	RepresentedName           string
	RepresentedIdentification string
	RepresentedRelation       string
	RepresentedType           string
}

// SetField writes one field by wire name. Returns false for unknown names.
func (d *CaseDraft) SetField(field, value string) bool {
	switch field {
	case FieldDocumentType:
		d.DocumentType = value
	case FieldAccusedEntity:
		d.AccusedEntity = value
	case FieldEntityAddress:
		d.EntityAddress = value
	case FieldFacts:
		d.Facts = value
	case FieldFactsCity:
		d.FactsCity = value
	case FieldViolatedRights:
		d.ViolatedRights = value
	case FieldClaims:
		d.Claims = value
	case FieldLegalGrounds:
		d.LegalGrounds = value
	case FieldEvidence:
		d.Evidence = value
	case FieldActsInRepresentation:
		d.ActsInRepresentation = value == "true"
	case FieldRepresentedName:
		d.RepresentedName = value
	case FieldRepresentedIdentification:
		d.RepresentedIdentification = value
	case FieldRepresentedRelation:
		d.RepresentedRelation = value
	case FieldRepresentedType:
		d.RepresentedType = value
	default:
		return false
	}
	return true
}

// GetField reads one field by wire name.
func (d *CaseDraft) GetField(field string) (string, bool) {
	fields := d.Fields()
	v, ok := fields[field]
	return v, ok
}

// Fields returns the full draft keyed by wire name.
func (d *CaseDraft) Fields() map[string]string {
	rep := "false"
	if d.ActsInRepresentation {
		rep = "true"
	}
	return map[string]string{
		FieldDocumentType:              d.DocumentType,
		FieldAccusedEntity:             d.AccusedEntity,
		FieldEntityAddress:             d.EntityAddress,
		FieldFacts:                     d.Facts,
		FieldFactsCity:                 d.FactsCity,
		FieldViolatedRights:            d.ViolatedRights,
		FieldClaims:                    d.Claims,
		FieldLegalGrounds:              d.LegalGrounds,
		FieldEvidence:                  d.Evidence,
		FieldActsInRepresentation:      rep,
		FieldRepresentedName:           d.RepresentedName,
		FieldRepresentedIdentification: d.RepresentedIdentification,
		FieldRepresentedRelation:       d.RepresentedRelation,
		FieldRepresentedType:           d.RepresentedType,
	}
}

// CaseSnapshot is the server-side view of a case, including generation
// results once produced.
type CaseSnapshot struct {
	CaseId string
	Fields map[string]string

	HasGeneratedDocument bool
	GeneratedDocument    string
	QualityScore         *float64
	Citations            []string
	Suggestions          []string
}

// ValidationResult is the server verdict on whether generation may proceed.
// It is stale the moment any field persistence succeeds.
type ValidationResult struct {
	GenerationAllowed     bool
	BlockingMissingFields []string
	Warnings              []string
}

// TranscriptMessage is one live transcript entry. An id may be updated in
// place while IsFinal is false; it becomes immutable once final.
type TranscriptMessage struct {
	Id        string
	Role      string
	Text      string
	Timestamp time.Time
	IsFinal   bool
}

// ConversationMessage is one turn of the persisted conversation.
type ConversationMessage struct {
	Role string
	Text string
}

// StrengthReport is the scored case-strength assessment.
type StrengthReport struct {
	Score       float64
	Summary     string
	Weaknesses  []string
	Suggestions []string
}

// SaveStatus reflects where the autosave cycle currently stands.
type SaveStatus string

const (
	SaveIdle    SaveStatus = "idle"
	SavePending SaveStatus = "pending"
	SaveSaving  SaveStatus = "saving"
	SaveSaved   SaveStatus = "saved"
	SaveFailed  SaveStatus = "failed"
)
