package service

import (
	"testing"

	"legal-intake-be/internal/entity"
	"legal-intake-be/pkg/session"
)

func completeCase(documentType string) *entity.Case {
	return &entity.Case{
		DocumentType:   documentType,
		AccusedEntity:  "EPS Salud Total",
		EntityAddress:  "Calle 10 # 5-23",
		Facts:          "Negaron la autorización de la cirugía ordenada por el médico tratante.",
		FactsCity:      "Bogotá",
		ViolatedRights: "Derecho a la salud",
		Claims:         "Ordenar la autorización inmediata de la cirugía.",
		Evidence:       "Orden médica del 12 de marzo.",
	}
}

func TestComputeValidation(t *testing.T) {
	tests := []struct {
		name         string
		modify       func(c *entity.Case)
		wantBlocking []string
		wantWarnings int
	}{
		{
			name:         "complete tutela passes",
			modify:       func(c *entity.Case) {},
			wantBlocking: []string{},
		},
		{
			name: "missing accused entity blocks",
			modify: func(c *entity.Case) {
				c.AccusedEntity = "   "
			},
			wantBlocking: []string{session.FieldAccusedEntity},
		},
		{
			name: "missing facts and claims block together",
			modify: func(c *entity.Case) {
				c.Facts = ""
				c.Claims = ""
			},
			wantBlocking: []string{session.FieldFacts, session.FieldClaims},
		},
		{
			name: "tutela requires violated rights",
			modify: func(c *entity.Case) {
				c.ViolatedRights = ""
			},
			wantBlocking: []string{session.FieldViolatedRights},
		},
		{
			name: "representation requires represented party data",
			modify: func(c *entity.Case) {
				c.ActsInRepresentation = true
			},
			wantBlocking: []string{
				session.FieldRepresentedName,
				session.FieldRepresentedIdentification,
			},
		},
		{
			name: "missing address and evidence only warn",
			modify: func(c *entity.Case) {
				c.EntityAddress = ""
				c.Evidence = ""
			},
			wantBlocking: []string{},
			wantWarnings: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kase := completeCase(entity.DocumentTypeTutela)
			tt.modify(kase)

			res := computeValidation(kase)

			if len(res.BlockingMissingFields) != len(tt.wantBlocking) {
				t.Fatalf("blocking = %v, want %v", res.BlockingMissingFields, tt.wantBlocking)
			}
			for i, f := range tt.wantBlocking {
				if res.BlockingMissingFields[i] != f {
					t.Errorf("blocking[%d] = %q, want %q", i, res.BlockingMissingFields[i], f)
				}
			}
			if res.CanGenerate != (len(tt.wantBlocking) == 0) {
				t.Errorf("puede_generar = %v with blocking %v", res.CanGenerate, res.BlockingMissingFields)
			}
			if len(res.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d entries", res.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestComputeValidationPeticionSkipsRights(t *testing.T) {
	kase := completeCase(entity.DocumentTypePeticion)
	kase.ViolatedRights = ""

	res := computeValidation(kase)

	if !res.CanGenerate {
		t.Fatalf("derecho de petición must not require violated rights, got blocking %v", res.BlockingMissingFields)
	}
}

func TestApplyFieldsProtectsApplicantAndDocumentType(t *testing.T) {
	kase := completeCase(entity.DocumentTypeTutela)
	kase.ApplicantName = "María Rodríguez"

	applyFields(kase, map[string]string{
		"nombre_solicitante":       "otro nombre",
		session.FieldDocumentType:  "demanda",
		session.FieldAccusedEntity: "Alcaldía de Medellín",
	})

	if kase.ApplicantName != "María Rodríguez" {
		t.Errorf("applicant name must not be editable, got %q", kase.ApplicantName)
	}
	if kase.DocumentType != entity.DocumentTypeTutela {
		t.Errorf("unknown document type must be ignored, got %q", kase.DocumentType)
	}
	if kase.AccusedEntity != "Alcaldía de Medellín" {
		t.Errorf("accused entity not applied, got %q", kase.AccusedEntity)
	}
}
