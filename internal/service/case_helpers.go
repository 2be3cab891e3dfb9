package service

import (
	"context"
	"strings"

	"legal-intake-be/internal/dto"
	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/repository/specification"
	"legal-intake-be/internal/repository/unitofwork"
	"legal-intake-be/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// applyFields writes a partial wire-named field map onto the case.
// Applicant identity fields are not writable through this path.
func applyFields(kase *entity.Case, fields map[string]string) {
	for field, value := range fields {
		switch field {
		case session.FieldDocumentType:
			if value == entity.DocumentTypeTutela || value == entity.DocumentTypePeticion {
				kase.DocumentType = value
			}
		case session.FieldAccusedEntity:
			kase.AccusedEntity = value
		case session.FieldEntityAddress:
			kase.EntityAddress = value
		case session.FieldFacts:
			kase.Facts = value
		case session.FieldFactsCity:
			kase.FactsCity = value
		case session.FieldViolatedRights:
			kase.ViolatedRights = value
		case session.FieldClaims:
			kase.Claims = value
		case session.FieldLegalGrounds:
			kase.LegalGrounds = value
		case session.FieldEvidence:
			kase.Evidence = value
		case session.FieldActsInRepresentation:
			kase.ActsInRepresentation = value == "true"
		case session.FieldRepresentedName:
			kase.RepresentedName = value
		case session.FieldRepresentedIdentification:
			kase.RepresentedIdentification = value
		case session.FieldRepresentedRelation:
			kase.RepresentedRelation = value
		case session.FieldRepresentedType:
			kase.RepresentedType = value
		}
	}
}

// caseFieldMap exports the editable case fields keyed by wire name.
func caseFieldMap(kase *entity.Case) map[string]string {
	rep := "false"
	if kase.ActsInRepresentation {
		rep = "true"
	}
	return map[string]string{
		session.FieldDocumentType:              kase.DocumentType,
		session.FieldAccusedEntity:             kase.AccusedEntity,
		session.FieldEntityAddress:             kase.EntityAddress,
		session.FieldFacts:                     kase.Facts,
		session.FieldFactsCity:                 kase.FactsCity,
		session.FieldViolatedRights:            kase.ViolatedRights,
		session.FieldClaims:                    kase.Claims,
		session.FieldLegalGrounds:              kase.LegalGrounds,
		session.FieldEvidence:                  kase.Evidence,
		session.FieldActsInRepresentation:      rep,
		session.FieldRepresentedName:           kase.RepresentedName,
		session.FieldRepresentedIdentification: kase.RepresentedIdentification,
		session.FieldRepresentedRelation:       kase.RepresentedRelation,
		session.FieldRepresentedType:           kase.RepresentedType,
	}
}

func caseToResponse(kase *entity.Case) *dto.CaseResponse {
	return &dto.CaseResponse{
		Id:           kase.Id,
		DocumentType: kase.DocumentType,

		ApplicantName:           kase.ApplicantName,
		ApplicantIdentification: kase.ApplicantIdentification,
		ApplicantAddress:        kase.ApplicantAddress,
		ApplicantPhone:          kase.ApplicantPhone,
		ApplicantEmail:          kase.ApplicantEmail,

		ActsInRepresentation:      kase.ActsInRepresentation,
		RepresentedName:           kase.RepresentedName,
		RepresentedIdentification: kase.RepresentedIdentification,
		RepresentedRelation:       kase.RepresentedRelation,
		RepresentedType:           kase.RepresentedType,

		AccusedEntity:  kase.AccusedEntity,
		EntityAddress:  kase.EntityAddress,
		Facts:          kase.Facts,
		FactsCity:      kase.FactsCity,
		ViolatedRights: kase.ViolatedRights,
		Claims:         kase.Claims,
		LegalGrounds:   kase.LegalGrounds,
		Evidence:       kase.Evidence,

		HasGeneratedDocument: kase.HasGeneratedDocument,
		GeneratedDocument:    kase.GeneratedDocument,
		GeneratedAt:          kase.GeneratedAt,
		QualityScore:         kase.QualityScore,
		Citations:            kase.Citations,
		Suggestions:          kase.Suggestions,

		CreatedAt: kase.CreatedAt,
		UpdatedAt: kase.UpdatedAt,
	}
}

// computeValidation applies the blocking-field rules. Accused entity, facts
// and claims always block; a tutela additionally requires the violated
// rights; acting in representation requires the represented party's name
// and identification. Address, city and evidence only warn.
func computeValidation(kase *entity.Case) *dto.ValidationResponse {
	blocking := []string{}
	warnings := []string{}

	if isBlank(kase.AccusedEntity) {
		blocking = append(blocking, session.FieldAccusedEntity)
	}
	if isBlank(kase.Facts) {
		blocking = append(blocking, session.FieldFacts)
	}
	if isBlank(kase.Claims) {
		blocking = append(blocking, session.FieldClaims)
	}
	if kase.DocumentType == entity.DocumentTypeTutela && isBlank(kase.ViolatedRights) {
		blocking = append(blocking, session.FieldViolatedRights)
	}
	if kase.ActsInRepresentation {
		if isBlank(kase.RepresentedName) {
			blocking = append(blocking, session.FieldRepresentedName)
		}
		if isBlank(kase.RepresentedIdentification) {
			blocking = append(blocking, session.FieldRepresentedIdentification)
		}
	}

	if isBlank(kase.EntityAddress) {
		warnings = append(warnings, "Falta la dirección de la entidad; la notificación puede demorarse.")
	}
	if isBlank(kase.FactsCity) {
		warnings = append(warnings, "Falta la ciudad de los hechos.")
	}
	if isBlank(kase.Evidence) {
		warnings = append(warnings, "No se registraron pruebas; el documento será más débil sin ellas.")
	}

	return &dto.ValidationResponse{
		CanGenerate:           len(blocking) == 0,
		BlockingMissingFields: blocking,
		Warnings:              warnings,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// findOwnedCase loads a case and enforces ownership.
func findOwnedCase(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, id uuid.UUID) (*entity.Case, error) {
	kase, err := uow.CaseRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if kase == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "case not found")
	}
	return kase, nil
}

// snapshotFromResponse converts a case response into the session core's
// snapshot form.
func snapshotFromResponse(resp *dto.CaseResponse) *session.CaseSnapshot {
	rep := "false"
	if resp.ActsInRepresentation {
		rep = "true"
	}
	return &session.CaseSnapshot{
		CaseId: resp.Id.String(),
		Fields: map[string]string{
			session.FieldDocumentType:              resp.DocumentType,
			session.FieldAccusedEntity:             resp.AccusedEntity,
			session.FieldEntityAddress:             resp.EntityAddress,
			session.FieldFacts:                     resp.Facts,
			session.FieldFactsCity:                 resp.FactsCity,
			session.FieldViolatedRights:            resp.ViolatedRights,
			session.FieldClaims:                    resp.Claims,
			session.FieldLegalGrounds:              resp.LegalGrounds,
			session.FieldEvidence:                  resp.Evidence,
			session.FieldActsInRepresentation:      rep,
			session.FieldRepresentedName:           resp.RepresentedName,
			session.FieldRepresentedIdentification: resp.RepresentedIdentification,
			session.FieldRepresentedRelation:       resp.RepresentedRelation,
			session.FieldRepresentedType:           resp.RepresentedType,
		},
		HasGeneratedDocument: resp.HasGeneratedDocument,
		GeneratedDocument:    resp.GeneratedDocument,
		QualityScore:         resp.QualityScore,
		Citations:            resp.Citations,
		Suggestions:          resp.Suggestions,
	}
}
