package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/repository/contract"
	"legal-intake-be/internal/repository/specification"
	"legal-intake-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type stubFactory struct {
	uow unitofwork.UnitOfWork
}

func (f stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type stubUnitOfWork struct {
	unitofwork.UnitOfWork
	cases    contract.CaseRepository
	strength contract.StrengthRepository
}

func (u stubUnitOfWork) CaseRepository() contract.CaseRepository         { return u.cases }
func (u stubUnitOfWork) StrengthRepository() contract.StrengthRepository { return u.strength }

type stubCaseRepo struct {
	contract.CaseRepository
	kase *entity.Case
}

func (r stubCaseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Case, error) {
	return r.kase, nil
}

type stubStrengthRepo struct {
	contract.StrengthRepository
	report *entity.StrengthReport
}

func (r stubStrengthRepo) FindLatestByCaseId(ctx context.Context, caseId uuid.UUID) (*entity.StrengthReport, error) {
	return r.report, nil
}

func newStrengthService(kase *entity.Case, report *entity.StrengthReport) *documentService {
	uow := stubUnitOfWork{
		cases:    stubCaseRepo{kase: kase},
		strength: stubStrengthRepo{report: report},
	}
	return &documentService{uowFactory: stubFactory{uow: uow}}
}

func TestLatestStrengthReturnsStoredReport(t *testing.T) {
	kase := completeCase(entity.DocumentTypeTutela)
	kase.Id = uuid.New()
	kase.Suggestions = []string{"Precisar la fecha de los hechos."}

	report := &entity.StrengthReport{
		Id:         uuid.New(),
		CaseId:     kase.Id,
		Score:      0.74,
		Summary:    "Caso sólido con soporte probatorio parcial.",
		Weaknesses: []string{"Falta la respuesta previa de la entidad."},
		CreatedAt:  time.Now(),
	}

	svc := newStrengthService(kase, report)

	res, err := svc.LatestStrength(context.Background(), kase.UserId, kase.Id)
	if err != nil {
		t.Fatalf("LatestStrength: %v", err)
	}
	if res.Score != 0.74 {
		t.Errorf("puntaje = %v, want 0.74", res.Score)
	}
	if res.Summary != report.Summary {
		t.Errorf("resumen = %q, want %q", res.Summary, report.Summary)
	}
	if len(res.Weaknesses) != 1 || res.Weaknesses[0] != report.Weaknesses[0] {
		t.Errorf("debilidades = %v, want %v", res.Weaknesses, report.Weaknesses)
	}
	if len(res.Suggestions) != 1 || res.Suggestions[0] != kase.Suggestions[0] {
		t.Errorf("sugerencias = %v, want %v", res.Suggestions, kase.Suggestions)
	}
}

func TestLatestStrengthWithoutReportIsNotFound(t *testing.T) {
	kase := completeCase(entity.DocumentTypeTutela)
	kase.Id = uuid.New()

	svc := newStrengthService(kase, nil)

	_, err := svc.LatestStrength(context.Background(), kase.UserId, kase.Id)
	if err == nil {
		t.Fatal("expected an error for a case without reports")
	}
	var ferr *fiber.Error
	if !errors.As(err, &ferr) || ferr.Code != fiber.StatusNotFound {
		t.Fatalf("err = %v, want 404", err)
	}
}
