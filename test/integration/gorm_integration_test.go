package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/repository/specification"
	"legal-intake-be/internal/repository/unitofwork"
	"legal-intake-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.CaseRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Jurisprudence Repository", func(t *testing.T) {
		// Count implies the table and vector column exist
		count, err := uow.JurisprudenceRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Jurisprudence count: %d", count)
	})

	t.Run("Check Transactional Case With Transcript", func(t *testing.T) {
		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		caseId := uuid.New()
		kase := &entity.Case{
			Id:            caseId,
			UserId:        uuid.New(),
			DocumentType:  entity.DocumentTypeTutela,
			ApplicantName: "Integration Test User",
			AccusedEntity: "EPS Integracion",
			Facts:         "Negaron la entrega del medicamento formulado.",
			Claims:        "Ordenar la entrega inmediata del medicamento.",
		}
		err = uow.CaseRepository().Create(ctx, kase)
		assert.NoError(t, err)

		msgs := []*entity.TranscriptMessage{
			{
				Id:         uuid.New(),
				CaseId:     caseId,
				ExternalId: "seg-1",
				Role:       "user",
				Text:       "Buenos dias, necesito una tutela.",
				Timestamp:  time.Now(),
				IsFinal:    true,
				Position:   0,
			},
		}
		err = uow.TranscriptRepository().CreateBatch(ctx, msgs)
		assert.NoError(t, err)

		found, err := uow.CaseRepository().FindOne(ctx, specification.ByID{ID: caseId})
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, "EPS Integracion", found.AccusedEntity)
		}
	})
}
