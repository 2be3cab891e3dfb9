package implementation

import (
	"context"
	"errors"

	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/mapper"
	"legal-intake-be/internal/model"
	"legal-intake-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StrengthRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StrengthMapper
}

func NewStrengthRepository(db *gorm.DB) contract.StrengthRepository {
	return &StrengthRepositoryImpl{
		db:     db,
		mapper: mapper.NewStrengthMapper(),
	}
}

func (r *StrengthRepositoryImpl) Create(ctx context.Context, report *entity.StrengthReport) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *StrengthRepositoryImpl) FindLatestByCaseId(ctx context.Context, caseId uuid.UUID) (*entity.StrengthReport, error) {
	var m model.StrengthReport
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseId).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *StrengthRepositoryImpl) DeleteByCaseId(ctx context.Context, caseId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("case_id = ?", caseId).Delete(&model.StrengthReport{}).Error
}
