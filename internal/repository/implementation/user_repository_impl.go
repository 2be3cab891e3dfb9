package implementation

import (
	"context"
	"errors"

	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/model"
	"legal-intake-be/internal/repository/contract"
	"legal-intake-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	u := &entity.User{
		Id:             m.Id,
		Name:           m.Name,
		Identification: m.Identification,
		Address:        m.Address,
		Phone:          m.Phone,
		Email:          m.Email,
		CreatedAt:      m.CreatedAt,
	}
	if !m.UpdatedAt.IsZero() {
		t := m.UpdatedAt
		u.UpdatedAt = &t
	}
	return u, nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
