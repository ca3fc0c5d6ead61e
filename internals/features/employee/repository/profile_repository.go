// internals/features/employee/repository/profile_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	profileModel "absenku_backend/internals/features/employee/model"
)

var (
	ErrEmailTaken      = errors.New("profiles: email already registered")
	ErrProfileNotFound = errors.New("profiles: not found")
)

type ProfileStore interface {
	Create(ctx context.Context, p *profileModel.ProfileModel) error
	List(ctx context.Context) ([]profileModel.ProfileModel, error)
	FetchByID(ctx context.Context, id uuid.UUID) (*profileModel.ProfileModel, error)
	UpdateEmployeeID(ctx context.Context, id uuid.UUID, employeeID string) (*profileModel.ProfileModel, error)
}

type GormProfileStore struct {
	DB *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{DB: db}
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "violates unique constraint") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}

func (s *GormProfileStore) Create(ctx context.Context, p *profileModel.ProfileModel) error {
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *GormProfileStore) List(ctx context.Context) ([]profileModel.ProfileModel, error) {
	var out []profileModel.ProfileModel
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormProfileStore) FetchByID(ctx context.Context, id uuid.UUID) (*profileModel.ProfileModel, error) {
	var p profileModel.ProfileModel
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormProfileStore) UpdateEmployeeID(ctx context.Context, id uuid.UUID, employeeID string) (*profileModel.ProfileModel, error) {
	res := s.DB.WithContext(ctx).
		Model(&profileModel.ProfileModel{}).
		Where("id = ?", id).
		Update("employee_id", strings.TrimSpace(employeeID))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrProfileNotFound
	}
	return s.FetchByID(ctx, id)
}
