package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/campus-hub/permission-service/models"
)

type SchoolStore struct{ DB *gorm.DB }

func NewSchoolStore(db *gorm.DB) *SchoolStore { return &SchoolStore{DB: db} }

// ListActive returns all active schools ordered by display name.
func (s *SchoolStore) ListActive(ctx context.Context) ([]models.School, error) {
	var schools []models.School
	err := s.DB.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&schools).Error
	return schools, err
}

// ActiveByIDs resolves a stored ID set against the current active schools,
// ordered by name. Stale or dangling IDs simply drop out of the result.
func (s *SchoolStore) ActiveByIDs(ctx context.Context, ids []string) ([]models.School, error) {
	if len(ids) == 0 {
		return []models.School{}, nil
	}
	var schools []models.School
	err := s.DB.WithContext(ctx).Where("id IN ? AND is_active = ?", ids, true).Order("name ASC").Find(&schools).Error
	return schools, err
}
