package uom

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/multiprice-backend/internal/repo"
	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
)

// Repository persists UOM categories and units.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.UomCategory) (*models.UomCategory, error) {
	if err := r.DB(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *Repository) FindCategory(ctx context.Context, id uuid.UUID) (*models.UomCategory, error) {
	var category models.UomCategory
	if err := r.FindByID(ctx, &category, id, "uom category"); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.UomCategory, error) {
	var categories []models.UomCategory
	if err := r.DB(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *Repository) CreateUnit(ctx context.Context, unit *models.Uom) (*models.Uom, error) {
	if err := r.DB(ctx).Create(unit).Error; err != nil {
		return nil, err
	}
	return unit, nil
}

func (r *Repository) FindUnit(ctx context.Context, id uuid.UUID) (*models.Uom, error) {
	var unit models.Uom
	if err := r.FindByID(ctx, &unit, id, "unit of measure"); err != nil {
		return nil, err
	}
	return &unit, nil
}

// ListUnits returns every unit, optionally restricted to one category.
func (r *Repository) ListUnits(ctx context.Context, categoryID *uuid.UUID) ([]models.Uom, error) {
	query := r.DB(ctx).Order("name ASC")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	var units []models.Uom
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// HasReferenceUnit reports whether the category already defines its reference unit.
func (r *Repository) HasReferenceUnit(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Uom{}).
		Where("category_id = ? AND uom_type = ?", categoryID, enums.UomTypeReference).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
