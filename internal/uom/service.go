package uom

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/pkg/db"
	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
)

// Service manages the UOM catalog and hands out converters over it.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	CreateUnit(ctx context.Context, input CreateUnitInput) (*UnitDTO, error)
	ListUnits(ctx context.Context, categoryID *uuid.UUID) ([]UnitDTO, error)
	Converter(ctx context.Context) (*Converter, error)
}

type CreateCategoryInput struct {
	Name string
}

// CreateUnitInput describes a unit relative to its category reference unit.
// Ratio is ignored for reference units.
type CreateUnitInput struct {
	CategoryID uuid.UUID
	Name       string
	UomType    enums.UomType
	Ratio      decimal.Decimal
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("uom repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	category, err := s.repo.CreateCategory(ctx, &models.UomCategory{Name: name})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_uom_categories_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "uom category already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create uom category")
	}
	dto := categoryToDTO(category)
	return &dto, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list uom categories")
	}
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, categoryToDTO(&categories[i]))
	}
	return out, nil
}

func (s *service) CreateUnit(ctx context.Context, input CreateUnitInput) (*UnitDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.UomType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uom_type is invalid")
	}
	if _, err := s.repo.FindCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	ratio := input.Ratio
	if input.UomType == enums.UomTypeReference {
		ratio = decimal.NewFromInt(1)
		exists, err := s.repo.HasReferenceUnit(ctx, input.CategoryID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check reference unit")
		}
		if exists {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already has a reference unit")
		}
	}

	factor, err := DeriveFactor(input.UomType, ratio)
	if err != nil {
		return nil, err
	}

	unit, err := s.repo.CreateUnit(ctx, &models.Uom{
		CategoryID: input.CategoryID,
		Name:       name,
		UomType:    input.UomType,
		Ratio:      ratio,
		Factor:     factor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create unit of measure")
	}
	dto := unitToDTO(unit)
	return &dto, nil
}

func (s *service) ListUnits(ctx context.Context, categoryID *uuid.UUID) ([]UnitDTO, error) {
	units, err := s.repo.ListUnits(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list units of measure")
	}
	out := make([]UnitDTO, 0, len(units))
	for i := range units {
		out = append(out, unitToDTO(&units[i]))
	}
	return out, nil
}

// Converter snapshots the current catalog.
func (s *service) Converter(ctx context.Context) (*Converter, error) {
	units, err := s.repo.ListUnits(ctx, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load units of measure")
	}
	return NewConverter(units), nil
}
