package uom

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.UomCategory{}, &models.Uom{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresRepository(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}

func TestCreateUnitsAndConvert(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	category, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: " Unit "})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Name != "Unit" {
		t.Fatalf("expected trimmed name, got %q", category.Name)
	}

	unit, err := svc.CreateUnit(ctx, CreateUnitInput{
		CategoryID: category.ID,
		Name:       "Units",
		UomType:    enums.UomTypeReference,
		Ratio:      decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("create reference unit: %v", err)
	}
	if !unit.Ratio.Equal(decimal.NewFromInt(1)) || !unit.Factor.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("reference unit must have ratio and factor 1, got %s %s", unit.Ratio, unit.Factor)
	}

	dozen, err := svc.CreateUnit(ctx, CreateUnitInput{
		CategoryID: category.ID,
		Name:       "Dozens",
		UomType:    enums.UomTypeBigger,
		Ratio:      decimal.NewFromInt(12),
	})
	if err != nil {
		t.Fatalf("create dozen: %v", err)
	}

	units, err := svc.ListUnits(ctx, &category.ID)
	if err != nil {
		t.Fatalf("list units: %v", err)
	}
	if len(units) != 2 || units[0].Name != "Dozens" {
		t.Fatalf("expected Dozens then Units, got %+v", units)
	}

	converter, err := svc.Converter(ctx)
	if err != nil {
		t.Fatalf("converter: %v", err)
	}
	perDozen, err := converter.ConvertPrice(decimal.NewFromInt(1), unit.ID, dozen.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !near(perDozen, "12") {
		t.Fatalf("expected 12 per dozen got %s", perDozen)
	}
}

func TestCreateUnitValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	category, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Weight"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.CreateUnit(ctx, CreateUnitInput{CategoryID: category.ID, Name: "kg", UomType: enums.UomTypeReference}); err != nil {
		t.Fatalf("create kg: %v", err)
	}

	cases := []struct {
		name  string
		input CreateUnitInput
		code  pkgerrors.Code
	}{
		{"second reference unit", CreateUnitInput{CategoryID: category.ID, Name: "lb", UomType: enums.UomTypeReference}, pkgerrors.CodeConflict},
		{"non positive ratio", CreateUnitInput{CategoryID: category.ID, Name: "g", UomType: enums.UomTypeSmaller, Ratio: decimal.NewFromInt(-1)}, pkgerrors.CodeValidation},
		{"unknown category", CreateUnitInput{CategoryID: uuid.New(), Name: "g", UomType: enums.UomTypeSmaller, Ratio: decimal.NewFromInt(1000)}, pkgerrors.CodeNotFound},
		{"blank name", CreateUnitInput{CategoryID: category.ID, Name: "  ", UomType: enums.UomTypeSmaller, Ratio: decimal.NewFromInt(1000)}, pkgerrors.CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUnit(ctx, tc.input)
			if !pkgerrors.HasCode(err, tc.code) {
				t.Fatalf("expected %s got %v", tc.code, err)
			}
		})
	}
}

func TestCreateCategoryConflict(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Volume"}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Volume"}); !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	categories, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("expected 1 category got %d", len(categories))
	}
}
