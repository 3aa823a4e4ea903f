package product

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
)

func mustCreateTestUnit(t *testing.T, tx *gorm.DB, categoryID uuid.UUID, uomType enums.UomType, factor string) *models.Uom {
	t.Helper()
	unit := &models.Uom{
		CategoryID: categoryID,
		Name:       "Unit " + uuid.NewString()[:8],
		UomType:    uomType,
		Ratio:      decimal.NewFromInt(1),
		Factor:     decimal.RequireFromString(factor),
	}
	if err := tx.Create(unit).Error; err != nil {
		t.Fatalf("create unit: %v", err)
	}
	return unit
}

func mustCreateTestCategory(t *testing.T, tx *gorm.DB) *models.UomCategory {
	t.Helper()
	category := &models.UomCategory{Name: "Category " + uuid.NewString()}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateTestPriceName(t *testing.T, tx *gorm.DB, name string) *models.PriceName {
	t.Helper()
	priceName := &models.PriceName{Name: name}
	if err := tx.Create(priceName).Error; err != nil {
		t.Fatalf("create price name: %v", err)
	}
	return priceName
}
