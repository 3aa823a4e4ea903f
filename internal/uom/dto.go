package uom

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
)

// CategoryDTO is the API representation of a UOM category.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UnitDTO is the API representation of a unit of measure.
type UnitDTO struct {
	ID         uuid.UUID       `json:"id"`
	CategoryID uuid.UUID       `json:"category_id"`
	Name       string          `json:"name"`
	UomType    string          `json:"uom_type"`
	Ratio      decimal.Decimal `json:"ratio"`
	Factor     decimal.Decimal `json:"factor"`
	CreatedAt  time.Time       `json:"created_at"`
}

func categoryToDTO(c *models.UomCategory) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func unitToDTO(u *models.Uom) UnitDTO {
	return UnitDTO{
		ID:         u.ID,
		CategoryID: u.CategoryID,
		Name:       u.Name,
		UomType:    u.UomType.String(),
		Ratio:      u.Ratio,
		Factor:     u.Factor,
		CreatedAt:  u.CreatedAt,
	}
}
