package uom

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
)

// DeriveFactor computes how many units of this UOM make one reference unit.
func DeriveFactor(uomType enums.UomType, ratio decimal.Decimal) (decimal.Decimal, error) {
	switch uomType {
	case enums.UomTypeReference:
		return decimal.NewFromInt(1), nil
	case enums.UomTypeSmaller:
		if !ratio.IsPositive() {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "ratio must be positive")
		}
		return ratio, nil
	case enums.UomTypeBigger:
		if !ratio.IsPositive() {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "ratio must be positive")
		}
		return decimal.NewFromInt(1).DivRound(ratio, factorPrecision), nil
	default:
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown uom type %q", uomType))
	}
}

const factorPrecision = 10

type unit struct {
	categoryID uuid.UUID
	factor     decimal.Decimal
}

// Converter converts prices and quantities over a fixed snapshot of units.
// It is read-only after construction and safe for concurrent use.
type Converter struct {
	units map[uuid.UUID]unit
}

// NewConverter snapshots the supplied units.
func NewConverter(uoms []models.Uom) *Converter {
	units := make(map[uuid.UUID]unit, len(uoms))
	for _, u := range uoms {
		units[u.ID] = unit{categoryID: u.CategoryID, factor: u.Factor}
	}
	return &Converter{units: units}
}

// ConvertPrice re-expresses a per-unit price of from as a per-unit price of to.
func (c *Converter) ConvertPrice(price decimal.Decimal, from, to uuid.UUID) (decimal.Decimal, error) {
	if from == to {
		return price, nil
	}
	src, dst, err := c.pair(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Mul(src.factor).Div(dst.factor), nil
}

// ConvertQuantity re-expresses a quantity of from as a quantity of to.
func (c *Converter) ConvertQuantity(qty decimal.Decimal, from, to uuid.UUID) (decimal.Decimal, error) {
	if from == to {
		return qty, nil
	}
	src, dst, err := c.pair(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return qty.Div(src.factor).Mul(dst.factor), nil
}

func (c *Converter) pair(from, to uuid.UUID) (unit, unit, error) {
	src, ok := c.units[from]
	if !ok {
		return unit{}, unit{}, pkgerrors.New(pkgerrors.CodeNotFound, "unit of measure not found").
			WithDetails(map[string]any{"uom_id": from})
	}
	dst, ok := c.units[to]
	if !ok {
		return unit{}, unit{}, pkgerrors.New(pkgerrors.CodeNotFound, "unit of measure not found").
			WithDetails(map[string]any{"uom_id": to})
	}
	if src.categoryID != dst.categoryID {
		return unit{}, unit{}, pkgerrors.New(pkgerrors.CodeUomIncompatible, "units of measure belong to different categories").
			WithDetails(map[string]any{"from_uom_id": from, "to_uom_id": to})
	}
	if src.factor.IsZero() || dst.factor.IsZero() {
		return unit{}, unit{}, pkgerrors.New(pkgerrors.CodeInternal, "unit of measure has zero factor")
	}
	return src, dst, nil
}
