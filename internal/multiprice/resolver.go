package multiprice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
)

// PriceConverter converts a unit price between two units of measure. It must
// fail with CodeUomIncompatible when the units belong to different categories.
type PriceConverter interface {
	ConvertPrice(price decimal.Decimal, from, to uuid.UUID) (decimal.Decimal, error)
}

// ComputeRequest is one price computation dispatched by a pricelist.
type ComputeRequest struct {
	Product  Product
	Quantity decimal.Decimal
	UomID    *uuid.UUID
	Date     time.Time
	Currency string
	Rule     Rule

	// IsReprice marks a nested computation; multi-price delegation is skipped.
	IsReprice bool
}

// StandardFunc computes the non multi-price path of a rule.
type StandardFunc func(req ComputeRequest) (decimal.Decimal, error)

// Resolver computes prices from named price slots. It holds no mutable state
// and is safe for concurrent use.
type Resolver struct {
	converter PriceConverter
}

func NewResolver(converter PriceConverter) *Resolver {
	return &Resolver{converter: converter}
}

// GetMultiPricePrice reads the slot selected by rule and applies the formula.
// A product without an entry for the slot prices from zero.
func (r *Resolver) GetMultiPricePrice(product Product, rule Rule) (decimal.Decimal, error) {
	if rule.MultiPriceNameID == nil || *rule.MultiPriceNameID == uuid.Nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidRule, "multi price rule has no price name")
	}
	base, _ := product.EffectivePrice(*rule.MultiPriceNameID)
	return ApplyFormula(base, rule), nil
}

// ComputePrice delegates formula rules on multi_price to GetMultiPricePrice and
// everything else to standard.
func (r *Resolver) ComputePrice(req ComputeRequest, standard StandardFunc) (decimal.Decimal, error) {
	if req.Rule.UsesMultiPrice() && !req.IsReprice {
		price, err := r.GetMultiPricePrice(req.Product, req.Rule)
		if err != nil {
			return decimal.Zero, err
		}
		return r.ConvertToPriceUom(req.Product, price, req.UomID)
	}
	if standard == nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInternal, "standard price computation unavailable")
	}
	return standard(req)
}

// ConvertToPriceUom converts a price expressed in the product UOM into target.
// A nil target keeps the product UOM.
func (r *Resolver) ConvertToPriceUom(product Product, price decimal.Decimal, target *uuid.UUID) (decimal.Decimal, error) {
	if target == nil || *target == uuid.Nil || *target == product.UomID {
		return price, nil
	}
	if r.converter == nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInternal, "uom converter unavailable")
	}
	return r.converter.ConvertPrice(price, product.UomID, *target)
}
