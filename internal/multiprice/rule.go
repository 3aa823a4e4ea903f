package multiprice

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/pkg/enums"
)

var hundred = decimal.NewFromInt(100)

// Rule carries the pricelist item fields the resolver reads.
type Rule struct {
	ComputePrice     enums.ComputePrice
	Base             enums.PricelistBase
	MultiPriceNameID *uuid.UUID
	PriceDiscount    decimal.Decimal
	PriceSurcharge   decimal.Decimal
	PriceMinMargin   decimal.Decimal
	PriceMaxMargin   decimal.Decimal
}

// UsesMultiPrice reports whether the rule is a formula on a named price slot.
func (r Rule) UsesMultiPrice() bool {
	return r.ComputePrice == enums.ComputePriceFormula && r.Base == enums.PricelistBaseMultiPrice
}

// ApplyFormula runs discount, surcharge and margin clamps on base. Margins are
// offsets from base, not from the discounted price.
func ApplyFormula(base decimal.Decimal, rule Rule) decimal.Decimal {
	price := base.Mul(decimal.NewFromInt(1).Sub(rule.PriceDiscount.Div(hundred)))
	price = price.Add(rule.PriceSurcharge)

	if !rule.PriceMaxMargin.IsZero() {
		price = decimal.Min(price, base.Add(rule.PriceMaxMargin))
	}
	if !rule.PriceMinMargin.IsZero() {
		price = decimal.Max(price, base.Add(rule.PriceMinMargin))
	}
	return price
}
