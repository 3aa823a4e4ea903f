package multiprice

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the pricing view of a template or a variant. For a template the
// variant map stays empty.
type Product struct {
	ID            uuid.UUID
	TemplateID    uuid.UUID
	IsVariant     bool
	UomID         uuid.UUID
	PurchaseUomID uuid.UUID

	VariantPrices  map[uuid.UUID]decimal.Decimal
	TemplatePrices map[uuid.UUID]decimal.Decimal
}

// EffectivePrice returns the price stored for slot, preferring the variant
// entry over the template entry.
func (p Product) EffectivePrice(slot uuid.UUID) (decimal.Decimal, bool) {
	if price, ok := p.VariantPrices[slot]; ok {
		return price, true
	}
	if price, ok := p.TemplatePrices[slot]; ok {
		return price, true
	}
	return decimal.Zero, false
}

// EffectivePrices merges template and variant entries into one slot -> price map.
func (p Product) EffectivePrices() map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal, len(p.TemplatePrices)+len(p.VariantPrices))
	for slot, price := range p.TemplatePrices {
		out[slot] = price
	}
	for slot, price := range p.VariantPrices {
		out[slot] = price
	}
	return out
}
