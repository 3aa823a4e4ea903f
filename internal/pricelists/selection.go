package pricelists

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/internal/multiprice"
	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
)

// sortItems orders items the way they are evaluated: variant scope, product
// scope, global scope; larger minimum quantity first; then sequence and id.
func sortItems(items []models.PricelistItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.AppliedOn != b.AppliedOn {
			return a.AppliedOn < b.AppliedOn
		}
		if !a.MinQuantity.Equal(b.MinQuantity) {
			return a.MinQuantity.GreaterThan(b.MinQuantity)
		}
		if a.Sequence != b.Sequence {
			return a.Sequence < b.Sequence
		}
		return a.ID.String() < b.ID.String()
	})
}

// selectItem returns the first item of the sorted slice that applies to the
// product at qty (in the product UOM) on day, or nil.
func selectItem(items []models.PricelistItem, product multiprice.Product, qty decimal.Decimal, day time.Time) *models.PricelistItem {
	for i := range items {
		if applies(&items[i], product, qty, day) {
			return &items[i]
		}
	}
	return nil
}

func applies(item *models.PricelistItem, product multiprice.Product, qty decimal.Decimal, day time.Time) bool {
	switch item.AppliedOn {
	case enums.AppliedOnVariant:
		if !product.IsVariant || item.ProductVariantID == nil || *item.ProductVariantID != product.ID {
			return false
		}
	case enums.AppliedOnProduct:
		if item.ProductTemplateID == nil || *item.ProductTemplateID != product.TemplateID {
			return false
		}
	case enums.AppliedOnGlobal:
	default:
		return false
	}
	if item.MinQuantity.IsPositive() && qty.LessThan(item.MinQuantity) {
		return false
	}
	if item.DateStart != nil && day.Before(truncateDay(*item.DateStart)) {
		return false
	}
	if item.DateEnd != nil && day.After(truncateDay(*item.DateEnd)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ruleFromItem(item *models.PricelistItem) multiprice.Rule {
	return multiprice.Rule{
		ComputePrice:     item.ComputePrice,
		Base:             item.Base,
		MultiPriceNameID: item.MultiPriceNameID,
		PriceDiscount:    item.PriceDiscount,
		PriceSurcharge:   item.PriceSurcharge,
		PriceMinMargin:   item.PriceMinMargin,
		PriceMaxMargin:   item.PriceMaxMargin,
	}
}
