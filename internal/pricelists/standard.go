package pricelists

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/internal/multiprice"
	product "github.com/angelmondragon/multiprice-backend/internal/products"
	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// standardPricer builds the non multi-price path for one selected item. Every
// amount it reads is expressed in the product UOM and converted at the end.
func standardPricer(resolver *multiprice.Resolver, pricing *product.Pricing, item *models.PricelistItem) multiprice.StandardFunc {
	return func(req multiprice.ComputeRequest) (decimal.Decimal, error) {
		var price decimal.Decimal
		switch item.ComputePrice {
		case enums.ComputePriceFixed:
			price = item.FixedPrice
		case enums.ComputePricePercentage:
			price = pricing.ListPrice.Sub(pricing.ListPrice.Mul(item.PercentPrice).Div(hundred))
		case enums.ComputePriceFormula:
			price = multiprice.ApplyFormula(formulaBase(pricing, item.Base), req.Rule)
		default:
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidRule, "unknown compute_price")
		}
		return resolver.ConvertToPriceUom(req.Product, price, req.UomID)
	}
}

// formulaBase picks the starting price of a standard formula rule. A
// multi_price base only reaches here on a reprice and falls back to list price.
func formulaBase(pricing *product.Pricing, base enums.PricelistBase) decimal.Decimal {
	if base == enums.PricelistBaseStandardPrice {
		return pricing.StandardPrice
	}
	return pricing.ListPrice
}
