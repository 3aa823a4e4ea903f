package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/internal/multiprice"
	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
)

// PriceNameDTO represents a named price slot.
type PriceNameDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PriceDTO is one price entry owned by a template or variant.
type PriceDTO struct {
	ID          uuid.UUID       `json:"id"`
	PriceNameID uuid.UUID       `json:"price_name_id"`
	PriceName   string          `json:"price_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Sequence    int             `json:"sequence"`
}

// EffectivePriceDTO is the price a slot resolves to after variant fallback.
type EffectivePriceDTO struct {
	PriceNameID uuid.UUID       `json:"price_name_id"`
	Price       decimal.Decimal `json:"price"`
	Inherited   bool            `json:"inherited"`
}

// ProductPricesDTO bundles the owned entries with the effective view.
type ProductPricesDTO struct {
	Kind      string              `json:"kind"`
	ProductID uuid.UUID           `json:"product_id"`
	Entries   []PriceDTO          `json:"entries"`
	Effective []EffectivePriceDTO `json:"effective"`
}

// VariantDTO represents a product variant.
type VariantDTO struct {
	ID         uuid.UUID  `json:"id"`
	TemplateID uuid.UUID  `json:"template_id"`
	Name       string     `json:"name"`
	Prices     []PriceDTO `json:"prices,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TemplateDTO represents a product template with its variants.
type TemplateDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	ListPrice     decimal.Decimal `json:"list_price"`
	StandardPrice decimal.Decimal `json:"standard_price"`
	UomID         uuid.UUID       `json:"uom_id"`
	PurchaseUomID uuid.UUID       `json:"uom_po_id"`
	Prices        []PriceDTO      `json:"prices,omitempty"`
	Variants      []VariantDTO    `json:"variants"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Pricing is everything a pricelist needs to price one product.
type Pricing struct {
	Kind          enums.ProductKind
	Name          string
	ListPrice     decimal.Decimal
	StandardPrice decimal.Decimal
	Product       multiprice.Product
}

func priceNameToDTO(n *models.PriceName) PriceNameDTO {
	return PriceNameDTO{ID: n.ID, Name: n.Name, CreatedAt: n.CreatedAt}
}

func pricesToDTO(prices []models.ProductPrice) []PriceDTO {
	out := make([]PriceDTO, 0, len(prices))
	for _, p := range prices {
		dto := PriceDTO{
			ID:          p.ID,
			PriceNameID: p.PriceNameID,
			Price:       p.Price,
			Sequence:    p.Sequence,
		}
		if p.PriceName != nil {
			dto.PriceName = p.PriceName.Name
		}
		out = append(out, dto)
	}
	return out
}

func variantToDTO(v *models.ProductVariant, prices []models.ProductPrice) VariantDTO {
	return VariantDTO{
		ID:         v.ID,
		TemplateID: v.TemplateID,
		Name:       v.Name,
		Prices:     pricesToDTO(prices),
		CreatedAt:  v.CreatedAt,
	}
}

func templateToDTO(t *models.ProductTemplate, prices []models.ProductPrice) TemplateDTO {
	variants := make([]VariantDTO, 0, len(t.Variants))
	for i := range t.Variants {
		variants = append(variants, variantToDTO(&t.Variants[i], nil))
	}
	return TemplateDTO{
		ID:            t.ID,
		Name:          t.Name,
		ListPrice:     t.ListPrice,
		StandardPrice: t.StandardPrice,
		UomID:         t.UomID,
		PurchaseUomID: t.PurchaseUomID,
		Prices:        pricesToDTO(prices),
		Variants:      variants,
		CreatedAt:     t.CreatedAt,
	}
}
