package pricelists

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
)

// PricelistDTO represents a pricelist.
type PricelistDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemDTO represents a pricelist rule.
type ItemDTO struct {
	ID                uuid.UUID       `json:"id"`
	PricelistID       uuid.UUID       `json:"pricelist_id"`
	Sequence          int             `json:"sequence"`
	AppliedOn         string          `json:"applied_on"`
	ProductTemplateID *uuid.UUID      `json:"product_template_id,omitempty"`
	ProductVariantID  *uuid.UUID      `json:"product_variant_id,omitempty"`
	MinQuantity       decimal.Decimal `json:"min_quantity"`
	DateStart         *time.Time      `json:"date_start,omitempty"`
	DateEnd           *time.Time      `json:"date_end,omitempty"`
	ComputePrice      string          `json:"compute_price"`
	Base              string          `json:"base"`
	MultiPriceNameID  *uuid.UUID      `json:"multi_price_name_id,omitempty"`
	FixedPrice        decimal.Decimal `json:"fixed_price"`
	PercentPrice      decimal.Decimal `json:"percent_price"`
	PriceDiscount     decimal.Decimal `json:"price_discount"`
	PriceSurcharge    decimal.Decimal `json:"price_surcharge"`
	PriceMinMargin    decimal.Decimal `json:"price_min_margin"`
	PriceMaxMargin    decimal.Decimal `json:"price_max_margin"`
	CreatedAt         time.Time       `json:"created_at"`
}

// PriceResultDTO is the computed price for one request line.
type PriceResultDTO struct {
	Kind      string          `json:"kind"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UomID     uuid.UUID       `json:"uom_id"`
	Price     decimal.Decimal `json:"price"`
	ItemID    *uuid.UUID      `json:"item_id,omitempty"`
	Cached    bool            `json:"cached"`
}

func pricelistToDTO(p *models.Pricelist) PricelistDTO {
	return PricelistDTO{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

func itemToDTO(i *models.PricelistItem) ItemDTO {
	return ItemDTO{
		ID:                i.ID,
		PricelistID:       i.PricelistID,
		Sequence:          i.Sequence,
		AppliedOn:         i.AppliedOn.String(),
		ProductTemplateID: i.ProductTemplateID,
		ProductVariantID:  i.ProductVariantID,
		MinQuantity:       i.MinQuantity,
		DateStart:         i.DateStart,
		DateEnd:           i.DateEnd,
		ComputePrice:      i.ComputePrice.String(),
		Base:              i.Base.String(),
		MultiPriceNameID:  i.MultiPriceNameID,
		FixedPrice:        i.FixedPrice,
		PercentPrice:      i.PercentPrice,
		PriceDiscount:     i.PriceDiscount,
		PriceSurcharge:    i.PriceSurcharge,
		PriceMinMargin:    i.PriceMinMargin,
		PriceMaxMargin:    i.PriceMaxMargin,
		CreatedAt:         i.CreatedAt,
	}
}
