package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/multiprice-backend/pkg/enums"
)

// Pricelist owns an ordered set of pricing rules.
type Pricelist struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Items     []PricelistItem `gorm:"foreignKey:PricelistID"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Pricelist) TableName() string {
	return "pricelists"
}

func (p *Pricelist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PricelistItem is a single pricing rule.
type PricelistItem struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	PricelistID       uuid.UUID           `gorm:"column:pricelist_id;type:uuid;not null;index:idx_pricelist_items_pricelist"`
	Sequence          int                 `gorm:"column:sequence;not null;default:0"`
	AppliedOn         enums.AppliedOn     `gorm:"column:applied_on;type:varchar(32);not null"`
	ProductTemplateID *uuid.UUID          `gorm:"column:product_template_id;type:uuid"`
	ProductVariantID  *uuid.UUID          `gorm:"column:product_variant_id;type:uuid"`
	MinQuantity       decimal.Decimal     `gorm:"column:min_quantity;type:numeric(16,4);not null"`
	DateStart         *time.Time          `gorm:"column:date_start"`
	DateEnd           *time.Time          `gorm:"column:date_end"`
	ComputePrice      enums.ComputePrice  `gorm:"column:compute_price;type:varchar(16);not null"`
	Base              enums.PricelistBase `gorm:"column:base;type:varchar(16);not null"`
	MultiPriceNameID  *uuid.UUID          `gorm:"column:multi_price_name_id;type:uuid"`
	MultiPriceName    *PriceName          `gorm:"foreignKey:MultiPriceNameID"`
	FixedPrice        decimal.Decimal     `gorm:"column:fixed_price;type:numeric(16,4);not null"`
	PercentPrice      decimal.Decimal     `gorm:"column:percent_price;type:numeric(16,4);not null"`
	PriceDiscount     decimal.Decimal     `gorm:"column:price_discount;type:numeric(16,4);not null"`
	PriceSurcharge    decimal.Decimal     `gorm:"column:price_surcharge;type:numeric(16,4);not null"`
	PriceMinMargin    decimal.Decimal     `gorm:"column:price_min_margin;type:numeric(16,4);not null"`
	PriceMaxMargin    decimal.Decimal     `gorm:"column:price_max_margin;type:numeric(16,4);not null"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (PricelistItem) TableName() string {
	return "pricelist_items"
}

func (p *PricelistItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
