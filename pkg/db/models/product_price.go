package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductPrice stores one named price for a template or a variant. Exactly one
// of TemplateID / VariantID is set.
type ProductPrice struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	TemplateID  *uuid.UUID      `gorm:"column:template_id;type:uuid;uniqueIndex:idx_product_prices_template_name"`
	VariantID   *uuid.UUID      `gorm:"column:variant_id;type:uuid;uniqueIndex:idx_product_prices_variant_name"`
	PriceNameID uuid.UUID       `gorm:"column:price_name_id;type:uuid;not null;uniqueIndex:idx_product_prices_template_name;uniqueIndex:idx_product_prices_variant_name"`
	PriceName   *PriceName      `gorm:"foreignKey:PriceNameID"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(16,4);not null"`
	Sequence    int             `gorm:"column:sequence;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (ProductPrice) TableName() string {
	return "product_prices"
}

func (p *ProductPrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
