package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductTemplate is the shared definition every variant inherits from.
type ProductTemplate struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Name          string           `gorm:"column:name;not null"`
	ListPrice     decimal.Decimal  `gorm:"column:list_price;type:numeric(16,4);not null"`
	StandardPrice decimal.Decimal  `gorm:"column:standard_price;type:numeric(16,4);not null"`
	UomID         uuid.UUID        `gorm:"column:uom_id;type:uuid;not null"`
	PurchaseUomID uuid.UUID        `gorm:"column:uom_po_id;type:uuid;not null"`
	Variants      []ProductVariant `gorm:"foreignKey:TemplateID"`
	Prices        []ProductPrice   `gorm:"foreignKey:TemplateID"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductTemplate) TableName() string {
	return "product_templates"
}

func (p *ProductTemplate) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
