package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductVariant is a concrete sellable product derived from a template.
type ProductVariant struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	TemplateID uuid.UUID        `gorm:"column:template_id;type:uuid;not null;index:idx_product_variants_template"`
	Name       string           `gorm:"column:name;not null"`
	Template   *ProductTemplate `gorm:"foreignKey:TemplateID"`
	Prices     []ProductPrice   `gorm:"foreignKey:VariantID"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

func (p *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
