package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/multiprice-backend/pkg/enums"
)

// ProductDocument is a document attached to a product template or variant.
type ProductDocument struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	Name      string                 `gorm:"column:name;not null"`
	Type      enums.DocumentType     `gorm:"column:type;type:varchar(16);not null"`
	URL       *string                `gorm:"column:url"`
	ResModel  enums.DocumentResModel `gorm:"column:res_model;type:varchar(64);not null;index:idx_product_documents_res"`
	ResID     uuid.UUID              `gorm:"column:res_id;type:uuid;not null;index:idx_product_documents_res"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}

func (ProductDocument) TableName() string {
	return "product_documents"
}

func (d *ProductDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
