package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceName is a globally defined price slot label (e.g. "Cost", "Wholesale").
type PriceName struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:idx_price_names_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PriceName) TableName() string {
	return "price_names"
}

func (p *PriceName) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
