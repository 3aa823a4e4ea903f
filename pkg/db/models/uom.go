package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/multiprice-backend/pkg/enums"
)

// UomCategory groups units that can be converted into each other.
type UomCategory struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:idx_uom_categories_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UomCategory) TableName() string {
	return "uom_categories"
}

func (c *UomCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Uom is a unit of measure. Factor is how many of this unit make one reference
// unit of the category.
type Uom struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CategoryID uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index:idx_uoms_category"`
	Name       string          `gorm:"column:name;not null"`
	UomType    enums.UomType   `gorm:"column:uom_type;type:varchar(16);not null"`
	Ratio      decimal.Decimal `gorm:"column:ratio;type:numeric(20,10);not null"`
	Factor     decimal.Decimal `gorm:"column:factor;type:numeric(20,10);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Uom) TableName() string {
	return "uoms"
}

func (u *Uom) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
