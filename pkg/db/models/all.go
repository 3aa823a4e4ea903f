package models

// All lists every persisted model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&PriceName{},
		&UomCategory{},
		&Uom{},
		&ProductTemplate{},
		&ProductVariant{},
		&ProductPrice{},
		&Pricelist{},
		&PricelistItem{},
		&ProductDocument{},
	}
}
