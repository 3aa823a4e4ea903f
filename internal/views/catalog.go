package views

import "github.com/angelmondragon/multiprice-backend/pkg/visibility"

// Model names served by the view catalog.
const (
	ModelTemplate      = "product.template"
	ModelVariant       = "product.product"
	ModelPricelistItem = "product.pricelist.item"
	ModelPriceName     = "product.multi.price.name"
)

// Field is one field of a form view. Group gates are never serialized.
type Field struct {
	Name      string     `json:"name"`
	Label     string     `json:"label"`
	Type      string     `json:"type"`
	Relation  string     `json:"relation,omitempty"`
	Readonly  bool       `json:"readonly,omitempty"`
	Invisible *Condition `json:"invisible_unless,omitempty"`

	group string
}

// Condition hides a field unless another field holds Value.
type Condition struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func priceLines(label string) Field {
	return Field{
		Name:     "price_ids",
		Label:    label,
		Type:     "one2many",
		Relation: "product.multi.price",
		group:    visibility.GroupShowMultiPrices,
	}
}

var catalog = map[string][]Field{
	ModelTemplate: {
		{Name: "name", Label: "Name", Type: "char"},
		{Name: "list_price", Label: "Sales Price", Type: "float"},
		{Name: "standard_price", Label: "Cost", Type: "float"},
		{Name: "uom_id", Label: "Unit of Measure", Type: "many2one", Relation: "uom.uom"},
		{Name: "uom_po_id", Label: "Purchase Unit of Measure", Type: "many2one", Relation: "uom.uom"},
		priceLines("Other Prices"),
		{Name: "product_document_count", Label: "Documents", Type: "integer", Readonly: true},
	},
	ModelVariant: {
		{Name: "name", Label: "Name", Type: "char"},
		{Name: "product_tmpl_id", Label: "Product Template", Type: "many2one", Relation: ModelTemplate, Readonly: true},
		{Name: "lst_price", Label: "Sales Price", Type: "float", Readonly: true},
		priceLines("Variant Prices"),
		{Name: "product_document_count", Label: "Documents", Type: "integer", Readonly: true},
	},
	ModelPricelistItem: {
		{Name: "applied_on", Label: "Apply On", Type: "selection"},
		{Name: "min_quantity", Label: "Min. Quantity", Type: "float"},
		{Name: "date_start", Label: "Start Date", Type: "date"},
		{Name: "date_end", Label: "End Date", Type: "date"},
		{Name: "compute_price", Label: "Computation", Type: "selection"},
		{Name: "fixed_price", Label: "Fixed Price", Type: "float", Invisible: &Condition{Field: "compute_price", Value: "fixed"}},
		{Name: "percent_price", Label: "Percentage Price", Type: "float", Invisible: &Condition{Field: "compute_price", Value: "percentage"}},
		{Name: "base", Label: "Based on", Type: "selection", Invisible: &Condition{Field: "compute_price", Value: "formula"}},
		{
			Name:      "multi_price_name_id",
			Label:     "Other Price Name",
			Type:      "many2one",
			Relation:  ModelPriceName,
			Invisible: &Condition{Field: "base", Value: "multi_price"},
		},
		{Name: "price_discount", Label: "Price Discount", Type: "float", Invisible: &Condition{Field: "compute_price", Value: "formula"}},
		{Name: "price_surcharge", Label: "Price Surcharge", Type: "float", Invisible: &Condition{Field: "compute_price", Value: "formula"}},
		{Name: "price_min_margin", Label: "Min. Price Margin", Type: "float", Invisible: &Condition{Field: "compute_price", Value: "formula"}},
		{Name: "price_max_margin", Label: "Max. Price Margin", Type: "float", Invisible: &Condition{Field: "compute_price", Value: "formula"}},
	},
	ModelPriceName: {
		{Name: "name", Label: "Name", Type: "char"},
	},
}
