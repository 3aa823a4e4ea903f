package enums

import "fmt"

// ProductKind distinguishes templates from their variants.
type ProductKind string

const (
	ProductKindTemplate ProductKind = "template"
	ProductKindVariant  ProductKind = "variant"
)

// String implements fmt.Stringer.
func (k ProductKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ProductKind.
func (k ProductKind) IsValid() bool {
	return k == ProductKindTemplate || k == ProductKindVariant
}

// ParseProductKind converts raw input into a ProductKind.
func ParseProductKind(value string) (ProductKind, error) {
	kind := ProductKind(value)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid product kind %q", value)
	}
	return kind, nil
}

// ResModel returns the record model name documents use to reference the kind.
func (k ProductKind) ResModel() DocumentResModel {
	if k == ProductKindVariant {
		return DocumentResModelVariant
	}
	return DocumentResModelTemplate
}
