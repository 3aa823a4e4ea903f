package enums

import "fmt"

// UomType positions a unit relative to the reference unit of its category.
type UomType string

const (
	UomTypeReference UomType = "reference"
	UomTypeBigger    UomType = "bigger"
	UomTypeSmaller   UomType = "smaller"
)

var validUomTypes = []UomType{
	UomTypeReference,
	UomTypeBigger,
	UomTypeSmaller,
}

// String implements fmt.Stringer.
func (u UomType) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UomType.
func (u UomType) IsValid() bool {
	for _, candidate := range validUomTypes {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUomType converts raw input into a UomType.
func ParseUomType(value string) (UomType, error) {
	for _, candidate := range validUomTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid uom type %q", value)
}
