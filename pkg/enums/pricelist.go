package enums

import "fmt"

// PricelistBase selects the price a formula rule starts from.
type PricelistBase string

const (
	PricelistBaseListPrice     PricelistBase = "list_price"
	PricelistBaseStandardPrice PricelistBase = "standard_price"
	PricelistBaseMultiPrice    PricelistBase = "multi_price"
)

var validPricelistBases = []PricelistBase{
	PricelistBaseListPrice,
	PricelistBaseStandardPrice,
	PricelistBaseMultiPrice,
}

// String implements fmt.Stringer.
func (b PricelistBase) String() string {
	return string(b)
}

// IsValid reports whether the value is a known PricelistBase.
func (b PricelistBase) IsValid() bool {
	for _, candidate := range validPricelistBases {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParsePricelistBase converts raw input into a PricelistBase.
func ParsePricelistBase(value string) (PricelistBase, error) {
	for _, candidate := range validPricelistBases {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricelist base %q", value)
}

// ComputePrice identifies how a pricelist item derives its price.
type ComputePrice string

const (
	ComputePriceFixed      ComputePrice = "fixed"
	ComputePricePercentage ComputePrice = "percentage"
	ComputePriceFormula    ComputePrice = "formula"
)

var validComputePrices = []ComputePrice{
	ComputePriceFixed,
	ComputePricePercentage,
	ComputePriceFormula,
}

// String implements fmt.Stringer.
func (c ComputePrice) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ComputePrice.
func (c ComputePrice) IsValid() bool {
	for _, candidate := range validComputePrices {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseComputePrice converts raw input into a ComputePrice.
func ParseComputePrice(value string) (ComputePrice, error) {
	for _, candidate := range validComputePrices {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid compute price %q", value)
}

// AppliedOn scopes a pricelist item. Lower values are more specific.
type AppliedOn string

const (
	AppliedOnVariant AppliedOn = "0_product_variant"
	AppliedOnProduct AppliedOn = "1_product"
	AppliedOnGlobal  AppliedOn = "3_global"
)

var validAppliedOn = []AppliedOn{
	AppliedOnVariant,
	AppliedOnProduct,
	AppliedOnGlobal,
}

// String implements fmt.Stringer.
func (a AppliedOn) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AppliedOn.
func (a AppliedOn) IsValid() bool {
	for _, candidate := range validAppliedOn {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAppliedOn converts raw input into an AppliedOn scope.
func ParseAppliedOn(value string) (AppliedOn, error) {
	for _, candidate := range validAppliedOn {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid applied_on %q", value)
}
