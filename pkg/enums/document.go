package enums

import "fmt"

// DocumentType describes how a product document stores its content.
type DocumentType string

const (
	DocumentTypeURL    DocumentType = "url"
	DocumentTypeBinary DocumentType = "binary"
)

// IsValid reports whether the value is a known DocumentType.
func (d DocumentType) IsValid() bool {
	return d == DocumentTypeURL || d == DocumentTypeBinary
}

// ParseDocumentType converts raw input into a DocumentType.
func ParseDocumentType(value string) (DocumentType, error) {
	dt := DocumentType(value)
	if !dt.IsValid() {
		return "", fmt.Errorf("invalid document type %q", value)
	}
	return dt, nil
}

// DocumentResModel names the record model a document is attached to.
type DocumentResModel string

const (
	DocumentResModelTemplate DocumentResModel = "product.template"
	DocumentResModelVariant  DocumentResModel = "product.product"
	DocumentResModelDocument DocumentResModel = "product.document"
)

// String implements fmt.Stringer.
func (m DocumentResModel) String() string {
	return string(m)
}
