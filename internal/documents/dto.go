package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
)

// DocumentDTO represents an attached product document.
type DocumentDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	URL       *string   `json:"url,omitempty"`
	ResModel  string    `json:"res_model"`
	ResID     uuid.UUID `json:"res_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResult is one page of documents; Cursor is empty on the last page.
type ListResult struct {
	Items  []DocumentDTO `json:"items"`
	Cursor string        `json:"cursor,omitempty"`
}

// CountDTO is the document counter shown on a product.
type CountDTO struct {
	Kind      string    `json:"kind"`
	ProductID uuid.UUID `json:"product_id"`
	Count     int64     `json:"product_document_count"`
}

// ActionDTO describes the window a client opens to browse product documents.
type ActionDTO struct {
	Type     string        `json:"type"`
	Name     string        `json:"name"`
	ResModel string        `json:"res_model"`
	ViewMode string        `json:"view_mode"`
	Domain   []Ref         `json:"domain"`
	Context  ActionContext `json:"context"`
}

// ActionContext carries creation defaults and the preselected search filters.
type ActionContext struct {
	DefaultResModel                     string     `json:"default_res_model"`
	DefaultResID                        uuid.UUID  `json:"default_res_id"`
	DefaultParentResID                  *uuid.UUID `json:"default_parent_res_id,omitempty"`
	SearchDefaultContextVariant         bool       `json:"search_default_context_variant"`
	SearchDefaultContextTemplate        bool       `json:"search_default_context_template"`
	SearchDefaultContextVariantTemplate bool       `json:"search_default_context_variant_template"`
}

func documentToDTO(d *models.ProductDocument) DocumentDTO {
	return DocumentDTO{
		ID:        d.ID,
		Name:      d.Name,
		Type:      string(d.Type),
		URL:       d.URL,
		ResModel:  d.ResModel.String(),
		ResID:     d.ResID,
		CreatedAt: d.CreatedAt,
	}
}
