package documents

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/multiprice-backend/internal/repo"
	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	"github.com/angelmondragon/multiprice-backend/pkg/pagination"
)

// Repository persists product documents.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, doc *models.ProductDocument) (*models.ProductDocument, error) {
	if err := r.DB(ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// Count returns how many documents match any of the record references.
func (r *Repository) Count(ctx context.Context, refs []Ref) (int64, error) {
	var count int64
	err := r.scoped(ctx, refs).Model(&models.ProductDocument{}).Count(&count).Error
	return count, err
}

// List returns one page of documents matching any of the record references,
// newest first, plus the cursor of the next page when there is one.
func (r *Repository) List(ctx context.Context, refs []Ref, limit int, cursor *pagination.Cursor) ([]models.ProductDocument, *pagination.Cursor, error) {
	normalized := pagination.NormalizeLimit(limit)
	query := r.scoped(ctx, refs)
	if cursor != nil {
		// sqlite compares timestamps as text written in the local zone.
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt.Local(), cursor.ID)
	}

	var docs []models.ProductDocument
	if err := query.Order("created_at DESC, id DESC").Limit(pagination.LimitWithBuffer(limit)).Find(&docs).Error; err != nil {
		return nil, nil, err
	}

	docs, more := pagination.Trim(docs, normalized)
	if !more {
		return docs, nil, nil
	}
	last := docs[len(docs)-1]
	return docs, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
}

func (r *Repository) scoped(ctx context.Context, refs []Ref) *gorm.DB {
	db := r.DB(ctx)
	if len(refs) == 0 {
		return db.Where("1 = 0")
	}
	cond := r.DB(ctx)
	for i, ref := range refs {
		if i == 0 {
			cond = cond.Where("res_model = ? AND res_id IN ?", ref.ResModel, ref.ResIDs)
			continue
		}
		cond = cond.Or("res_model = ? AND res_id IN ?", ref.ResModel, ref.ResIDs)
	}
	return db.Where(cond)
}

func (r *Repository) TemplateExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.ProductTemplate{}, id)
}

// FindVariant loads the variant row without associations.
func (r *Repository) FindVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.FindByID(ctx, &variant, id, "product variant"); err != nil {
		return nil, err
	}
	return &variant, nil
}

// VariantIDs lists the variants of a template.
func (r *Repository) VariantIDs(ctx context.Context, templateID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB(ctx).
		Model(&models.ProductVariant{}).
		Where("template_id = ?", templateID).
		Pluck("id", &ids).Error
	return ids, err
}

// Ref selects documents attached to records of one model.
type Ref struct {
	ResModel enums.DocumentResModel `json:"res_model"`
	ResIDs   []uuid.UUID            `json:"res_ids"`
}
