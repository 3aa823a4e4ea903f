package pricelists

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/multiprice-backend/internal/repo"
	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
)

// Repository persists pricelists and their items.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) CreatePricelist(ctx context.Context, pricelist *models.Pricelist) (*models.Pricelist, error) {
	if err := r.DB(ctx).Omit("Items").Create(pricelist).Error; err != nil {
		return nil, err
	}
	return pricelist, nil
}

func (r *Repository) FindPricelist(ctx context.Context, id uuid.UUID) (*models.Pricelist, error) {
	var pricelist models.Pricelist
	if err := r.FindByID(ctx, &pricelist, id, "pricelist"); err != nil {
		return nil, err
	}
	return &pricelist, nil
}

func (r *Repository) CreateItem(ctx context.Context, item *models.PricelistItem) (*models.PricelistItem, error) {
	if err := r.DB(ctx).Omit("MultiPriceName").Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns the pricelist's items in evaluation order: most specific
// scope first, then larger minimum quantities, then sequence.
func (r *Repository) ListItems(ctx context.Context, pricelistID uuid.UUID) ([]models.PricelistItem, error) {
	var items []models.PricelistItem
	err := r.DB(ctx).
		Where("pricelist_id = ?", pricelistID).
		Order("applied_on ASC, min_quantity DESC, sequence ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) PriceNameExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.PriceName{}, id)
}

func (r *Repository) TemplateExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.ProductTemplate{}, id)
}

func (r *Repository) VariantExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.ProductVariant{}, id)
}
