package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
)

// Repository wires together all product-related persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) CreatePriceName(ctx context.Context, name *models.PriceName) (*models.PriceName, error) {
	if err := r.db.WithContext(ctx).Create(name).Error; err != nil {
		return nil, err
	}
	return name, nil
}

func (r *Repository) ListPriceNames(ctx context.Context) ([]models.PriceName, error) {
	var names []models.PriceName
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// CountPriceNames returns how many of ids exist.
func (r *Repository) CountPriceNames(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PriceName{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

func (r *Repository) CreateTemplate(ctx context.Context, template *models.ProductTemplate) (*models.ProductTemplate, error) {
	if err := r.db.WithContext(ctx).Omit("Variants", "Prices").Create(template).Error; err != nil {
		return nil, err
	}
	return template, nil
}

// FindTemplate loads the template with its variants.
func (r *Repository) FindTemplate(ctx context.Context, id uuid.UUID) (*models.ProductTemplate, error) {
	var template models.ProductTemplate
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *Repository) CreateVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Omit("Template", "Prices").Create(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// FindVariant loads the variant with its template.
func (r *Repository) FindVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).Preload("Template").First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func ownerColumn(kind enums.ProductKind) string {
	if kind == enums.ProductKindVariant {
		return "variant_id"
	}
	return "template_id"
}

// ReplacePrices swaps every price entry owned by the product for prices.
func (r *Repository) ReplacePrices(ctx context.Context, kind enums.ProductKind, ownerID uuid.UUID, prices []models.ProductPrice) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where(ownerColumn(kind)+" = ?", ownerID).Delete(&models.ProductPrice{}).Error; err != nil {
		return err
	}
	if len(prices) == 0 {
		return nil
	}
	return tx.Omit("PriceName").Create(&prices).Error
}

// ListPrices returns the entries owned by the product in display order.
func (r *Repository) ListPrices(ctx context.Context, kind enums.ProductKind, ownerID uuid.UUID) ([]models.ProductPrice, error) {
	var prices []models.ProductPrice
	err := r.db.WithContext(ctx).
		Preload("PriceName").
		Where(ownerColumn(kind)+" = ?", ownerID).
		Order("sequence ASC, created_at ASC, id ASC").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

// PriceMap returns slot -> price for the entries owned by the product.
func (r *Repository) PriceMap(ctx context.Context, kind enums.ProductKind, ownerID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	var prices []models.ProductPrice
	err := r.db.WithContext(ctx).
		Select("price_name_id", "price").
		Where(ownerColumn(kind)+" = ?", ownerID).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(prices))
	for _, p := range prices {
		out[p.PriceNameID] = p.Price
	}
	return out, nil
}
