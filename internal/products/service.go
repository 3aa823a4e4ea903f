package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/multiprice-backend/internal/multiprice"
	"github.com/angelmondragon/multiprice-backend/pkg/db"
	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
)

// Service exposes catalog and price-slot management.
type Service interface {
	CreatePriceName(ctx context.Context, name string) (*PriceNameDTO, error)
	ListPriceNames(ctx context.Context) ([]PriceNameDTO, error)
	CreateTemplate(ctx context.Context, input CreateTemplateInput) (*TemplateDTO, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*TemplateDTO, error)
	CreateVariant(ctx context.Context, templateID uuid.UUID, input CreateVariantInput) (*VariantDTO, error)
	ReplacePrices(ctx context.Context, kind enums.ProductKind, productID uuid.UUID, prices []PriceInput) (*ProductPricesDTO, error)
	GetPrices(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (*ProductPricesDTO, error)
	LoadPricing(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (*Pricing, error)
}

// PriceInput is one requested price entry. A zero sequence keeps input order.
type PriceInput struct {
	PriceNameID uuid.UUID
	Price       decimal.Decimal
	Sequence    int
}

// CreateTemplateInput holds the validated payload to create a template.
type CreateTemplateInput struct {
	Name          string
	ListPrice     *decimal.Decimal
	StandardPrice decimal.Decimal
	UomID         uuid.UUID
	PurchaseUomID *uuid.UUID
	Prices        []PriceInput
	Variants      []CreateVariantInput
}

// CreateVariantInput holds the payload to create a variant.
type CreateVariantInput struct {
	Name   string
	Prices []PriceInput
}

type unitLoader interface {
	FindUnit(ctx context.Context, id uuid.UUID) (*models.Uom, error)
}

// CatalogInvalidator drops cached prices derived from product price entries.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

var defaultListPrice = decimal.NewFromInt(1)

const sequenceStep = 10

type service struct {
	repo        *Repository
	dbClient    *db.Client
	units       unitLoader
	invalidator CatalogInvalidator
}

// NewService constructs a product service instance. invalidator may be nil
// when no price cache is configured.
func NewService(repo *Repository, dbClient *db.Client, units unitLoader, invalidator CatalogInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if units == nil {
		return nil, fmt.Errorf("uom repository required")
	}
	return &service{repo: repo, dbClient: dbClient, units: units, invalidator: invalidator}, nil
}

func (s *service) CreatePriceName(ctx context.Context, name string) (*PriceNameDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	created, err := s.repo.CreatePriceName(ctx, &models.PriceName{Name: name})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_price_names_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "price name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create price name")
	}
	dto := priceNameToDTO(created)
	return &dto, nil
}

func (s *service) ListPriceNames(ctx context.Context) ([]PriceNameDTO, error) {
	names, err := s.repo.ListPriceNames(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list price names")
	}
	out := make([]PriceNameDTO, 0, len(names))
	for i := range names {
		out = append(out, priceNameToDTO(&names[i]))
	}
	return out, nil
}

// CreateTemplate creates the template, its price entries and any variants in
// one transaction.
func (s *service) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*TemplateDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.StandardPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "standard_price must be >= 0")
	}
	listPrice := defaultListPrice
	if input.ListPrice != nil {
		if input.ListPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "list_price must be >= 0")
		}
		listPrice = *input.ListPrice
	}
	purchaseUomID := input.UomID
	if input.PurchaseUomID != nil {
		purchaseUomID = *input.PurchaseUomID
	}
	if err := s.ensureUnits(ctx, input.UomID, purchaseUomID); err != nil {
		return nil, err
	}

	if err := s.validatePrices(ctx, input.Prices); err != nil {
		return nil, err
	}
	for i, variant := range input.Variants {
		if strings.TrimSpace(variant.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variants[%d].name is required", i))
		}
		if err := s.validatePrices(ctx, variant.Prices); err != nil {
			return nil, err
		}
	}

	var templateID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		template, err := txRepo.CreateTemplate(ctx, &models.ProductTemplate{
			Name:          name,
			ListPrice:     listPrice,
			StandardPrice: input.StandardPrice,
			UomID:         input.UomID,
			PurchaseUomID: purchaseUomID,
		})
		if err != nil {
			return err
		}
		templateID = template.ID

		if err := txRepo.ReplacePrices(ctx, enums.ProductKindTemplate, template.ID, buildPrices(enums.ProductKindTemplate, template.ID, input.Prices)); err != nil {
			return err
		}

		for _, v := range input.Variants {
			variant, err := txRepo.CreateVariant(ctx, &models.ProductVariant{
				TemplateID: template.ID,
				Name:       strings.TrimSpace(v.Name),
			})
			if err != nil {
				return err
			}
			if err := txRepo.ReplacePrices(ctx, enums.ProductKindVariant, variant.ID, buildPrices(enums.ProductKindVariant, variant.ID, v.Prices)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, wrapPriceWriteError(err, "create product template")
	}

	return s.GetTemplate(ctx, templateID)
}

func (s *service) GetTemplate(ctx context.Context, id uuid.UUID) (*TemplateDTO, error) {
	template, err := s.repo.FindTemplate(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product template")
	}
	prices, err := s.repo.ListPrices(ctx, enums.ProductKindTemplate, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list template prices")
	}
	dto := templateToDTO(template, prices)
	return &dto, nil
}

func (s *service) CreateVariant(ctx context.Context, templateID uuid.UUID, input CreateVariantInput) (*VariantDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if _, err := s.repo.FindTemplate(ctx, templateID); err != nil {
		return nil, notFoundOr(err, "product template")
	}
	if err := s.validatePrices(ctx, input.Prices); err != nil {
		return nil, err
	}

	var variant *models.ProductVariant
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		created, err := txRepo.CreateVariant(ctx, &models.ProductVariant{TemplateID: templateID, Name: name})
		if err != nil {
			return err
		}
		variant = created
		return txRepo.ReplacePrices(ctx, enums.ProductKindVariant, created.ID, buildPrices(enums.ProductKindVariant, created.ID, input.Prices))
	}); err != nil {
		return nil, wrapPriceWriteError(err, "create product variant")
	}

	prices, err := s.repo.ListPrices(ctx, enums.ProductKindVariant, variant.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list variant prices")
	}
	dto := variantToDTO(variant, prices)
	return &dto, nil
}

// ReplacePrices swaps the product's own price entries.
func (s *service) ReplacePrices(ctx context.Context, kind enums.ProductKind, productID uuid.UUID, prices []PriceInput) (*ProductPricesDTO, error) {
	if _, err := s.LoadPricing(ctx, kind, productID); err != nil {
		return nil, err
	}
	if err := s.validatePrices(ctx, prices); err != nil {
		return nil, err
	}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplacePrices(ctx, kind, productID, buildPrices(kind, productID, prices))
	}); err != nil {
		return nil, wrapPriceWriteError(err, "replace product prices")
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateCatalog(ctx)
	}
	return s.GetPrices(ctx, kind, productID)
}

// GetPrices returns the product's own entries and the effective price per slot.
func (s *service) GetPrices(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (*ProductPricesDTO, error) {
	pricing, err := s.LoadPricing(ctx, kind, productID)
	if err != nil {
		return nil, err
	}
	owned, err := s.repo.ListPrices(ctx, kind, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product prices")
	}

	effective := make([]EffectivePriceDTO, 0, len(owned))
	seen := make(map[uuid.UUID]struct{}, len(owned))
	for _, p := range owned {
		seen[p.PriceNameID] = struct{}{}
		effective = append(effective, EffectivePriceDTO{PriceNameID: p.PriceNameID, Price: p.Price})
	}
	if kind == enums.ProductKindVariant {
		inherited, err := s.repo.ListPrices(ctx, enums.ProductKindTemplate, pricing.Product.TemplateID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list template prices")
		}
		for _, p := range inherited {
			if _, ok := seen[p.PriceNameID]; ok {
				continue
			}
			effective = append(effective, EffectivePriceDTO{PriceNameID: p.PriceNameID, Price: p.Price, Inherited: true})
		}
	}

	return &ProductPricesDTO{
		Kind:      kind.String(),
		ProductID: productID,
		Entries:   pricesToDTO(owned),
		Effective: effective,
	}, nil
}

// LoadPricing assembles the pricing view of a template or variant.
func (s *service) LoadPricing(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (*Pricing, error) {
	switch kind {
	case enums.ProductKindTemplate:
		template, err := s.repo.FindTemplate(ctx, productID)
		if err != nil {
			return nil, notFoundOr(err, "product template")
		}
		templatePrices, err := s.repo.PriceMap(ctx, enums.ProductKindTemplate, template.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template prices")
		}
		return &Pricing{
			Kind:          kind,
			Name:          template.Name,
			ListPrice:     template.ListPrice,
			StandardPrice: template.StandardPrice,
			Product: multiprice.Product{
				ID:             template.ID,
				TemplateID:     template.ID,
				UomID:          template.UomID,
				PurchaseUomID:  template.PurchaseUomID,
				TemplatePrices: templatePrices,
			},
		}, nil
	case enums.ProductKindVariant:
		variant, err := s.repo.FindVariant(ctx, productID)
		if err != nil {
			return nil, notFoundOr(err, "product variant")
		}
		if variant.Template == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "variant template missing")
		}
		variantPrices, err := s.repo.PriceMap(ctx, enums.ProductKindVariant, variant.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant prices")
		}
		templatePrices, err := s.repo.PriceMap(ctx, enums.ProductKindTemplate, variant.TemplateID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template prices")
		}
		return &Pricing{
			Kind:          kind,
			Name:          variant.Name,
			ListPrice:     variant.Template.ListPrice,
			StandardPrice: variant.Template.StandardPrice,
			Product: multiprice.Product{
				ID:             variant.ID,
				TemplateID:     variant.TemplateID,
				IsVariant:      true,
				UomID:          variant.Template.UomID,
				PurchaseUomID:  variant.Template.PurchaseUomID,
				VariantPrices:  variantPrices,
				TemplatePrices: templatePrices,
			},
		}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid product kind %q", kind))
	}
}

// validatePrices enforces one entry per slot, non-negative prices and known slots.
func (s *service) validatePrices(ctx context.Context, prices []PriceInput) error {
	seen := make(map[uuid.UUID]struct{}, len(prices))
	ids := make([]uuid.UUID, 0, len(prices))
	for i, p := range prices {
		if p.PriceNameID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("prices[%d].price_name_id is required", i))
		}
		if p.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("prices[%d].price must be >= 0", i))
		}
		if _, dup := seen[p.PriceNameID]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, "a product can have only one price per price name").
				WithDetails(map[string]any{"price_name_id": p.PriceNameID})
		}
		seen[p.PriceNameID] = struct{}{}
		ids = append(ids, p.PriceNameID)
	}
	if len(ids) == 0 {
		return nil
	}
	count, err := s.repo.CountPriceNames(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check price names")
	}
	if count != int64(len(ids)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown price name")
	}
	return nil
}

// ensureUnits checks both units exist and share a category.
func (s *service) ensureUnits(ctx context.Context, uomID, purchaseUomID uuid.UUID) error {
	if uomID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "uom_id is required")
	}
	unit, err := s.units.FindUnit(ctx, uomID)
	if err != nil {
		return err
	}
	if purchaseUomID == uomID {
		return nil
	}
	purchase, err := s.units.FindUnit(ctx, purchaseUomID)
	if err != nil {
		return err
	}
	if purchase.CategoryID != unit.CategoryID {
		return pkgerrors.New(pkgerrors.CodeUomIncompatible, "purchase unit must share the sale unit category")
	}
	return nil
}

func buildPrices(kind enums.ProductKind, ownerID uuid.UUID, inputs []PriceInput) []models.ProductPrice {
	prices := make([]models.ProductPrice, 0, len(inputs))
	for i, in := range inputs {
		owner := ownerID
		price := models.ProductPrice{
			PriceNameID: in.PriceNameID,
			Price:       in.Price,
			Sequence:    in.Sequence,
		}
		if price.Sequence == 0 {
			price.Sequence = (i + 1) * sequenceStep
		}
		if kind == enums.ProductKindVariant {
			price.VariantID = &owner
		} else {
			price.TemplateID = &owner
		}
		prices = append(prices, price)
	}
	return prices
}

func notFoundOr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}

func wrapPriceWriteError(err error, message string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	if db.IsUniqueViolation(err, "idx_product_prices") {
		return pkgerrors.New(pkgerrors.CodeConflict, "a product can have only one price per price name")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
