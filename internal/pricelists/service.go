package pricelists

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/internal/multiprice"
	product "github.com/angelmondragon/multiprice-backend/internal/products"
	"github.com/angelmondragon/multiprice-backend/internal/uom"
	"github.com/angelmondragon/multiprice-backend/pkg/config"
	"github.com/angelmondragon/multiprice-backend/pkg/db/models"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
	"github.com/angelmondragon/multiprice-backend/pkg/logger"
	"github.com/angelmondragon/multiprice-backend/pkg/metrics"
)

// Service manages pricelists and computes product prices through them.
type Service interface {
	CreatePricelist(ctx context.Context, name string) (*PricelistDTO, error)
	AddItem(ctx context.Context, pricelistID uuid.UUID, input CreateItemInput) (*ItemDTO, error)
	ListItems(ctx context.Context, pricelistID uuid.UUID) ([]ItemDTO, error)
	GetProductsPrice(ctx context.Context, pricelistID uuid.UUID, requests []PriceRequest) ([]PriceResultDTO, error)
}

// CreateItemInput holds the validated payload of a pricelist rule. Empty enum
// fields take the defaults: global scope, fixed price, list_price base.
type CreateItemInput struct {
	Sequence          int
	AppliedOn         enums.AppliedOn
	ProductTemplateID *uuid.UUID
	ProductVariantID  *uuid.UUID
	MinQuantity       decimal.Decimal
	DateStart         *time.Time
	DateEnd           *time.Time
	ComputePrice      enums.ComputePrice
	Base              enums.PricelistBase
	MultiPriceNameID  *uuid.UUID
	FixedPrice        decimal.Decimal
	PercentPrice      decimal.Decimal
	PriceDiscount     decimal.Decimal
	PriceSurcharge    decimal.Decimal
	PriceMinMargin    decimal.Decimal
	PriceMaxMargin    decimal.Decimal
}

// PriceRequest asks for the price of quantity units of a product. A zero
// quantity means 1, a nil UOM means the product UOM, a nil date means today.
type PriceRequest struct {
	Kind      enums.ProductKind
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UomID     *uuid.UUID
	Date      *time.Time
}

type pricingLoader interface {
	LoadPricing(ctx context.Context, kind enums.ProductKind, productID uuid.UUID) (*product.Pricing, error)
}

type converterSource interface {
	Converter(ctx context.Context) (*uom.Converter, error)
}

// ServiceParams wires the pricelist service. Cache and Metrics are optional.
type ServiceParams struct {
	Repo     *Repository
	Products pricingLoader
	Units    converterSource
	Cache    PriceCache
	Metrics  *metrics.PricingMetrics
	Logger   *logger.Logger
	Config   config.PricingConfig
	Now      func() time.Time
}

type service struct {
	repo     *Repository
	products pricingLoader
	units    converterSource
	cache    PriceCache
	metrics  *metrics.PricingMetrics
	logg     *logger.Logger
	cfg      config.PricingConfig
	now      func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("pricelist repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product pricing loader required")
	}
	if params.Units == nil {
		return nil, fmt.Errorf("uom converter source required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		units:    params.Units,
		cache:    params.Cache,
		metrics:  params.Metrics,
		logg:     params.Logger,
		cfg:      params.Config,
		now:      now,
	}, nil
}

func (s *service) CreatePricelist(ctx context.Context, name string) (*PricelistDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	pricelist, err := s.repo.CreatePricelist(ctx, &models.Pricelist{Name: name})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create pricelist")
	}
	dto := pricelistToDTO(pricelist)
	return &dto, nil
}

func (s *service) AddItem(ctx context.Context, pricelistID uuid.UUID, input CreateItemInput) (*ItemDTO, error) {
	if _, err := s.repo.FindPricelist(ctx, pricelistID); err != nil {
		return nil, err
	}
	item, err := s.buildItem(ctx, pricelistID, input)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create pricelist item")
	}
	if s.cache != nil {
		if err := s.cache.InvalidatePricelist(ctx, pricelistID); err != nil {
			s.logg.Error(s.logg.WithPricelistID(ctx, pricelistID.String()), "price cache invalidation failed", err)
		}
	}
	dto := itemToDTO(created)
	return &dto, nil
}

func (s *service) ListItems(ctx context.Context, pricelistID uuid.UUID) ([]ItemDTO, error) {
	if _, err := s.repo.FindPricelist(ctx, pricelistID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, pricelistID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pricelist items")
	}
	sortItems(items)
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, itemToDTO(&items[i]))
	}
	return out, nil
}

// GetProductsPrice prices every request against the pricelist. The first
// failing request aborts the batch.
func (s *service) GetProductsPrice(ctx context.Context, pricelistID uuid.UUID, requests []PriceRequest) ([]PriceResultDTO, error) {
	ctx = s.logg.WithPricelistID(ctx, pricelistID.String())
	if len(requests) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one price request is required")
	}
	if _, err := s.repo.FindPricelist(ctx, pricelistID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, pricelistID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pricelist items")
	}
	sortItems(items)

	converter, err := s.units.Converter(ctx)
	if err != nil {
		return nil, err
	}
	resolver := multiprice.NewResolver(converter)

	results := make([]PriceResultDTO, 0, len(requests))
	for i, req := range requests {
		result, err := s.priceOne(ctx, pricelistID, items, resolver, converter, req)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Details() == nil {
				return nil, typed.WithDetails(map[string]any{"request_index": i})
			}
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

func (s *service) priceOne(
	ctx context.Context,
	pricelistID uuid.UUID,
	items []models.PricelistItem,
	resolver *multiprice.Resolver,
	converter *uom.Converter,
	req PriceRequest,
) (*PriceResultDTO, error) {
	started := time.Now()
	ctx = s.logg.WithProductID(ctx, req.ProductID.String())

	if !req.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "kind must be template or variant")
	}
	qty := req.Quantity
	if qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}
	if qty.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	day := truncateDay(s.now())
	if req.Date != nil {
		day = truncateDay(*req.Date)
	}

	pricing, err := s.products.LoadPricing(ctx, req.Kind, req.ProductID)
	if err != nil {
		return nil, err
	}
	targetUom := pricing.Product.UomID
	if req.UomID != nil && *req.UomID != uuid.Nil {
		targetUom = *req.UomID
	}

	result := &PriceResultDTO{
		Kind:      req.Kind.String(),
		ProductID: req.ProductID,
		Quantity:  qty,
		UomID:     targetUom,
	}

	cacheKey := s.cacheKey(ctx, pricelistID, req.Kind, req.ProductID, qty, targetUom, day)
	if cacheKey != "" {
		if entry, ok := s.cacheGet(ctx, cacheKey); ok {
			result.Price = entry.Price
			result.ItemID = entry.ItemID
			result.Cached = true
			return result, nil
		}
	}

	qtyInProductUom, err := converter.ConvertQuantity(qty, targetUom, pricing.Product.UomID)
	if err != nil {
		return nil, err
	}

	item := selectItem(items, pricing.Product, qtyInProductUom, day)
	var price decimal.Decimal
	base := ""
	if item == nil {
		price, err = resolver.ConvertToPriceUom(pricing.Product, pricing.ListPrice, &targetUom)
		if err != nil {
			s.metrics.ObserveComputation(base, metrics.OutcomeError, time.Since(started))
			return nil, err
		}
		s.metrics.ObserveComputation(base, metrics.OutcomeNoRule, time.Since(started))
	} else {
		base = item.Base.String()
		computeReq := multiprice.ComputeRequest{
			Product:  pricing.Product,
			Quantity: qtyInProductUom,
			UomID:    &targetUom,
			Date:     day,
			Rule:     ruleFromItem(item),
		}
		price, err = resolver.ComputePrice(computeReq, standardPricer(resolver, pricing, item))
		if err != nil {
			s.metrics.ObserveComputation(base, metrics.OutcomeError, time.Since(started))
			return nil, err
		}
		s.metrics.ObserveComputation(base, metrics.OutcomeOK, time.Since(started))
		itemID := item.ID
		result.ItemID = &itemID
	}

	result.Price = price.Round(int32(s.cfg.PriceDigits))
	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, CachedPrice{Price: result.Price, ItemID: result.ItemID}); err != nil {
			s.logg.Warn(ctx, fmt.Sprintf("price cache write failed: %v", err))
		}
	}
	return result, nil
}

// cacheKey returns "" when caching is disabled or the cache is unreachable.
func (s *service) cacheKey(ctx context.Context, pricelistID uuid.UUID, kind enums.ProductKind, productID uuid.UUID, qty decimal.Decimal, uomID uuid.UUID, day time.Time) string {
	if s.cache == nil {
		return ""
	}
	fingerprint := strings.Join([]string{
		kind.String(),
		productID.String(),
		qty.String(),
		uomID.String(),
		day.Format(time.DateOnly),
		fmt.Sprintf("d%d", s.cfg.PriceDigits),
	}, ":")
	key, err := s.cache.Key(ctx, pricelistID, fingerprint)
	if err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("price cache unavailable: %v", err))
		return ""
	}
	return key
}

func (s *service) cacheGet(ctx context.Context, key string) (CachedPrice, bool) {
	entry, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("price cache read failed: %v", err))
		return CachedPrice{}, false
	}
	if ok {
		s.metrics.IncCacheHit()
	} else {
		s.metrics.IncCacheMiss()
	}
	return entry, ok
}

func (s *service) buildItem(ctx context.Context, pricelistID uuid.UUID, input CreateItemInput) (*models.PricelistItem, error) {
	appliedOn := input.AppliedOn
	if appliedOn == "" {
		appliedOn = enums.AppliedOnGlobal
	}
	if !appliedOn.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "applied_on is invalid")
	}
	computePrice := input.ComputePrice
	if computePrice == "" {
		computePrice = enums.ComputePriceFixed
	}
	if !computePrice.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "compute_price is invalid")
	}
	base := input.Base
	if base == "" {
		base = enums.PricelistBaseListPrice
	}
	if !base.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base is invalid")
	}

	item := &models.PricelistItem{
		PricelistID:    pricelistID,
		Sequence:       input.Sequence,
		AppliedOn:      appliedOn,
		MinQuantity:    input.MinQuantity,
		DateStart:      input.DateStart,
		DateEnd:        input.DateEnd,
		ComputePrice:   computePrice,
		Base:           base,
		FixedPrice:     input.FixedPrice,
		PercentPrice:   input.PercentPrice,
		PriceDiscount:  input.PriceDiscount,
		PriceSurcharge: input.PriceSurcharge,
		PriceMinMargin: input.PriceMinMargin,
		PriceMaxMargin: input.PriceMaxMargin,
	}

	switch appliedOn {
	case enums.AppliedOnVariant:
		if input.ProductVariantID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_variant_id is required for variant rules")
		}
		if err := s.ensureExists(ctx, s.repo.VariantExists, *input.ProductVariantID, "product variant"); err != nil {
			return nil, err
		}
		item.ProductVariantID = input.ProductVariantID
	case enums.AppliedOnProduct:
		if input.ProductTemplateID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_template_id is required for product rules")
		}
		if err := s.ensureExists(ctx, s.repo.TemplateExists, *input.ProductTemplateID, "product template"); err != nil {
			return nil, err
		}
		item.ProductTemplateID = input.ProductTemplateID
	}

	if input.MinQuantity.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_quantity must be >= 0")
	}
	if input.DateStart != nil && input.DateEnd != nil && input.DateEnd.Before(*input.DateStart) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date_end must not precede date_start")
	}

	if base == enums.PricelistBaseMultiPrice {
		if input.MultiPriceNameID == nil || *input.MultiPriceNameID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidRule, "multi_price_name_id is required when base is multi_price")
		}
		if err := s.ensureExists(ctx, s.repo.PriceNameExists, *input.MultiPriceNameID, "price name"); err != nil {
			return nil, err
		}
		item.MultiPriceNameID = input.MultiPriceNameID
	}

	if s.cfg.ValidateMargins && !input.PriceMinMargin.IsZero() && !input.PriceMaxMargin.IsZero() &&
		input.PriceMinMargin.GreaterThan(input.PriceMaxMargin) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_min_margin must not exceed price_max_margin")
	}
	return item, nil
}

func (s *service) ensureExists(ctx context.Context, check func(context.Context, uuid.UUID) (bool, error), id uuid.UUID, entity string) error {
	ok, err := check(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return nil
}
