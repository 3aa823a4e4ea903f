package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/api/responses"
	"github.com/angelmondragon/multiprice-backend/api/validators"
	"github.com/angelmondragon/multiprice-backend/internal/pricelists"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
	"github.com/angelmondragon/multiprice-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

type createPricelistRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type createItemRequest struct {
	Sequence          int             `json:"sequence" validate:"omitempty,min=0"`
	AppliedOn         string          `json:"applied_on" validate:"omitempty,oneof=3_global 1_product 0_product_variant"`
	ProductTemplateID *string         `json:"product_template_id,omitempty"`
	ProductVariantID  *string         `json:"product_variant_id,omitempty"`
	MinQuantity       decimal.Decimal `json:"min_quantity"`
	DateStart         *string         `json:"date_start,omitempty"`
	DateEnd           *string         `json:"date_end,omitempty"`
	ComputePrice      string          `json:"compute_price" validate:"omitempty,oneof=fixed percentage formula"`
	Base              string          `json:"base" validate:"omitempty,oneof=list_price standard_price multi_price"`
	MultiPriceNameID  *string         `json:"multi_price_name_id,omitempty"`
	FixedPrice        decimal.Decimal `json:"fixed_price"`
	PercentPrice      decimal.Decimal `json:"percent_price"`
	PriceDiscount     decimal.Decimal `json:"price_discount"`
	PriceSurcharge    decimal.Decimal `json:"price_surcharge"`
	PriceMinMargin    decimal.Decimal `json:"price_min_margin"`
	PriceMaxMargin    decimal.Decimal `json:"price_max_margin"`
}

type priceLineRequest struct {
	Kind      string          `json:"kind" validate:"required,oneof=template variant"`
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UomID     *uuid.UUID      `json:"uom_id,omitempty"`
	Date      *string         `json:"date,omitempty"`
}

type productsPriceRequest struct {
	Lines []priceLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func parseDate(raw *string, field string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value, err := time.Parse(dateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field).WithDetails(map[string]any{"field": field, "layout": dateLayout})
	}
	return &value, nil
}

func (r createItemRequest) toInput() (pricelists.CreateItemInput, error) {
	var (
		input pricelists.CreateItemInput
		err   error
	)
	input.Sequence = r.Sequence
	input.MinQuantity = r.MinQuantity
	input.FixedPrice = r.FixedPrice
	input.PercentPrice = r.PercentPrice
	input.PriceDiscount = r.PriceDiscount
	input.PriceSurcharge = r.PriceSurcharge
	input.PriceMinMargin = r.PriceMinMargin
	input.PriceMaxMargin = r.PriceMaxMargin

	if r.AppliedOn != "" {
		if input.AppliedOn, err = enums.ParseAppliedOn(r.AppliedOn); err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid applied_on")
		}
	}
	if r.ComputePrice != "" {
		if input.ComputePrice, err = enums.ParseComputePrice(r.ComputePrice); err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid compute_price")
		}
	}
	if r.Base != "" {
		if input.Base, err = enums.ParsePricelistBase(r.Base); err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid base")
		}
	}
	if input.ProductTemplateID, err = parseOptionalUUID(r.ProductTemplateID, "product_template_id"); err != nil {
		return input, err
	}
	if input.ProductVariantID, err = parseOptionalUUID(r.ProductVariantID, "product_variant_id"); err != nil {
		return input, err
	}
	if input.MultiPriceNameID, err = parseOptionalUUID(r.MultiPriceNameID, "multi_price_name_id"); err != nil {
		return input, err
	}
	if input.DateStart, err = parseDate(r.DateStart, "date_start"); err != nil {
		return input, err
	}
	if input.DateEnd, err = parseDate(r.DateEnd, "date_end"); err != nil {
		return input, err
	}
	return input, nil
}

func CreatePricelist(svc pricelists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricelist service unavailable"))
			return
		}

		var payload createPricelistRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pl, err := svc.CreatePricelist(r.Context(), validators.SanitizeString(payload.Name, 255))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, pl)
	}
}

// AddPricelistItem appends a rule to the pricelist in the path.
func AddPricelistItem(svc pricelists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricelist service unavailable"))
			return
		}

		pricelistID, err := validators.ParseURLParamUUID(r, "pricelistId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.AddItem(r.Context(), pricelistID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func ListPricelistItems(svc pricelists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricelist service unavailable"))
			return
		}

		pricelistID, err := validators.ParseURLParamUUID(r, "pricelistId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListItems(r.Context(), pricelistID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// ProductsPrice computes prices for a batch of product lines.
func ProductsPrice(svc pricelists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricelist service unavailable"))
			return
		}

		pricelistID, err := validators.ParseURLParamUUID(r, "pricelistId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productsPriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requests := make([]pricelists.PriceRequest, 0, len(payload.Lines))
		for _, line := range payload.Lines {
			kind, err := enums.ParseProductKind(line.Kind)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product kind"))
				return
			}
			date, err := parseDate(line.Date, "date")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			requests = append(requests, pricelists.PriceRequest{
				Kind:      kind,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UomID:     line.UomID,
				Date:      date,
			})
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithPricelistID(ctx, pricelistID.String())
		}

		prices, err := svc.GetProductsPrice(ctx, pricelistID, requests)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, prices)
	}
}
