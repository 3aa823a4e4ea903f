package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/api/responses"
	"github.com/angelmondragon/multiprice-backend/api/validators"
	product "github.com/angelmondragon/multiprice-backend/internal/products"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
	"github.com/angelmondragon/multiprice-backend/pkg/logger"
)

type priceEntryRequest struct {
	PriceNameID uuid.UUID       `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Sequence    int             `json:"sequence" validate:"omitempty,min=0"`
}

type createVariantRequest struct {
	Name   string              `json:"name" validate:"required,max=255"`
	Prices []priceEntryRequest `json:"price_ids,omitempty" validate:"omitempty,dive"`
}

type createTemplateRequest struct {
	Name          string                 `json:"name" validate:"required,max=255"`
	ListPrice     *decimal.Decimal       `json:"list_price,omitempty"`
	StandardPrice decimal.Decimal        `json:"standard_price"`
	UomID         uuid.UUID              `json:"uom_id" validate:"required"`
	PurchaseUomID *uuid.UUID             `json:"uom_po_id,omitempty"`
	Prices        []priceEntryRequest    `json:"price_ids,omitempty" validate:"omitempty,dive"`
	Variants      []createVariantRequest `json:"variants,omitempty" validate:"omitempty,dive"`
}

type replacePricesRequest struct {
	Prices []priceEntryRequest `json:"price_ids" validate:"dive"`
}

func toPriceInputs(entries []priceEntryRequest) []product.PriceInput {
	if len(entries) == 0 {
		return nil
	}
	out := make([]product.PriceInput, 0, len(entries))
	for _, e := range entries {
		out = append(out, product.PriceInput{
			PriceNameID: e.PriceNameID,
			Price:       e.Price,
			Sequence:    e.Sequence,
		})
	}
	return out
}

func (r createVariantRequest) toInput() product.CreateVariantInput {
	return product.CreateVariantInput{
		Name:   validators.SanitizeString(r.Name, 255),
		Prices: toPriceInputs(r.Prices),
	}
}

func (r createTemplateRequest) toInput() product.CreateTemplateInput {
	variants := make([]product.CreateVariantInput, 0, len(r.Variants))
	for _, v := range r.Variants {
		variants = append(variants, v.toInput())
	}
	return product.CreateTemplateInput{
		Name:          validators.SanitizeString(r.Name, 255),
		ListPrice:     r.ListPrice,
		StandardPrice: r.StandardPrice,
		UomID:         r.UomID,
		PurchaseUomID: r.PurchaseUomID,
		Prices:        toPriceInputs(r.Prices),
		Variants:      variants,
	}
}

// CreateTemplate creates a product template with optional prices and variants.
func CreateTemplate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createTemplateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tmpl, err := svc.CreateTemplate(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, tmpl)
	}
}

func GetTemplate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		templateID, err := validators.ParseURLParamUUID(r, "templateId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tmpl, err := svc.GetTemplate(r.Context(), templateID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tmpl)
	}
}

// CreateVariant adds a variant under the template in the path.
func CreateVariant(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		templateID, err := validators.ParseURLParamUUID(r, "templateId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.CreateVariant(r.Context(), templateID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, variant)
	}
}

// ReplacePrices swaps the full set of price entries of a template or variant.
func ReplacePrices(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		kind, productID, err := productRef(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload replacePricesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prices, err := svc.ReplacePrices(r.Context(), kind, productID, toPriceInputs(payload.Prices))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, prices)
	}
}

func GetPrices(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		kind, productID, err := productRef(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prices, err := svc.GetPrices(r.Context(), kind, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, prices)
	}
}
