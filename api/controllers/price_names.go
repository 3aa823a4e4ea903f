package controllers

import (
	"net/http"

	"github.com/angelmondragon/multiprice-backend/api/responses"
	"github.com/angelmondragon/multiprice-backend/api/validators"
	product "github.com/angelmondragon/multiprice-backend/internal/products"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
	"github.com/angelmondragon/multiprice-backend/pkg/logger"
)

type createPriceNameRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}

// CreatePriceName registers a named price slot.
func CreatePriceName(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createPriceNameRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		name, err := svc.CreatePriceName(r.Context(), validators.SanitizeString(payload.Name, 128))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, name)
	}
}

// ListPriceNames returns every named price slot.
func ListPriceNames(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		names, err := svc.ListPriceNames(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, names)
	}
}
