package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/api/responses"
	"github.com/angelmondragon/multiprice-backend/api/validators"
	"github.com/angelmondragon/multiprice-backend/internal/uom"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
	"github.com/angelmondragon/multiprice-backend/pkg/logger"
)

type createUomCategoryRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}

type createUomRequest struct {
	CategoryID uuid.UUID       `json:"category_id" validate:"required"`
	Name       string          `json:"name" validate:"required,max=64"`
	UomType    string          `json:"uom_type" validate:"required,oneof=reference bigger smaller"`
	Ratio      decimal.Decimal `json:"ratio"`
}

func CreateUomCategory(svc uom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "uom service unavailable"))
			return
		}

		var payload createUomCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), uom.CreateCategoryInput{Name: validators.SanitizeString(payload.Name, 128)})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func CreateUom(svc uom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "uom service unavailable"))
			return
		}

		var payload createUomRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		uomType, err := enums.ParseUomType(strings.TrimSpace(payload.UomType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid uom type"))
			return
		}

		unit, err := svc.CreateUnit(r.Context(), uom.CreateUnitInput{
			CategoryID: payload.CategoryID,
			Name:       validators.SanitizeString(payload.Name, 64),
			UomType:    uomType,
			Ratio:      payload.Ratio,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, unit)
	}
}

// ListUoms lists units, optionally filtered by ?category_id=.
func ListUoms(svc uom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "uom service unavailable"))
			return
		}

		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		units, err := svc.ListUnits(r.Context(), categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, units)
	}
}

func ListUomCategories(svc uom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "uom service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}
