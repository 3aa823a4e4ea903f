package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/multiprice-backend/api/responses"
	"github.com/angelmondragon/multiprice-backend/api/validators"
	"github.com/angelmondragon/multiprice-backend/internal/documents"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
	"github.com/angelmondragon/multiprice-backend/pkg/logger"
	"github.com/angelmondragon/multiprice-backend/pkg/pagination"
)

type attachDocumentRequest struct {
	Name string  `json:"name" validate:"required,max=255"`
	Type string  `json:"type" validate:"omitempty,oneof=url binary"`
	URL  *string `json:"url,omitempty" validate:"omitempty,url"`
}

func AttachDocument(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		kind, productID, err := productRef(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload attachDocumentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := documents.AttachInput{
			Name: validators.SanitizeString(payload.Name, 255),
			URL:  payload.URL,
		}
		if t := strings.TrimSpace(payload.Type); t != "" {
			docType, err := enums.ParseDocumentType(t)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid document type"))
				return
			}
			input.Type = docType
		}

		doc, err := svc.Attach(r.Context(), kind, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, doc)
	}
}

func ListDocuments(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		kind, productID, err := productRef(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		docs, err := svc.List(r.Context(), kind, productID, documents.ListParams{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, docs)
	}
}

func CountDocuments(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		kind, productID, err := productRef(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := svc.Count(r.Context(), kind, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, count)
	}
}

// OpenDocumentsAction returns the action descriptor that opens a product's documents.
func OpenDocumentsAction(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		kind, productID, err := productRef(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action, err := svc.OpenDocumentsAction(r.Context(), kind, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, action)
	}
}
