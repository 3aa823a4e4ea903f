package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/multiprice-backend/api/middleware"
	"github.com/angelmondragon/multiprice-backend/api/responses"
	"github.com/angelmondragon/multiprice-backend/internal/views"
	"github.com/angelmondragon/multiprice-backend/pkg/logger"
)

type viewResponse struct {
	Model  string        `json:"model"`
	Fields []views.Field `json:"fields"`
}

// ModelView returns the fields of a model visible to the caller's groups.
func ModelView(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		model := strings.TrimSpace(chi.URLParam(r, "model"))
		fields, err := views.FieldsFor(model, middleware.GroupsFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, viewResponse{Model: model, Fields: fields})
	}
}

func ListViews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, views.Models())
	}
}
