package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/multiprice-backend/api/validators"
	"github.com/angelmondragon/multiprice-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
)

func productRef(r *http.Request) (enums.ProductKind, uuid.UUID, error) {
	kind, err := enums.ParseProductKind(strings.TrimSpace(chi.URLParam(r, "kind")))
	if err != nil {
		return "", uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product kind")
	}
	id, err := validators.ParseURLParamUUID(r, "productId")
	if err != nil {
		return "", uuid.Nil, err
	}
	return kind, id, nil
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field).WithDetails(map[string]any{"field": field})
	}
	return &id, nil
}
