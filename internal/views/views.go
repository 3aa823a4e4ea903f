package views

import (
	"sort"

	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
	"github.com/angelmondragon/multiprice-backend/pkg/visibility"
)

// FieldsFor returns the fields of model visible to a user holding groups.
func FieldsFor(model string, groups []string) ([]Field, error) {
	fields, ok := catalog[model]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "view not found")
	}
	out := make([]Field, 0, len(fields))
	for _, field := range fields {
		if !visibility.HasGroup(groups, field.group) {
			continue
		}
		out = append(out, field)
	}
	return out, nil
}

// Models lists the models with a view, sorted.
func Models() []string {
	out := make([]string, 0, len(catalog))
	for model := range catalog {
		out = append(out, model)
	}
	sort.Strings(out)
	return out
}
