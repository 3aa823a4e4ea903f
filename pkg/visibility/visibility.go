package visibility

import (
	"strings"

	pkgerrors "github.com/angelmondragon/multiprice-backend/pkg/errors"
)

// GroupShowMultiPrices unlocks the named price slots on product views.
const GroupShowMultiPrices = "group_show_multi_prices"

// HasGroup reports whether groups contains required. An empty requirement is
// always satisfied.
func HasGroup(groups []string, required string) bool {
	required = normalizeGroup(required)
	if required == "" {
		return true
	}
	for _, group := range groups {
		if normalizeGroup(group) == required {
			return true
		}
	}
	return false
}

// EnsureGroup returns a FORBIDDEN error when groups lacks required.
func EnsureGroup(groups []string, required string) error {
	if HasGroup(groups, required) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions")
}

func normalizeGroup(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if idx := strings.LastIndex(value, "."); idx >= 0 {
		value = value[idx+1:]
	}
	return value
}
