// Package pagination parses the sortBy query convention shared by the list
// endpoints.
package pagination

import "strings"

// Sort is a parsed sortBy parameter.
type Sort struct {
	Field string
	Desc  bool
}

// DefaultSort is applied when sortBy is absent or unparsable.
var DefaultSort = Sort{Field: "createdAt", Desc: true}

// ParseSortBy parses a "field:asc|desc" parameter against a whitelist of
// sortable fields. Unknown fields, unknown directions and empty input all fall
// back to the default of newest first.
func ParseSortBy(sortBy string, allowed map[string]bool) Sort {
	if sortBy == "" {
		return DefaultSort
	}
	parts := strings.SplitN(sortBy, ":", 2)
	field := strings.TrimSpace(parts[0])
	if !allowed[field] {
		return DefaultSort
	}
	sort := Sort{Field: field}
	if len(parts) == 2 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "desc":
			sort.Desc = true
		case "asc":
			sort.Desc = false
		default:
			return DefaultSort
		}
	}
	return sort
}
