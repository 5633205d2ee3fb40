package query

import "strings"

// SortKey is one resolved ordering term
type SortKey struct {
	Field     string
	Column    string
	Ascending bool
}

// sortColumns is the allowlist of sortable fields and their columns
var sortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"height":        "height",
	"weight":        "weight",
	"birthday":      "birthday",
	"nationality":   "nationality",
	"coordinates.x": "coord_x",
	"coordinates.y": "coord_y",
	"location.x":    "location_x",
	"location.y":    "location_y",
	"location.name": "location_name",
}

// DefaultSort orders by ascending id
func DefaultSort() []SortKey {
	return []SortKey{{Field: "id", Column: "id", Ascending: true}}
}

// ResolveSort turns "field,direction" directives into sort keys, keeping
// their order. Directives that do not split into exactly two parts or name
// a field outside the allowlist are dropped. The direction is ascending only
// for "asc" (any case); every other token, including an empty one as in
// "height,", sorts descending. When nothing survives, the result is
// DefaultSort.
func ResolveSort(directives []string) []SortKey {
	var keys []SortKey
	for _, d := range directives {
		parts := strings.Split(d, ",")
		if len(parts) != 2 {
			continue
		}
		field := strings.TrimSpace(parts[0])
		column, ok := sortColumns[field]
		if !ok {
			continue
		}
		keys = append(keys, SortKey{
			Field:     field,
			Column:    column,
			Ascending: strings.EqualFold(strings.TrimSpace(parts[1]), "asc"),
		})
	}
	if len(keys) == 0 {
		return DefaultSort()
	}
	return keys
}

// OrderBy renders keys as an ORDER BY clause. Ascending id is appended as a
// final tie-breaker unless id is already present, so pages never overlap.
func OrderBy(keys []SortKey) string {
	if len(keys) == 0 {
		keys = DefaultSort()
	}
	terms := make([]string, 0, len(keys)+1)
	hasID := false
	for _, k := range keys {
		dir := "DESC"
		if k.Ascending {
			dir = "ASC"
		}
		terms = append(terms, k.Column+" "+dir)
		if k.Column == "id" {
			hasID = true
		}
	}
	if !hasID {
		terms = append(terms, "id ASC")
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}
