package helpers

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Sort directions accepted by list endpoints.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListParams is the parsed sort query of a list endpoint.
type ListParams struct {
	Sort      string
	Direction string
}

// Descending reports whether results are ordered high to low.
func (p ListParams) Descending() bool { return p.Direction == SortDesc }

// ParseListParams reads sort and direction from the query string. Missing
// values fall back to the defaults; unknown keys or values are errors.
func ParseListParams(r *http.Request, sortFields []string, defaultSort, defaultDirection string) (ListParams, error) {
	q := r.URL.Query()
	for key := range q {
		if key != "sort" && key != "direction" {
			return ListParams{}, fmt.Errorf("unknown query parameter %q", key)
		}
	}
	params := ListParams{Sort: defaultSort, Direction: defaultDirection}
	if s := strings.TrimSpace(q.Get("sort")); s != "" {
		if !slices.Contains(sortFields, s) {
			return ListParams{}, fmt.Errorf("sort must be one of %s", strings.Join(sortFields, ", "))
		}
		params.Sort = s
	}
	if d := strings.TrimSpace(q.Get("direction")); d != "" {
		if d != SortAsc && d != SortDesc {
			return ListParams{}, fmt.Errorf("direction must be asc or desc")
		}
		params.Direction = d
	}
	return params, nil
}

// SortList orders items in place with cmp, reversed when params are descending.
func SortList[T any](items []T, params ListParams, cmp func(a, b T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		if params.Descending() {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
}
