package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/codedaily/core"
)

const orderingParam = "ordering"

// Ordering binds `?ordering=-score,id` to DB orderings.
// Fields outside Allowed are dropped and a repeated field keeps its first direction.
type Ordering struct {
	Allowed   []string
	Orderings []core.DBOrdering
}

func newOrdering(allowed ...string) *Ordering {
	return &Ordering{Allowed: allowed}
}

func (ord *Ordering) allows(field string) bool {
	for _, f := range ord.Allowed {
		if f == field {
			return true
		}
	}
	return false
}

func (ord *Ordering) Bind(ctx echo.Context) {
	raw := strings.TrimSpace(ctx.QueryParam(orderingParam))
	if raw == "" {
		return
	}

	seen := make(map[string]bool)
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		if field == "" || seen[field] || !ord.allows(field) {
			continue
		}
		seen[field] = true
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}
