package core

import "fmt"

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// CleanOrderings drops the orderings whose field is not in `allowed` and returns `fallback` when none is left.
// allowed maps public field names to DB columns.
func CleanOrderings(orderings []DBOrdering, allowed map[string]string, fallback ...DBOrdering) []DBOrdering {
	cleaned := make([]DBOrdering, 0, len(orderings))
	for _, ord := range orderings {
		if col, ok := allowed[ord.Field]; ok {
			cleaned = append(cleaned, DBOrdering{Field: col, Ascending: ord.Ascending})
		}
	}
	if len(cleaned) == 0 {
		return fallback
	}
	return cleaned
}

// OrderByClause renders orderings as an SQL ORDER BY clause; empty when there is nothing to order by.
func OrderByClause(orderings []DBOrdering) string {
	if len(orderings) == 0 {
		return ""
	}
	clause := " ORDER BY "
	for i, ord := range orderings {
		if i > 0 {
			clause += ", "
		}
		clause += fmt.Sprint(ord)
	}
	return clause
}
