package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Ordering is one "?ordering=" term: a field name and a direction.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// ParseOrderings parses a comma separated list of fields, "-" prefixed for descending order.
func ParseOrderings(s string) []Ordering {
	var orderings []Ordering
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		orderings = append(orderings, Ordering{Field: field, Ascending: !descending})
	}
	return orderings
}
