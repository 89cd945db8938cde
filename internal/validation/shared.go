package validation

import (
	"maps"
	"slices"
	"strings"
)

// Error collects one message per invalid request field. Handlers send Fields
// as the details of a 400 response.
type Error struct {
	Fields map[string]string
}

// Error joins the messages ordered by field name.
func (e *Error) Error() string {
	fields := slices.Sorted(maps.Keys(e.Fields))
	msgs := make([]string, len(fields))
	for i, field := range fields {
		msgs[i] = field + ": " + e.Fields[field]
	}
	return strings.Join(msgs, "; ")
}
