package postgres

import "strings"

// likePattern turns a name filter using `*` wildcards into a LIKE pattern.
// LIKE metacharacters in the filter match literally. An empty filter
// matches everything.
func likePattern(filter string) string {
	if filter == "" {
		return "%"
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(filter)
	return strings.ReplaceAll(escaped, "*", "%")
}
