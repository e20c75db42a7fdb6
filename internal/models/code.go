// internal/models/code.go
package models

import (
	"regexp"
	"strings"
)

// Property codes are exactly six alphanumeric characters, e.g. "AB12CD".
var codePattern = regexp.MustCompile(`^[A-Za-z0-9]{6}$`)

// IsPropertyCode reports whether the query, after trimming surrounding
// whitespace, is a bare property code.
func IsPropertyCode(query string) bool {
	return codePattern.MatchString(strings.TrimSpace(query))
}

// ExtractCodeFromQuery pulls a property code out of a free-text query.
// A query that is itself a code wins; otherwise the first whitespace-separated
// token that looks like a code is used. Returns the code uppercased, or ""
// when the query carries no code.
func ExtractCodeFromQuery(query string) string {
	trimmed := strings.TrimSpace(query)
	if codePattern.MatchString(trimmed) {
		return strings.ToUpper(trimmed)
	}

	for _, token := range strings.Fields(trimmed) {
		if codePattern.MatchString(token) {
			return strings.ToUpper(token)
		}
	}

	return ""
}
