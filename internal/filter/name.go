package filter

import (
	"strings"
	"unicode"
)

// normalizeName lowercases, strips punctuation and collapses runs of
// whitespace, so "Doe,  Jane" and "doe jane" compare equal.
func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// nameMatches reports whether the queried name is contained in the
// record's name after normalization, trying the query's token order
// both ways so "Jane Doe" finds a record stored as "Doe, Jane".
func nameMatches(query, recordName string) bool {
	q := normalizeName(query)
	if q == "" {
		return true
	}
	name := normalizeName(recordName)
	if strings.Contains(name, q) {
		return true
	}
	tokens := strings.Fields(q)
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	return strings.Contains(name, strings.Join(tokens, " "))
}

// splitName cuts a queried full name into the first-name token and the
// remainder, the halves pushed upstream as first/last name parameters.
func splitName(fullName string) (first, last string) {
	fields := strings.Fields(strings.TrimSpace(fullName))
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
