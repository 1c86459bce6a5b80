// Package ident provides case-insensitive comparison helpers for Pascal
// identifiers and keywords. Source spelling is always preserved verbatim in
// the AST; normalisation happens only at the point of comparison or
// symbol-table lookup (spec §3: "source text for identifiers is preserved
// verbatim but normalised-case is used for directive-symbol membership").
package ident

import "strings"

// Normalize upper-cases s for use as a lookup key. It does not mutate or
// return the original spelling.
func Normalize(s string) string {
	return strings.ToUpper(s)
}

// Equal reports whether a and b are the same identifier, ignoring case.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Compare is a case-insensitive ordering of a and b, for sorted output.
func Compare(a, b string) int {
	return strings.Compare(Normalize(a), Normalize(b))
}

// Contains reports whether name appears in list, ignoring case.
func Contains(list []string, name string) bool {
	return Index(list, name) >= 0
}

// Index returns the position of name in list (case-insensitive), or -1.
func Index(list []string, name string) int {
	for i, s := range list {
		if Equal(s, name) {
			return i
		}
	}
	return -1
}
