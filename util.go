package turing

import "strconv"

// parseNonNegativeInt parses s as a base-10 non-negative integer, rejecting
// any leading sign.
func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}
