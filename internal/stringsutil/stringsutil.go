// Package stringsutil holds small string helpers with no other home.
package stringsutil

import "strings"

// SplitNonEmpty splits s by sep and returns only non-empty parts.
func SplitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
