package asset

import "strings"

// matchesSearch does a case-insensitive substring match across the asset's
// identifying attributes.
func matchesSearch(a *Asset, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	for _, haystack := range []string{a.Name(), a.Code(), a.IP(), a.Hostname()} {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}
