package media

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"pms/list"
)

// Search flags understood by every item in this package. Without flags a
// pattern matches any field containing it, ignoring case.
const (
	MatchCaseSensitive list.MatchFlags = 1 << iota
	// MatchExact requires a whole field to equal the pattern.
	MatchExact
	// MatchFuzzy matches fields containing the pattern's characters in
	// order.
	MatchFuzzy
)

func matchFields(pattern string, flags list.MatchFlags, fields ...string) bool {
	if pattern == "" {
		return false
	}
	if flags&MatchFuzzy != 0 {
		return len(fuzzy.Find(pattern, fields)) > 0
	}

	fold := flags&MatchCaseSensitive == 0
	if fold {
		pattern = strings.ToLower(pattern)
	}
	for _, field := range fields {
		if fold {
			field = strings.ToLower(field)
		}
		if flags&MatchExact != 0 {
			if field == pattern {
				return true
			}
		} else if strings.Contains(field, pattern) {
			return true
		}
	}
	return false
}
