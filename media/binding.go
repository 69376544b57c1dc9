package media

import (
	"strings"

	"pms/list"
)

// Binding describes what a key does.
type Binding struct {
	Keys   []string
	Action string
	Help   string
}

func (b *Binding) Match(pattern string, flags list.MatchFlags) bool {
	fields := append([]string{b.Action, b.Help}, b.Keys...)
	return matchFields(pattern, flags, fields...)
}

func (b *Binding) String() string {
	return strings.Join(b.Keys, ", ") + "\t" + b.Help
}
