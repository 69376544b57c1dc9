package list

// MatchFlags modify how an Item compares itself against a search pattern.
// The list never interprets them; item implementations define the bits.
type MatchFlags uint

// Item is a single entry in a List.
type Item interface {
	// Match reports whether the item matches pattern under flags.
	Match(pattern string, flags MatchFlags) bool
}

// BaseItem can be embedded by items that are not searchable.
type BaseItem struct{}

// Match never matches.
func (BaseItem) Match(string, MatchFlags) bool {
	return false
}

// Store mirrors removals into whatever backs a list, such as the play queue
// on the server. Remove is called before the item leaves the list; if it
// returns an error the item stays.
type Store interface {
	Remove(item Item) error
}

type entry struct {
	item     Item
	selected bool
}
