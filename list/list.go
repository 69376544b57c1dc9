package list

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"pms/viewport"
)

// NoCursor is the cursor position of an empty list.
const NoCursor = -1

// ErrFull is returned by Add when the list has reached its limit.
var ErrFull = errors.New("list is full")

// ScrollMode controls how the cursor and the viewport follow each other.
type ScrollMode int

const (
	// ScrollNormal moves the viewport only as far as needed to keep the
	// cursor visible.
	ScrollNormal ScrollMode = iota
	// ScrollCentered keeps the cursor on the middle row of the viewport.
	ScrollCentered
)

// List is an ordered collection of items with a cursor, a viewport and a
// selection.
//
// A List is not safe for concurrent use. Items and indices obtained from a
// List must not be kept across a call that adds or removes items.
type List struct {
	entries []*entry

	// selection caches the selected entries in list order. It is rebuilt
	// on the first read after selectionValid is cleared.
	selection      []*entry
	selectionValid bool

	cursor int
	window viewport.Window
	title  string
	limit  int
	store  Store
	mode   ScrollMode
}

// Option configures a List.
type Option func(*List)

// WithHeight binds the list to a viewport of h rows.
func WithHeight(h int) Option {
	return func(l *List) {
		l.window.Height = h
	}
}

func WithTitle(title string) Option {
	return func(l *List) {
		l.title = title
	}
}

// WithLimit caps the number of items. Zero means no limit.
func WithLimit(n int) Option {
	return func(l *List) {
		l.limit = n
	}
}

// WithStore makes Remove propagate to s.
func WithStore(s Store) Option {
	return func(l *List) {
		l.store = s
	}
}

func WithScrollMode(mode ScrollMode) Option {
	return func(l *List) {
		l.mode = mode
	}
}

// New creates an empty list.
func New(opts ...Option) *List {
	l := &List{
		cursor:         NoCursor,
		selectionValid: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add appends an unselected item.
func (l *List) Add(item Item) error {
	if l.limit > 0 && len(l.entries) >= l.limit {
		return fmt.Errorf("%w: limit is %d", ErrFull, l.limit)
	}
	l.entries = append(l.entries, &entry{item: item})
	l.window.Lines = len(l.entries)
	if l.cursor == NoCursor {
		l.cursor = 0
	}
	return nil
}

// Clear drops every item.
func (l *List) Clear() {
	clear(l.entries)
	l.entries = l.entries[:0]
	l.selection = nil
	l.selectionValid = false
	l.cursor = NoCursor
	l.window.Lines = 0
	l.window.Position = 0
}

// Remove removes the item at index, first removing it from the list's
// store if it has one. Returns false if index is out of range.
func (l *List) Remove(index int) (bool, error) {
	item := l.Item(index)
	if item == nil {
		return false, nil
	}
	if l.store != nil {
		if err := l.store.Remove(item); err != nil {
			return false, err
		}
	}
	return l.RemoveLocal(index), nil
}

// RemoveLocal removes the item at index from the list only. A cursor at or
// after index moves up by one.
func (l *List) RemoveLocal(index int) bool {
	if index < 0 || index >= len(l.entries) {
		return false
	}
	l.entries = slices.Delete(l.entries, index, index+1)
	l.window.Lines = len(l.entries)
	l.selectionValid = false

	if len(l.entries) == 0 {
		l.cursor = NoCursor
	} else {
		if l.cursor >= index {
			l.cursor--
		}
		l.cursor = clamp(l.cursor, 0, len(l.entries)-1)
	}
	l.window.Clamp()
	return true
}

// CropToSelection removes every item that is not selected and moves the
// cursor to the top. Returns false without doing anything if nothing is
// selected or everything is.
func (l *List) CropToSelection() (bool, error) {
	l.buildSelection()
	n := len(l.selection)
	if n == 0 || n == len(l.entries) {
		return false, nil
	}

	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].selected {
			continue
		}
		if _, err := l.Remove(i); err != nil {
			l.cursor = clamp(l.cursor, 0, len(l.entries)-1)
			return false, fmt.Errorf("crop to selection: %w", err)
		}
	}

	l.cursor = 0
	l.window.Clamp()
	l.selection = append(l.selection[:0], l.entries...)
	l.selectionValid = true
	return true, nil
}

// RemoveSelection removes every selected item. Returns false if nothing is
// selected.
func (l *List) RemoveSelection() (bool, error) {
	l.buildSelection()
	if len(l.selection) == 0 {
		return false, nil
	}

	snapshot := slices.Clone(l.selection)
	pos := len(l.entries) - 1
	for _, e := range slices.Backward(snapshot) {
		for pos >= 0 && l.entries[pos] != e {
			pos--
		}
		if pos < 0 {
			break
		}
		if _, err := l.Remove(pos); err != nil {
			return true, fmt.Errorf("remove selection: %w", err)
		}
		pos--
	}

	l.selection = l.selection[:0]
	l.selectionValid = true
	return true, nil
}

// Match returns the first item in [from, to) that matches pattern, and its
// index. It returns nil and -1 if there is none.
func (l *List) Match(pattern string, from, to int, flags MatchFlags) (Item, int) {
	from = max(from, 0)
	to = min(to, len(l.entries))
	for i := from; i < to; i++ {
		if item := l.entries[i].item; item.Match(pattern, flags) {
			return item, i
		}
	}
	return nil, -1
}

// MatchWrapAround searches from the item after from to the end of the list,
// then wraps and searches from the top up to and including from itself.
func (l *List) MatchWrapAround(pattern string, from int, flags MatchFlags) (Item, int) {
	if item, i := l.Match(pattern, from+1, len(l.entries), flags); item != nil {
		return item, i
	}
	return l.Match(pattern, 0, from+1, flags)
}

// TopPosition returns the index of the first visible item.
func (l *List) TopPosition() int {
	return l.window.Position
}

// BottomPosition returns the index of the last visible item.
func (l *List) BottomPosition() int {
	return l.window.Bottom()
}

func (l *List) MinTopPosition() int {
	return l.window.MinPosition()
}

func (l *List) MaxTopPosition() int {
	return l.window.MaxPosition()
}

// ScrollWindow scrolls the viewport by delta rows. Returns false if the
// viewport did not move.
func (l *List) ScrollWindow(delta int) bool {
	old := l.window.Position
	l.window.Scroll(delta)
	return l.window.Position != old
}

// SetViewportPosition moves the top of the viewport to position. Returns
// false if position was out of range and had to be clamped.
func (l *List) SetViewportPosition(position int) bool {
	return l.window.SetPosition(position)
}

// MoveCursor moves the cursor by delta. Returns false if the target was out
// of range and had to be clamped.
func (l *List) MoveCursor(delta int) bool {
	if len(l.entries) == 0 {
		return false
	}
	return l.SetCursor(l.cursor + delta)
}

// SetCursor moves the cursor to position. Returns false if position was out
// of range and had to be clamped.
func (l *List) SetCursor(position int) bool {
	if len(l.entries) == 0 {
		return false
	}
	l.cursor = clamp(position, 0, len(l.entries)-1)
	return l.cursor == position
}

// AdjustCursorToViewport brings the cursor back into the viewport. Returns
// true if the cursor moved.
func (l *List) AdjustCursorToViewport() bool {
	if len(l.entries) == 0 || l.window.Height <= 0 {
		return false
	}

	target := l.cursor
	switch l.mode {
	case ScrollCentered:
		target = min(l.window.Position+l.window.Height/2, len(l.entries)-1)
	default:
		if target < l.window.Position {
			target = l.window.Position
		} else if bottom := l.window.Bottom(); target > bottom {
			target = bottom
		}
	}

	if target == l.cursor {
		return false
	}
	l.cursor = target
	return true
}

// AdjustViewportToCursor scrolls the viewport until the cursor is visible.
// Returns true if the viewport moved.
func (l *List) AdjustViewportToCursor() bool {
	if len(l.entries) == 0 || l.window.Height <= 0 {
		return false
	}

	old := l.window.Position
	switch l.mode {
	case ScrollCentered:
		l.window.SetPosition(l.cursor - l.window.Height/2)
	default:
		if l.cursor < l.window.Position {
			l.window.SetPosition(l.cursor)
		} else if l.cursor > l.window.Bottom() {
			l.window.SetPosition(l.cursor - l.window.Height + 1)
		}
	}
	return l.window.Position != old
}

// Cursor returns the cursor position, or NoCursor if the list is empty.
func (l *List) Cursor() int {
	return l.cursor
}

// CursorItem returns the item under the cursor, or nil.
func (l *List) CursorItem() Item {
	return l.Item(l.cursor)
}

// Item returns the item at index, or nil if index is out of range.
func (l *List) Item(index int) Item {
	if index < 0 || index >= len(l.entries) {
		return nil
	}
	return l.entries[index].item
}

func (l *List) First() Item {
	return l.Item(0)
}

func (l *List) Last() Item {
	return l.Item(len(l.entries) - 1)
}

// All iterates over every item and its index.
func (l *List) All() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		for i, e := range l.entries {
			if !yield(i, e.item) {
				return
			}
		}
	}
}

func (l *List) Size() int {
	return len(l.entries)
}

func (l *List) Title() string {
	return l.title
}

func (l *List) SetTitle(title string) {
	l.title = title
}

// Height returns the number of rows in the viewport.
func (l *List) Height() int {
	return l.window.Height
}

// SetHeight rebinds the list to a viewport of h rows.
func (l *List) SetHeight(h int) {
	l.window.Height = h
	l.window.Clamp()
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
