package list

import (
	"iter"
)

// Selected reports whether the item at index is selected.
func (l *List) Selected(index int) bool {
	if index < 0 || index >= len(l.entries) {
		return false
	}
	return l.entries[index].selected
}

// SetSelected selects or deselects the item at index. Returns true if the
// selection changed.
func (l *List) SetSelected(index int, state bool) bool {
	if index < 0 || index >= len(l.entries) {
		return false
	}
	e := l.entries[index]
	if e.selected == state {
		return false
	}
	e.selected = state
	l.selectionValid = false
	return true
}

// ToggleSelected flips the selection of the item at index.
func (l *List) ToggleSelected(index int) bool {
	return l.SetSelected(index, !l.Selected(index))
}

// SelectAll sets every item to state and returns how many changed.
func (l *List) SelectAll(state bool) int {
	n := 0
	for i := range l.entries {
		if l.SetSelected(i, state) {
			n++
		}
	}
	return n
}

// Selection iterates over the selected items in list order.
func (l *List) Selection() iter.Seq[Item] {
	l.buildSelection()
	selection := l.selection
	return func(yield func(Item) bool) {
		for _, e := range selection {
			if !yield(e.item) {
				return
			}
		}
	}
}

// SelectionBackward iterates over the selected items in reverse list order.
func (l *List) SelectionBackward() iter.Seq[Item] {
	l.buildSelection()
	selection := l.selection
	return func(yield func(Item) bool) {
		for i := len(selection) - 1; i >= 0; i-- {
			if !yield(selection[i].item) {
				return
			}
		}
	}
}

// SelectionLen returns the number of selected items.
func (l *List) SelectionLen() int {
	l.buildSelection()
	return len(l.selection)
}

// SelectionCacheValid reports whether the selection cache is up to date.
func (l *List) SelectionCacheValid() bool {
	return l.selectionValid
}

func (l *List) buildSelection() {
	if l.selectionValid {
		return
	}
	l.selection = l.selection[:0]
	for _, e := range l.entries {
		if e.selected {
			l.selection = append(l.selection, e)
		}
	}
	l.selectionValid = true
}
