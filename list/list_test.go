package list

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type word string

func (w word) Match(pattern string, _ MatchFlags) bool {
	return strings.Contains(string(w), pattern)
}

// recorder records the order in which items are tested.
type recorder struct {
	index int
	hit   bool
	calls *[]int
}

func (p recorder) Match(string, MatchFlags) bool {
	*p.calls = append(*p.calls, p.index)
	return p.hit
}

type fakeStore struct {
	removed []Item
	fail    Item
}

func (s *fakeStore) Remove(item Item) error {
	if item == s.fail {
		return errors.New("rejected")
	}
	s.removed = append(s.removed, item)
	return nil
}

func newWordList(t *testing.T, height int, words ...string) *List {
	t.Helper()
	l := New(WithHeight(height))
	for _, w := range words {
		require.NoError(t, l.Add(word(w)))
	}
	return l
}

func contents(l *List) []string {
	var out []string
	for _, item := range l.All() {
		out = append(out, string(item.(word)))
	}
	return out
}

func selected(l *List) []string {
	var out []string
	for item := range l.Selection() {
		out = append(out, string(item.(word)))
	}
	return out
}

func assertViewportInvariant(t *testing.T, l *List) {
	t.Helper()
	assert.LessOrEqual(t, l.MinTopPosition(), l.TopPosition())
	assert.LessOrEqual(t, l.TopPosition(), l.MaxTopPosition())
}

func TestList_Empty(t *testing.T) {
	l := New(WithHeight(3), WithTitle("Queue"))

	assert.Equal(t, 0, l.Size())
	assert.Equal(t, NoCursor, l.Cursor())
	assert.Nil(t, l.CursorItem())
	assert.Nil(t, l.Item(0))
	assert.Nil(t, l.First())
	assert.Nil(t, l.Last())
	assert.False(t, l.SetCursor(0))
	assert.False(t, l.MoveCursor(1))
	assert.False(t, l.AdjustViewportToCursor())
	assert.False(t, l.AdjustCursorToViewport())
	assert.Equal(t, "Queue", l.Title())
	assertViewportInvariant(t, l)
}

func TestList_AddAndClear(t *testing.T) {
	l := newWordList(t, 3, "a", "b", "c")

	assert.Equal(t, 3, l.Size())
	assert.Equal(t, 0, l.Cursor())
	assert.Equal(t, word("b"), l.Item(1))
	assert.Equal(t, word("c"), l.Last())
	assert.Nil(t, l.Item(-1))
	assert.Nil(t, l.Item(3))

	l.SetSelected(1, true)
	l.ScrollWindow(1)
	l.Clear()

	assert.Equal(t, 0, l.Size())
	assert.Equal(t, NoCursor, l.Cursor())
	assert.Equal(t, 0, l.TopPosition())
	assert.False(t, l.SelectionCacheValid())
	assert.Empty(t, selected(l))
}

func TestList_AddLimit(t *testing.T) {
	l := New(WithLimit(2))
	require.NoError(t, l.Add(word("a")))
	require.NoError(t, l.Add(word("b")))

	err := l.Add(word("c"))
	assert.ErrorIs(t, err, ErrFull)
	assert.Equal(t, 2, l.Size())
}

func TestList_AddKeepsValidCache(t *testing.T) {
	l := newWordList(t, 3, "a", "b")
	l.SetSelected(0, true)
	assert.Equal(t, []string{"a"}, selected(l))
	assert.True(t, l.SelectionCacheValid())

	require.NoError(t, l.Add(word("c")))
	assert.True(t, l.SelectionCacheValid())
	assert.Equal(t, []string{"a"}, selected(l))
}

func TestList_MaxTopPosition(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e", "f", "g"}
	l := newWordList(t, 3, words...)

	assert.Equal(t, len(words)-3, l.MaxTopPosition())
	assert.True(t, l.ScrollWindow(10))
	assert.Equal(t, 4, l.TopPosition())
	assert.False(t, l.ScrollWindow(1))
	assert.Equal(t, 4, l.TopPosition())
	assertViewportInvariant(t, l)
}

func TestList_ScrollWindowZero(t *testing.T) {
	l := newWordList(t, 3, "a", "b", "c", "d", "e")
	l.SetViewportPosition(1)

	assert.False(t, l.ScrollWindow(0))
	assert.Equal(t, 1, l.TopPosition())
}

func TestList_SetViewportPosition(t *testing.T) {
	tests := []struct {
		name     string
		position int
		want     bool
		wantTop  int
	}{
		{name: "in range", position: 2, want: true, wantTop: 2},
		{name: "top", position: 0, want: true, wantTop: 0},
		{name: "below range", position: -3, want: false, wantTop: 0},
		{name: "above range", position: 9, want: false, wantTop: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newWordList(t, 3, "a", "b", "c", "d", "e")
			assert.Equal(t, tt.want, l.SetViewportPosition(tt.position))
			assert.Equal(t, tt.wantTop, l.TopPosition())
			assertViewportInvariant(t, l)
		})
	}
}

func TestList_SetCursor(t *testing.T) {
	tests := []struct {
		name       string
		position   int
		want       bool
		wantCursor int
	}{
		{name: "in range", position: 3, want: true, wantCursor: 3},
		{name: "negative", position: -1, want: false, wantCursor: 0},
		{name: "past the end", position: 7, want: false, wantCursor: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newWordList(t, 3, "a", "b", "c", "d", "e")
			assert.Equal(t, tt.want, l.SetCursor(tt.position))
			assert.Equal(t, tt.wantCursor, l.Cursor())
		})
	}
}

func TestList_MoveCursor(t *testing.T) {
	l := newWordList(t, 3, "a", "b", "c", "d", "e")

	assert.True(t, l.MoveCursor(2))
	assert.Equal(t, 2, l.Cursor())
	assert.False(t, l.MoveCursor(5))
	assert.Equal(t, 4, l.Cursor())
	assert.True(t, l.MoveCursor(-4))
	assert.Equal(t, word("a"), l.CursorItem())
}

func TestList_CursorAndViewportScenario(t *testing.T) {
	l := newWordList(t, 3, "a", "b", "c", "d", "e")
	require.Equal(t, 0, l.TopPosition())

	assert.True(t, l.SetCursor(4))
	assert.Equal(t, 4, l.Cursor())

	assert.True(t, l.AdjustViewportToCursor())
	assert.Equal(t, 2, l.TopPosition())
	assert.Equal(t, 4, l.BottomPosition())

	assert.True(t, l.ScrollWindow(-5))
	assert.Equal(t, 0, l.TopPosition())
	assertViewportInvariant(t, l)
}

func TestList_AdjustViewportToCursorUpwards(t *testing.T) {
	l := newWordList(t, 3, "a", "b", "c", "d", "e", "f")
	l.SetViewportPosition(3)
	l.SetCursor(1)

	assert.True(t, l.AdjustViewportToCursor())
	assert.Equal(t, 1, l.TopPosition())
	assert.False(t, l.AdjustViewportToCursor())
}

func TestList_AdjustCursorToViewport(t *testing.T) {
	l := newWordList(t, 3, "a", "b", "c", "d", "e", "f")

	assert.False(t, l.AdjustCursorToViewport())

	l.ScrollWindow(3)
	assert.True(t, l.AdjustCursorToViewport())
	assert.Equal(t, 3, l.Cursor())

	l.SetCursor(3)
	l.ScrollWindow(-3)
	assert.True(t, l.AdjustCursorToViewport())
	assert.Equal(t, 2, l.Cursor())
}

func TestList_CenteredScrollMode(t *testing.T) {
	l := New(WithHeight(3), WithScrollMode(ScrollCentered))
	for _, w := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		require.NoError(t, l.Add(word(w)))
	}

	l.SetCursor(4)
	assert.True(t, l.AdjustViewportToCursor())
	assert.Equal(t, 3, l.TopPosition())

	l.SetCursor(0)
	assert.True(t, l.AdjustViewportToCursor())
	assert.Equal(t, 0, l.TopPosition())

	l.ScrollWindow(2)
	assert.True(t, l.AdjustCursorToViewport())
	assert.Equal(t, 3, l.Cursor())
}

func TestList_SelectionCache(t *testing.T) {
	l := newWordList(t, 3, "a", "b", "c", "d", "e")
	assert.Empty(t, selected(l))

	assert.True(t, l.SetSelected(3, true))
	assert.False(t, l.SelectionCacheValid())
	assert.True(t, l.SetSelected(1, true))
	assert.True(t, l.SetSelected(4, true))
	assert.True(t, l.SetSelected(4, false))

	assert.Equal(t, []string{"b", "d"}, selected(l))
	assert.True(t, l.SelectionCacheValid())

	assert.False(t, l.SetSelected(1, true))
	assert.True(t, l.SelectionCacheValid())

	assert.True(t, l.ToggleSelected(0))
	assert.True(t, l.ToggleSelected(3))
	assert.False(t, l.SetSelected(9, true))
	assert.Equal(t, []string{"a", "b"}, selected(l))

	var backward []string
	for item := range l.SelectionBackward() {
		backward = append(backward, string(item.(word)))
	}
	assert.Equal(t, []string{"b", "a"}, backward)
	assert.Equal(t, 2, l.SelectionLen())

	assert.Equal(t, 3, l.SelectAll(true))
	assert.Equal(t, 5, l.SelectionLen())
}

func TestList_SelectionMatchesFlags(t *testing.T) {
	l := newWordList(t, 3, "a", "b", "c", "d", "e", "f", "g", "h")
	toggles := []int{0, 5, 2, 5, 7, 0, 3, 3, 3, 6}

	for n, i := range toggles {
		l.ToggleSelected(i)
		if n%3 != 0 {
			continue
		}
		var want []string
		for j, item := range l.All() {
			if l.Selected(j) {
				want = append(want, string(item.(word)))
			}
		}
		assert.Equal(t, want, selected(l))
	}
}

func TestList_RemoveLocal(t *testing.T) {
	tests := []struct {
		name       string
		cursor     int
		remove     int
		wantCursor int
	}{
		{name: "before cursor", cursor: 3, remove: 1, wantCursor: 2},
		{name: "at cursor", cursor: 2, remove: 2, wantCursor: 1},
		{name: "after cursor", cursor: 1, remove: 3, wantCursor: 1},
		{name: "first item under cursor", cursor: 0, remove: 0, wantCursor: 0},
		{name: "last item under cursor", cursor: 4, remove: 4, wantCursor: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newWordList(t, 3, "a", "b", "c", "d", "e")
			l.SetCursor(tt.cursor)

			assert.True(t, l.RemoveLocal(tt.remove))
			assert.Equal(t, 4, l.Size())
			assert.Equal(t, tt.wantCursor, l.Cursor())
			assert.False(t, l.SelectionCacheValid())
		})
	}
}

func TestList_RemoveLocalBounds(t *testing.T) {
	l := newWordList(t, 3, "a")
	assert.False(t, l.RemoveLocal(1))
	assert.False(t, l.RemoveLocal(-1))

	assert.True(t, l.RemoveLocal(0))
	assert.Equal(t, NoCursor, l.Cursor())
}

func TestList_RemoveLocalClampsViewport(t *testing.T) {
	l := newWordList(t, 3, "a", "b", "c", "d", "e")
	l.ScrollWindow(2)

	l.RemoveLocal(0)
	assert.Equal(t, 1, l.TopPosition())
	assertViewportInvariant(t, l)
}

func TestList_RemoveWithStore(t *testing.T) {
	store := &fakeStore{fail: word("c")}
	l := New(WithStore(store))
	for _, w := range []string{"a", "b", "c"} {
		require.NoError(t, l.Add(word(w)))
	}

	ok, err := l.Remove(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []Item{word("b")}, store.removed)

	ok, err = l.Remove(1)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "c"}, contents(l))

	ok, err = l.Remove(5)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestList_CropToSelection(t *testing.T) {
	t.Run("empty selection", func(t *testing.T) {
		l := newWordList(t, 3, "a", "b", "c")
		ok, err := l.CropToSelection()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 3, l.Size())
	})

	t.Run("whole list selected", func(t *testing.T) {
		l := newWordList(t, 3, "a", "b", "c")
		l.SelectAll(true)
		ok, err := l.CropToSelection()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 3, l.Size())
	})

	t.Run("proper subset", func(t *testing.T) {
		l := newWordList(t, 3, "a", "b", "c", "d", "e")
		l.SetSelected(1, true)
		l.SetSelected(4, true)
		l.SetCursor(3)

		ok, err := l.CropToSelection()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"b", "e"}, contents(l))
		assert.Equal(t, 0, l.Cursor())
		for i := range l.Size() {
			assert.True(t, l.Selected(i))
		}
		assert.Equal(t, []string{"b", "e"}, selected(l))
		assertViewportInvariant(t, l)
	})
}

func TestList_RemoveSelection(t *testing.T) {
	l := newWordList(t, 3, "a", "b", "c", "d", "e")

	ok, err := l.RemoveSelection()
	require.NoError(t, err)
	assert.False(t, ok)

	l.SetSelected(1, true)
	l.SetSelected(3, true)

	ok, err = l.RemoveSelection()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, l.Size())
	assert.Equal(t, []string{"a", "c", "e"}, contents(l))
	assert.True(t, l.SelectionCacheValid())
	assert.Equal(t, 0, l.SelectionLen())
}

func TestList_RemoveSelectionDuplicates(t *testing.T) {
	l := newWordList(t, 3, "x", "y", "x", "x")
	l.SetSelected(2, true)

	ok, err := l.RemoveSelection()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "y", "x"}, contents(l))
	assert.False(t, slices.ContainsFunc([]int{0, 1, 2}, l.Selected))
}

func TestList_RemoveSelectionStoreFailure(t *testing.T) {
	store := &fakeStore{fail: word("b")}
	l := New(WithStore(store))
	for _, w := range []string{"a", "b", "c", "d"} {
		require.NoError(t, l.Add(word(w)))
	}
	l.SetSelected(1, true)
	l.SetSelected(3, true)

	_, err := l.RemoveSelection()
	assert.Error(t, err)
	assert.Equal(t, []Item{word("d")}, store.removed)
	assert.Equal(t, []string{"a", "b", "c"}, contents(l))
	assert.Equal(t, []string{"b"}, selected(l))
}
