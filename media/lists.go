package media

import (
	"errors"
	"fmt"

	"github.com/fhs/gompd/v2/mpd"

	"pms/list"
)

// ErrReadOnly is returned when removing from a list that mirrors state the
// client cannot delete.
var ErrReadOnly = errors.New("list is read-only")

// Queue is the server-side play queue.
type Queue interface {
	DeleteID(id int) error
}

type queueStore struct {
	queue Queue
}

func (s queueStore) Remove(item list.Item) error {
	song, ok := item.(*Song)
	if !ok {
		return fmt.Errorf("queue cannot hold %T", item)
	}
	if err := s.queue.DeleteID(song.ID); err != nil {
		return fmt.Errorf("failed to remove %q from queue: %w", song, err)
	}
	return nil
}

type readOnlyStore string

func (s readOnlyStore) Remove(list.Item) error {
	return fmt.Errorf("%w: %s", ErrReadOnly, string(s))
}

// NewQueueList returns a list of songs whose removals are applied to q.
func NewQueueList(q Queue, opts ...list.Option) *list.List {
	return list.New(append([]list.Option{
		list.WithTitle("Queue"),
		list.WithStore(queueStore{queue: q}),
	}, opts...)...)
}

// NewOutputList returns a list of audio outputs. Outputs cannot be removed.
func NewOutputList(opts ...list.Option) *list.List {
	return list.New(append([]list.Option{
		list.WithTitle("Outputs"),
		list.WithStore(readOnlyStore("outputs")),
	}, opts...)...)
}

// NewBindingList returns a list of key bindings. Bindings cannot be removed.
func NewBindingList(opts ...list.Option) *list.List {
	return list.New(append([]list.Option{
		list.WithTitle("Key bindings"),
		list.WithStore(readOnlyStore("key bindings")),
	}, opts...)...)
}

// NewFileList returns a list for browsing the music database. Removing an
// entry only hides it.
func NewFileList(opts ...list.Option) *list.List {
	return list.New(append([]list.Option{
		list.WithTitle("Library"),
	}, opts...)...)
}

// LoadSongs replaces the contents of l with songs.
func LoadSongs(l *list.List, songs []mpd.Attrs) error {
	items := make([]list.Item, 0, len(songs))
	for _, attrs := range songs {
		items = append(items, SongFromAttrs(attrs))
	}
	return reload(l, items)
}

// LoadOutputs replaces the contents of l with outputs.
func LoadOutputs(l *list.List, outputs []mpd.Attrs) error {
	items := make([]list.Item, 0, len(outputs))
	for _, attrs := range outputs {
		items = append(items, OutputFromAttrs(attrs))
	}
	return reload(l, items)
}

// LoadFiles replaces the contents of l with the directories and songs in
// entries, skipping playlists.
func LoadFiles(l *list.List, entries []mpd.Attrs) error {
	items := make([]list.Item, 0, len(entries))
	for _, attrs := range entries {
		if f := FileFromAttrs(attrs); f != nil {
			items = append(items, f)
		}
	}
	return reload(l, items)
}

// LoadBindings replaces the contents of l with bindings.
func LoadBindings(l *list.List, bindings []Binding) error {
	items := make([]list.Item, 0, len(bindings))
	for i := range bindings {
		items = append(items, &bindings[i])
	}
	return reload(l, items)
}

// reload swaps the items of l, keeping the cursor and viewport where they
// were as far as the new contents allow.
func reload(l *list.List, items []list.Item) error {
	cursor, top := l.Cursor(), l.TopPosition()
	l.Clear()
	for _, item := range items {
		if err := l.Add(item); err != nil {
			return fmt.Errorf("failed to load %s: %w", l.Title(), err)
		}
	}
	if cursor != list.NoCursor {
		l.SetCursor(cursor)
	}
	l.SetViewportPosition(top)
	l.AdjustViewportToCursor()
	return nil
}
