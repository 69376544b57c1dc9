package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/treilik/bubbleboxer"

	"pms/console"
	"pms/daemon"
	"pms/list"
	"pms/media"
)

// Lists, in tab order
const (
	listQueue = iota
	listLibrary
	listOutputs
	listBindings
)

// Options configure the program.
type Options struct {
	Daemon     *daemon.Daemon
	Console    *console.Console
	ScrollMode list.ScrollMode
	ListLimit  int
}

// Model is the application state. Lists are only touched from Update.
type Model struct {
	ctx    context.Context
	boxer  bubbleboxer.Boxer
	daemon *daemon.Daemon

	console *console.Console
	lists   []*list.List
	current int

	// watchCtx is cancelled when the connection it watches is replaced.
	watchCtx  context.Context
	stopWatch context.CancelFunc

	searching bool
	pattern   string
	flags     list.MatchFlags
	directory string

	status statusModel
}

// NewModel creates and returns a new TUI model
func NewModel(ctx context.Context, opts Options) Model {
	boxer := bubbleboxer.Boxer{
		ModelMap: make(map[string]tea.Model),
	}

	listOpts := []list.Option{
		list.WithScrollMode(opts.ScrollMode),
		list.WithLimit(opts.ListLimit),
	}
	lists := []*list.List{
		listQueue:    media.NewQueueList(opts.Daemon, listOpts...),
		listLibrary:  media.NewFileList(listOpts...),
		listOutputs:  media.NewOutputList(listOpts...),
		listBindings: media.NewBindingList(listOpts...),
	}
	if err := media.LoadBindings(lists[listBindings], bindings); err != nil {
		slog.Error("Failed to load key bindings", "error", err)
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "Search..."
	ti.CharLimit = 156

	status := statusModel{addr: opts.Daemon.Addr()}

	searchLeaf, _ := boxer.CreateLeaf("search", searchModel{textInput: ti})
	listLeaf, _ := boxer.CreateLeaf("list", listModel{lists: lists, current: lists[listQueue]})
	consoleLeaf, _ := boxer.CreateLeaf("console", consoleModel{console: opts.Console})
	statusLeaf, _ := boxer.CreateLeaf("status", status)

	// List above the console
	body := bubbleboxer.Node{
		Children:        []bubbleboxer.Node{listLeaf, consoleLeaf},
		VerticalStacked: true,
		SizeFunc: func(node bubbleboxer.Node, widthOrHeight int) []int {
			consoleHeight := widthOrHeight / 4
			if consoleHeight < 3 {
				consoleHeight = min(3, widthOrHeight)
			}
			return []int{widthOrHeight - consoleHeight, consoleHeight}
		},
	}

	root := bubbleboxer.Node{
		Children:        []bubbleboxer.Node{searchLeaf, body, statusLeaf},
		VerticalStacked: true,
		SizeFunc: func(node bubbleboxer.Node, widthOrHeight int) []int {
			return []int{1, max(widthOrHeight-2, 0), 1}
		},
	}

	boxer.LayoutTree = root

	return Model{
		ctx:     ctx,
		boxer:   boxer,
		daemon:  opts.Daemon,
		console: opts.Console,
		lists:   lists,
		current: listQueue,
		status:  status,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(connect(m.ctx, m.daemon), tick())
}

func (m Model) currentList() *list.List {
	return m.lists[m.current]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	updatedBoxer, boxerCmd := m.boxer.Update(msg)
	m.boxer = updatedBoxer.(bubbleboxer.Boxer)
	if boxerCmd != nil {
		cmd = boxerCmd
	}

	switch msg := msg.(type) {
	case tickMsg:
		m.setStatus("", nil)
		return m, tick()

	case connectedMsg:
		m.stopWatching()
		if msg.err != nil {
			slog.Error("Connection failed", "error", msg.err)
			m.setStatus("", msg.err)
			return m, nil
		}
		m.watchCtx, m.stopWatch = context.WithCancel(m.ctx)
		m.setStatus("connected", nil)
		return m, tea.Batch(
			fetchQueue(m.daemon),
			fetchOutputs(m.daemon),
			fetchFiles(m.daemon, m.directory),
			fetchPlayer(m.daemon),
			watch(m.watchCtx, m.daemon),
		)

	case idleMsg:
		slog.Debug("Server changed", "subsystem", msg.subsystem)
		next := waitForEvent(msg.events)
		switch msg.subsystem {
		case "playlist":
			return m, tea.Batch(next, fetchQueue(m.daemon))
		case "player":
			return m, tea.Batch(next, fetchPlayer(m.daemon))
		case "output":
			return m, tea.Batch(next, fetchOutputs(m.daemon))
		case "database":
			return m, tea.Batch(next, fetchFiles(m.daemon, m.directory))
		}
		return m, next

	case queueMsg:
		m.load(listQueue, msg.err, func(l *list.List) error {
			return media.LoadSongs(l, msg.songs)
		})

	case playerMsg:
		if msg.err != nil {
			slog.Error("Failed to read player state", "error", msg.err)
			m.setStatus("", msg.err)
			break
		}
		m.status.state = msg.state
		m.status.song = ""
		if len(msg.song) > 0 {
			m.status.song = media.SongFromAttrs(msg.song).String()
		}
		m.setStatus("", nil)

	case outputsMsg:
		m.load(listOutputs, msg.err, func(l *list.List) error {
			return media.LoadOutputs(l, msg.outputs)
		})

	case filesMsg:
		if msg.err == nil {
			m.directory = msg.dir
			m.lists[listLibrary].SetTitle("Library /" + msg.dir)
		}
		m.load(listLibrary, msg.err, func(l *list.List) error {
			return media.LoadFiles(l, msg.entries)
		})

	case commandMsg:
		if msg.err != nil {
			slog.Error("Command failed", "op", msg.op, "error", msg.err)
			m.setStatus("", msg.err)
		}

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	return m, cmd
}

func (m *Model) stopWatching() {
	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
}

func (m *Model) load(which int, err error, fill func(l *list.List) error) {
	if err == nil {
		err = fill(m.lists[which])
	}
	if err != nil {
		slog.Error("Failed to load list", "list", m.lists[which].Title(), "error", err)
		m.setStatus("", err)
	}
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "enter":
		m.editSearch(func(sm *searchModel) {
			m.pattern = sm.textInput.Value()
			sm.searching = false
			sm.textInput.Blur()
		})
		m.searching = false
		m.nextMatch()
	case "esc":
		m.editSearch(func(sm *searchModel) {
			sm.searching = false
			sm.textInput.SetValue(m.pattern)
			sm.textInput.Blur()
		})
		m.searching = false
	default:
		m.editSearch(func(sm *searchModel) {
			sm.textInput, cmd = sm.textInput.Update(msg)
		})
	}
	return *m, cmd
}

func (m *Model) editSearch(fn func(sm *searchModel)) {
	m.boxer.EditLeaf("search", func(model tea.Model) (tea.Model, error) {
		sm := model.(searchModel)
		fn(&sm)
		return sm, nil
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.currentList()

	switch keyActions[msg.String()] {
	case actionQuit:
		return *m, tea.Quit

	case actionCursorDown:
		m.moveCursor(1)
	case actionCursorUp:
		m.moveCursor(-1)
	case actionPageDown:
		m.moveCursor(max(l.Height(), 1))
	case actionPageUp:
		m.moveCursor(-max(l.Height(), 1))
	case actionTop:
		l.SetCursor(0)
		l.AdjustViewportToCursor()
	case actionBottom:
		l.SetCursor(l.Size() - 1)
		l.AdjustViewportToCursor()

	case actionScrollDown:
		if l.ScrollWindow(1) {
			l.AdjustCursorToViewport()
		}
	case actionScrollUp:
		if l.ScrollWindow(-1) {
			l.AdjustCursorToViewport()
		}

	case actionSelect:
		l.ToggleSelected(l.Cursor())
		m.moveCursor(1)
	case actionSelectAll:
		l.SelectAll(l.SelectionLen() != l.Size())

	case actionSearch:
		m.searching = true
		var cmd tea.Cmd
		m.editSearch(func(sm *searchModel) {
			sm.searching = true
			sm.textInput.SetValue("")
			cmd = sm.textInput.Focus()
		})
		return *m, cmd
	case actionNextMatch:
		m.nextMatch()
	case actionFuzzy:
		m.flags ^= media.MatchFuzzy
		fuzzy := m.flags&media.MatchFuzzy != 0
		m.editSearch(func(sm *searchModel) {
			sm.fuzzy = fuzzy
		})
		m.setStatus(fmt.Sprintf("fuzzy search %v", fuzzy), nil)

	case actionRemove:
		return *m, m.remove()
	case actionCrop:
		ok, err := l.CropToSelection()
		switch {
		case err != nil:
			slog.Error("Crop failed", "list", l.Title(), "error", err)
			m.setStatus("", err)
		case !ok:
			m.setStatus("select some, but not all, items to crop", nil)
		}

	case actionActivate:
		return *m, m.activate()
	case actionParent:
		if m.current == listLibrary && m.directory != "" {
			parent := path.Dir(m.directory)
			if parent == "." {
				parent = ""
			}
			return *m, fetchFiles(m.daemon, parent)
		}

	case actionPause:
		return *m, togglePause(m.daemon)
	case actionStop:
		return *m, run("stop", m.daemon.Stop)
	case actionNextTrack:
		return *m, run("next", m.daemon.NextTrack)
	case actionPrevTrack:
		return *m, run("previous", m.daemon.PreviousTrack)
	case actionVolumeUp:
		return *m, changeVolume(m.daemon, 5)
	case actionVolumeDown:
		return *m, changeVolume(m.daemon, -5)

	case actionNextList:
		m.current = (m.current + 1) % len(m.lists)
		current := m.currentList()
		m.boxer.EditLeaf("list", func(model tea.Model) (tea.Model, error) {
			lm := model.(listModel)
			lm.current = current
			return lm, nil
		})

	case actionConsoleUp:
		m.console.Scroll(-1)
	case actionConsoleDown:
		m.console.Scroll(1)

	case actionReconnect:
		return *m, connect(m.ctx, m.daemon)
	}

	return *m, nil
}

func (m *Model) moveCursor(delta int) {
	l := m.currentList()
	l.MoveCursor(delta)
	l.AdjustViewportToCursor()
}

func (m *Model) nextMatch() {
	if m.pattern == "" {
		return
	}
	l := m.currentList()
	if _, i := l.MatchWrapAround(m.pattern, l.Cursor(), m.flags); i >= 0 {
		l.SetCursor(i)
		l.AdjustViewportToCursor()
		return
	}
	m.setStatus(fmt.Sprintf("pattern not found: %s", m.pattern), nil)
}

// remove deletes the selection, or the item under the cursor. A queue
// selection takes one server round trip per song, so it is deleted by a
// command and the queue reloads once it is done.
func (m *Model) remove() tea.Cmd {
	l := m.currentList()

	if m.current == listQueue && l.SelectionLen() > 1 {
		var ids []int
		for item := range l.Selection() {
			if song, ok := item.(*media.Song); ok {
				ids = append(ids, song.ID)
			}
		}
		return deleteSongs(m.daemon, ids)
	}

	var err error
	if l.SelectionLen() > 0 {
		_, err = l.RemoveSelection()
	} else {
		_, err = l.Remove(l.Cursor())
	}
	if err != nil {
		if !errors.Is(err, media.ErrReadOnly) {
			slog.Error("Remove failed", "list", l.Title(), "error", err)
		}
		m.setStatus("", err)
	}
	return nil
}

func (m *Model) activate() tea.Cmd {
	d := m.daemon
	switch item := m.currentList().CursorItem().(type) {
	case *media.Song:
		return run("play", func() error { return d.PlayID(item.ID) })
	case *media.Output:
		id, enabled := item.ID, item.Enabled
		return tea.Sequence(
			run("output", func() error {
				if enabled {
					return d.DisableOutput(id)
				}
				return d.EnableOutput(id)
			}),
			fetchOutputs(d),
		)
	case *media.File:
		if item.Dir {
			return fetchFiles(d, item.Path)
		}
	}
	return nil
}

func (m *Model) setStatus(message string, err error) {
	m.status.connected = m.daemon.Connected()
	if message != "" || err != nil {
		m.status.message = message
		m.status.isError = err != nil
		if err != nil {
			m.status.message = err.Error()
		}
	}
	status := m.status
	m.boxer.EditLeaf("status", func(model tea.Model) (tea.Model, error) {
		sm := model.(statusModel)
		sm.connected = status.connected
		sm.state = status.state
		sm.song = status.song
		sm.message = status.message
		sm.isError = status.isError
		return sm, nil
	})
}

func (m Model) View() string {
	return m.boxer.View()
}

// Run starts the TUI application
func Run(opts Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(NewModel(ctx, opts), tea.WithAltScreen())
	_, err := p.Run()
	opts.Daemon.Disconnect()
	return err
}
