package tui

import "pms/media"

// Actions bound to keys.
const (
	actionCursorDown  = "cursor-down"
	actionCursorUp    = "cursor-up"
	actionPageDown    = "page-down"
	actionPageUp      = "page-up"
	actionScrollDown  = "scroll-down"
	actionScrollUp    = "scroll-up"
	actionTop         = "top"
	actionBottom      = "bottom"
	actionSelect      = "select"
	actionSelectAll   = "select-all"
	actionSearch      = "search"
	actionNextMatch   = "next-match"
	actionFuzzy       = "toggle-fuzzy"
	actionRemove      = "remove"
	actionCrop        = "crop"
	actionActivate    = "activate"
	actionParent      = "parent"
	actionPause       = "pause"
	actionStop        = "stop"
	actionNextTrack   = "next-track"
	actionPrevTrack   = "previous-track"
	actionVolumeUp    = "volume-up"
	actionVolumeDown  = "volume-down"
	actionNextList    = "next-list"
	actionConsoleUp   = "console-up"
	actionConsoleDown = "console-down"
	actionReconnect   = "reconnect"
	actionQuit        = "quit"
)

var bindings = []media.Binding{
	{Keys: []string{"j", "down"}, Action: actionCursorDown, Help: "move cursor down"},
	{Keys: []string{"k", "up"}, Action: actionCursorUp, Help: "move cursor up"},
	{Keys: []string{"ctrl+f", "pgdown"}, Action: actionPageDown, Help: "move cursor one page down"},
	{Keys: []string{"ctrl+b", "pgup"}, Action: actionPageUp, Help: "move cursor one page up"},
	{Keys: []string{"ctrl+e"}, Action: actionScrollDown, Help: "scroll window down"},
	{Keys: []string{"ctrl+y"}, Action: actionScrollUp, Help: "scroll window up"},
	{Keys: []string{"g", "home"}, Action: actionTop, Help: "go to first item"},
	{Keys: []string{"G", "end"}, Action: actionBottom, Help: "go to last item"},
	{Keys: []string{" "}, Action: actionSelect, Help: "toggle selection and move down"},
	{Keys: []string{"a"}, Action: actionSelectAll, Help: "select or deselect everything"},
	{Keys: []string{"/"}, Action: actionSearch, Help: "search"},
	{Keys: []string{"n"}, Action: actionNextMatch, Help: "jump to next match"},
	{Keys: []string{"F"}, Action: actionFuzzy, Help: "toggle fuzzy search"},
	{Keys: []string{"d", "delete"}, Action: actionRemove, Help: "remove selection or item under cursor"},
	{Keys: []string{"c"}, Action: actionCrop, Help: "crop list to selection"},
	{Keys: []string{"enter"}, Action: actionActivate, Help: "play song, toggle output or open directory"},
	{Keys: []string{"backspace"}, Action: actionParent, Help: "go to parent directory"},
	{Keys: []string{"p"}, Action: actionPause, Help: "toggle pause, or play when stopped"},
	{Keys: []string{"s"}, Action: actionStop, Help: "stop playback"},
	{Keys: []string{">"}, Action: actionNextTrack, Help: "next track"},
	{Keys: []string{"<"}, Action: actionPrevTrack, Help: "previous track"},
	{Keys: []string{"+"}, Action: actionVolumeUp, Help: "volume up"},
	{Keys: []string{"-"}, Action: actionVolumeDown, Help: "volume down"},
	{Keys: []string{"tab"}, Action: actionNextList, Help: "show next list"},
	{Keys: []string{"ctrl+u"}, Action: actionConsoleUp, Help: "scroll console up"},
	{Keys: []string{"ctrl+d"}, Action: actionConsoleDown, Help: "scroll console down"},
	{Keys: []string{"r"}, Action: actionReconnect, Help: "reconnect to MPD"},
	{Keys: []string{"q", "ctrl+c"}, Action: actionQuit, Help: "quit"},
}

var keyActions = func() map[string]string {
	m := make(map[string]string)
	for _, b := range bindings {
		for _, k := range b.Keys {
			m[k] = b.Action
		}
	}
	return m
}()
