package tui

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fhs/gompd/v2/mpd"

	"pms/daemon"
	"pms/logging"
)

type connectedMsg struct {
	err error
}

type queueMsg struct {
	songs []mpd.Attrs
	err   error
}

type outputsMsg struct {
	outputs []mpd.Attrs
	err     error
}

type filesMsg struct {
	dir     string
	entries []mpd.Attrs
	err     error
}

// playerMsg carries the play state and, unless stopped, the current song.
type playerMsg struct {
	state string
	song  mpd.Attrs
	err   error
}

// idleMsg carries the name of a subsystem that changed on the server.
type idleMsg struct {
	subsystem string
	events    <-chan string
}

type tickMsg time.Time

// commandMsg reports the outcome of a fire-and-forget player command.
type commandMsg struct {
	op  string
	err error
}

func connect(ctx context.Context, d *daemon.Daemon) tea.Cmd {
	return func() tea.Msg {
		return connectedMsg{err: d.Connect(ctx)}
	}
}

func fetchQueue(d *daemon.Daemon) tea.Cmd {
	return func() tea.Msg {
		songs, err := d.Queue()
		return queueMsg{songs: songs, err: err}
	}
}

func fetchOutputs(d *daemon.Daemon) tea.Cmd {
	return func() tea.Msg {
		outputs, err := d.Outputs()
		return outputsMsg{outputs: outputs, err: err}
	}
}

func fetchFiles(d *daemon.Daemon, dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := d.ListFiles(dir)
		return filesMsg{dir: dir, entries: entries, err: err}
	}
}

func fetchPlayer(d *daemon.Daemon) tea.Cmd {
	return func() tea.Msg {
		status, err := d.Status()
		if err != nil {
			return playerMsg{err: err}
		}
		msg := playerMsg{state: status["state"]}
		if msg.state != "stop" {
			msg.song, msg.err = d.CurrentSong()
		}
		return msg
	}
}

// watch subscribes to server changes and waits for the first one.
func watch(ctx context.Context, d *daemon.Daemon) tea.Cmd {
	return func() tea.Msg {
		events, err := d.Watch(ctx, "playlist", "player", "output", "database")
		if err != nil {
			slog.Warn("Not watching for server changes", "error", err)
			return nil
		}
		return waitForEvent(events)()
	}
}

func waitForEvent(events <-chan string) tea.Cmd {
	return func() tea.Msg {
		defer logging.RecoverPanic("watch", nil)
		name, ok := <-events
		if !ok {
			return nil
		}
		return idleMsg{subsystem: name, events: events}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func run(op string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return commandMsg{op: op, err: fn()}
	}
}

// togglePause pauses or resumes playback, and starts it when stopped.
func togglePause(d *daemon.Daemon) tea.Cmd {
	return run("pause", func() error {
		status, err := d.Status()
		if err != nil {
			return err
		}
		switch status["state"] {
		case "play":
			return d.Pause(true)
		case "pause":
			return d.Pause(false)
		}
		return d.Play()
	})
}

func deleteSongs(d *daemon.Daemon, ids []int) tea.Cmd {
	return tea.Sequence(
		run("deleteid", func() error { return d.DeleteIDs(ids...) }),
		fetchQueue(d),
	)
}

func changeVolume(d *daemon.Daemon, delta int) tea.Cmd {
	return run("volume", func() error {
		status, err := d.Status()
		if err != nil {
			return err
		}
		volume, err := strconv.Atoi(status["volume"])
		if err != nil {
			return err
		}
		return d.SetVolume(volume + delta)
	})
}
