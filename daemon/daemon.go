package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fhs/gompd/v2/mpd"
)

// ErrNotConnected is returned by commands issued while disconnected.
var ErrNotConnected = errors.New("not connected to MPD")

// Daemon is a connection to an MPD server.
//
// A failed command leaves the connection in an error state, as reported by
// Connected, until ClearError or Connect is called.
type Daemon struct {
	network  string
	addr     string
	password string
	timeout  time.Duration

	mu     sync.Mutex
	client *mpd.Client
	err    error
}

// New returns a disconnected Daemon. A host starting with "/" is taken as
// the path of a unix socket.
func New(host string, port int, password string, timeout time.Duration) *Daemon {
	d := &Daemon{
		network:  "tcp",
		addr:     fmt.Sprintf("%s:%d", host, port),
		password: password,
		timeout:  timeout,
	}
	if strings.HasPrefix(host, "/") {
		d.network = "unix"
		d.addr = host
	}
	return d
}

// Addr returns the address the Daemon dials.
func (d *Daemon) Addr() string {
	return d.addr
}

// Connect drops any existing connection and dials the server, giving up
// after the configured timeout or when ctx is done.
func (d *Daemon) Connect(ctx context.Context) error {
	d.Disconnect()

	slog.Debug("Connecting to MPD", "network", d.network, "addr", d.addr)

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	type result struct {
		client *mpd.Client
		err    error
	}
	done := make(chan result, 1)
	go func() {
		c, err := mpd.DialAuthenticated(d.network, d.addr, d.password)
		done <- result{c, err}
	}()

	var r result
	select {
	case r = <-done:
	case <-ctx.Done():
		go func() {
			if late := <-done; late.client != nil {
				late.client.Close()
			}
		}()
		r.err = ctx.Err()
	}

	if r.err != nil {
		slog.Debug("MPD connection failed", "addr", d.addr, "error", r.err)
		return fmt.Errorf("failed to connect to %s: %w", d.addr, r.err)
	}

	d.mu.Lock()
	d.client = r.client
	d.err = nil
	d.mu.Unlock()

	slog.Info("Connected to MPD", "addr", d.addr)
	return nil
}

// Disconnect closes the connection. Returns true if there was one.
func (d *Daemon) Disconnect() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return false
	}

	slog.Debug("Closing connection to MPD server", "addr", d.addr)
	if err := d.client.Close(); err != nil {
		slog.Debug("Error closing MPD connection", "error", err)
	}
	d.client = nil
	d.err = nil
	return true
}

// Connected reports whether there is a connection and no command has failed
// on it since the last ClearError.
func (d *Daemon) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.client != nil && d.err == nil
}

// Err returns the error that put the connection in its error state.
func (d *Daemon) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// ClearError forgets the last command error. Returns true if there was one.
func (d *Daemon) ClearError() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	had := d.err != nil
	d.err = nil
	return had
}

func (d *Daemon) do(op string, fn func(c *mpd.Client) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return ErrNotConnected
	}
	if err := fn(d.client); err != nil {
		d.err = err
		slog.Debug("MPD command failed", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (d *Daemon) Play() error {
	return d.do("play", func(c *mpd.Client) error {
		return c.Play(-1)
	})
}

// PlayID starts playing the queued song with the given id.
func (d *Daemon) PlayID(id int) error {
	return d.do("playid", func(c *mpd.Client) error {
		return c.PlayID(id)
	})
}

func (d *Daemon) Pause(pause bool) error {
	return d.do("pause", func(c *mpd.Client) error {
		return c.Pause(pause)
	})
}

func (d *Daemon) Stop() error {
	return d.do("stop", func(c *mpd.Client) error {
		return c.Stop()
	})
}

func (d *Daemon) NextTrack() error {
	return d.do("next", func(c *mpd.Client) error {
		return c.Next()
	})
}

func (d *Daemon) PreviousTrack() error {
	return d.do("previous", func(c *mpd.Client) error {
		return c.Previous()
	})
}

// SetVolume sets the volume, clamped to 0-100.
func (d *Daemon) SetVolume(volume int) error {
	volume = max(0, min(volume, 100))
	return d.do("setvol", func(c *mpd.Client) error {
		return c.SetVolume(volume)
	})
}

// Status returns the player status.
func (d *Daemon) Status() (mpd.Attrs, error) {
	var attrs mpd.Attrs
	err := d.do("status", func(c *mpd.Client) (err error) {
		attrs, err = c.Status()
		return err
	})
	return attrs, err
}

// CurrentSong returns the song being played.
func (d *Daemon) CurrentSong() (mpd.Attrs, error) {
	var attrs mpd.Attrs
	err := d.do("currentsong", func(c *mpd.Client) (err error) {
		attrs, err = c.CurrentSong()
		return err
	})
	return attrs, err
}

// Queue returns every song in the play queue.
func (d *Daemon) Queue() ([]mpd.Attrs, error) {
	var songs []mpd.Attrs
	err := d.do("playlistinfo", func(c *mpd.Client) (err error) {
		songs, err = c.PlaylistInfo(-1, -1)
		return err
	})
	return songs, err
}

// DeleteID removes the song with the given id from the play queue.
func (d *Daemon) DeleteID(id int) error {
	return d.do("deleteid", func(c *mpd.Client) error {
		return c.DeleteID(id)
	})
}

// DeleteIDs removes several songs from the play queue, stopping at the
// first one that fails.
func (d *Daemon) DeleteIDs(ids ...int) error {
	return d.do("deleteid", func(c *mpd.Client) error {
		for _, id := range ids {
			if err := c.DeleteID(id); err != nil {
				return fmt.Errorf("song %d: %w", id, err)
			}
		}
		return nil
	})
}

// Outputs returns the audio outputs.
func (d *Daemon) Outputs() ([]mpd.Attrs, error) {
	var outputs []mpd.Attrs
	err := d.do("outputs", func(c *mpd.Client) (err error) {
		outputs, err = c.ListOutputs()
		return err
	})
	return outputs, err
}

func (d *Daemon) EnableOutput(id int) error {
	return d.do("enableoutput", func(c *mpd.Client) error {
		return c.EnableOutput(id)
	})
}

func (d *Daemon) DisableOutput(id int) error {
	return d.do("disableoutput", func(c *mpd.Client) error {
		return c.DisableOutput(id)
	})
}

// ListFiles returns the directories and songs directly under uri in the
// music database.
func (d *Daemon) ListFiles(uri string) ([]mpd.Attrs, error) {
	var files []mpd.Attrs
	err := d.do("lsinfo", func(c *mpd.Client) (err error) {
		files, err = c.ListInfo(uri)
		return err
	})
	return files, err
}

// Watch reports the names of changed subsystems until ctx is done. It uses
// a connection of its own.
func (d *Daemon) Watch(ctx context.Context, subsystems ...string) (<-chan string, error) {
	w, err := mpd.NewWatcher(d.network, d.addr, d.password, subsystems...)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", d.addr, err)
	}

	events := make(chan string)
	go func() {
		defer close(events)
		defer stopWatcher(w)
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-w.Error:
				slog.Warn("MPD watcher error", "error", err)
			case name := <-w.Event:
				select {
				case events <- name:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}

// stopWatcher closes w, draining its channels so that a pending event
// cannot block the shutdown.
func stopWatcher(w *mpd.Watcher) {
	go func() {
		for range w.Event {
		}
	}()
	go func() {
		for range w.Error {
		}
	}()
	if err := w.Close(); err != nil {
		slog.Debug("Error closing MPD watcher", "error", err)
	}
}
