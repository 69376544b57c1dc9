package console

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"

	"pms/viewport"
)

// MaxLineWidth is the widest a console line may be. Longer lines are cut.
const MaxLineWidth = 512

// TimeFormat is how line timestamps are shown.
const TimeFormat = "15:04:05"

// Line is a single console message.
type Line struct {
	Time time.Time
	Text string
}

func (l Line) String() string {
	return l.Time.Format(TimeFormat) + ": " + l.Text
}

// Console is a fixed-size log that drops its oldest line when full. It is
// safe for concurrent use.
type Console struct {
	mu     sync.Mutex
	lines  []Line
	first  int // index of the oldest line in lines
	count  int
	window viewport.Window
	now    func() time.Time
}

// New creates a console holding at most capacity lines, shown through a
// viewport of height rows.
func New(capacity, height int) *Console {
	if capacity < 1 {
		capacity = 1
	}
	return &Console{
		lines:  make([]Line, capacity),
		window: viewport.Window{Height: height},
		now:    time.Now,
	}
}

// Printf appends a formatted line.
func (c *Console) Printf(format string, args ...any) {
	c.Append(fmt.Sprintf(format, args...))
}

// Append adds a line, evicting the oldest one if the console is full. If
// the viewport was showing the end of the log it keeps following it.
func (c *Console) Append(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.append(text)
}

// Write appends one line per newline-terminated chunk of p, so a Console
// can back a log handler.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for line := range bytes.Lines(p) {
		c.append(string(bytes.TrimRight(line, "\r\n")))
	}
	return len(p), nil
}

func (c *Console) append(text string) {
	line := Line{
		Time: c.now(),
		Text: runewidth.Truncate(text, MaxLineWidth, ""),
	}

	slot := (c.first + c.count) % len(c.lines)
	c.lines[slot] = line
	if c.count == len(c.lines) {
		c.first = (c.first + 1) % len(c.lines)
	} else {
		c.count++
	}

	c.window.Lines = c.count
	if c.window.Lines < c.window.Height || c.window.Position+c.window.Height+1 >= c.window.Lines {
		c.window.Scroll(1)
	}
}

// Line returns the nth line, counting from the oldest.
func (c *Console) Line(n int) (Line, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 || n >= c.count {
		return Line{}, false
	}
	return c.lines[(c.first+n)%len(c.lines)], true
}

// Len returns the number of lines held.
func (c *Console) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Visible returns the lines currently inside the viewport.
func (c *Console) Visible() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Line
	for n := c.window.Position; n <= c.window.Bottom(); n++ {
		out = append(out, c.lines[(c.first+n)%len(c.lines)])
	}
	return out
}

// Scroll moves the viewport and returns how many rows can be redrawn
// incrementally, as viewport.Window.Scroll.
func (c *Console) Scroll(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window.Scroll(delta)
}

// Position returns the index of the top visible line.
func (c *Console) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window.Position
}

// SetHeight resizes the viewport, staying at the bottom if it was there.
func (c *Console) SetHeight(h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	atBottom := c.window.AtBottom()
	c.window.Height = h
	if atBottom {
		c.window.Position = c.window.MaxPosition()
	}
	c.window.Clamp()
}
