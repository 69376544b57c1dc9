package viewport

// Window is a view of Height rows into content that is Lines rows long,
// starting at row Position.
type Window struct {
	Position int
	Height   int
	Lines    int
}

// MinPosition is always zero.
func (w *Window) MinPosition() int {
	return 0
}

// MaxPosition returns the largest valid top row.
func (w *Window) MaxPosition() int {
	if w.Height <= 0 || w.Lines <= w.Height {
		return 0
	}
	return w.Lines - w.Height
}

// Bottom returns the last visible row, or -1 if nothing is visible.
func (w *Window) Bottom() int {
	return min(w.Position+w.Height, w.Lines) - 1
}

// AtBottom reports whether the last line of content is visible.
func (w *Window) AtBottom() bool {
	return w.Position >= w.MaxPosition()
}

// Contains reports whether row is visible.
func (w *Window) Contains(row int) bool {
	return row >= w.Position && row <= w.Bottom()
}

func (w *Window) clamp(position int) int {
	return max(w.MinPosition(), min(position, w.MaxPosition()))
}

// Clamp pulls Position back into range after Lines or Height changed.
// Returns true if Position moved.
func (w *Window) Clamp() bool {
	p := w.clamp(w.Position)
	if p == w.Position {
		return false
	}
	w.Position = p
	return true
}

// Scroll moves the window by delta rows and returns the number of rows that
// can be redrawn incrementally. A positive result means that many rows
// entered at the top and existing content shifts down; a negative result is
// the same at the bottom. Zero means the window did not move, or moved by a
// full page or more, and everything visible must be redrawn.
func (w *Window) Scroll(delta int) int {
	old := w.Position
	w.Position = w.clamp(old + delta)

	d := w.Position - old
	if d == 0 || abs(d) >= w.Height {
		return 0
	}
	return -d
}

// SetPosition sets the top row, clamped to the valid range. Returns false if
// position had to be clamped.
func (w *Window) SetPosition(position int) bool {
	w.Position = w.clamp(position)
	return w.Position == position
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
