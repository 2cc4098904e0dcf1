package engine

import "fmt"

// Window is the 3x3 neighborhood anchored at the current scan position.
// Px[2][2] is the newest sample; Px[0][0] is two rows and two columns back.
type Window struct {
	Px    [3][3]uint8
	Valid bool
}

// LineWindowBuffer converts a raster-order sample stream into 3x3 windows
// using two full-row stores instead of a whole-frame buffer.
//
// Boundary policy: a window is invalid whenever the frame-global row is
// below 2 or the per-row column is below 2. Early samples are dropped, not
// zero-padded; the first two rows of a frame and the first two columns of
// every row never produce valid windows.
type LineWindowBuffer struct {
	width int

	// rows holds the two prior scanlines, selected by row parity. The
	// store holding row-2 is overwritten in place as the current row
	// streams through.
	rows [2][]uint8

	// shift holds the last three columns of each of the three active
	// rows; index [r][2] is the newest column.
	shift [3][3]uint8
}

// NewLineWindowBuffer allocates the two row stores for the given frame
// width. Width must fit at least one full window.
func NewLineWindowBuffer(width int) (*LineWindowBuffer, error) {
	if width < 3 {
		return nil, fmt.Errorf("engine: window buffer width %d, need at least 3", width)
	}
	b := &LineWindowBuffer{width: width}
	b.rows[0] = make([]uint8, width)
	b.rows[1] = make([]uint8, width)
	return b, nil
}

// Width returns the configured frame width.
func (b *LineWindowBuffer) Width() int { return b.width }

// Advance consumes one stream element and returns the window anchored at
// it. The second return mirrors the window's Valid flag.
//
// Invalid ticks (blanking, no sample) leave the row stores and shift
// registers untouched, so idle ticks cannot corrupt history.
func (b *LineWindowBuffer) Advance(sample uint8, valid bool, col, row uint32) (Window, bool) {
	if !valid || int(col) >= b.width {
		return Window{}, false
	}

	parity := row & 1
	older := b.rows[parity][col]   // row-2, about to be overwritten
	prior := b.rows[parity^1][col] // row-1
	b.rows[parity][col] = sample

	for r := 0; r < 3; r++ {
		b.shift[r][0] = b.shift[r][1]
		b.shift[r][1] = b.shift[r][2]
	}
	b.shift[0][2] = older
	b.shift[1][2] = prior
	b.shift[2][2] = sample

	w := Window{Px: b.shift, Valid: row >= 2 && col >= 2}
	return w, w.Valid
}

// Reset clears all history. The next two rows of input produce no valid
// windows, exactly as at the start of a frame.
func (b *LineWindowBuffer) Reset() {
	clearBytes(b.rows[0])
	clearBytes(b.rows[1])
	b.shift = [3][3]uint8{}
}

func clearBytes(p []uint8) {
	for i := range p {
		p[i] = 0
	}
}
