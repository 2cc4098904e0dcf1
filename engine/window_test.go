package engine

import "testing"

// feedWindow streams a full frame through b and records each returned
// window keyed by [row][col].
func feedWindow(t *testing.T, b *LineWindowBuffer, pix func(col, row int) uint8, width, height int) [][]Window {
	t.Helper()
	out := make([][]Window, height)
	for r := 0; r < height; r++ {
		out[r] = make([]Window, width)
		for c := 0; c < width; c++ {
			w, ok := b.Advance(pix(c, r), true, uint32(c), uint32(r))
			if ok != w.Valid {
				t.Fatalf("Advance(%d,%d) ok = %v, window valid = %v", c, r, ok, w.Valid)
			}
			out[r][c] = w
		}
	}
	return out
}

func TestWindowBufferWidthTooSmall(t *testing.T) {
	if _, err := NewLineWindowBuffer(2); err == nil {
		t.Fatal("NewLineWindowBuffer(2) succeeded, want error")
	}
}

func TestWindowBoundarySuppression(t *testing.T) {
	const width, height = 5, 4
	b, err := NewLineWindowBuffer(width)
	if err != nil {
		t.Fatalf("NewLineWindowBuffer: %v", err)
	}

	got := feedWindow(t, b, func(c, r int) uint8 { return uint8(r*width + c) }, width, height)

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			want := r >= 2 && c >= 2
			if got[r][c].Valid != want {
				t.Fatalf("window (%d,%d) valid = %v, want %v", r, c, got[r][c].Valid, want)
			}
		}
	}
}

func TestWindowContents(t *testing.T) {
	const width = 6
	b, err := NewLineWindowBuffer(width)
	if err != nil {
		t.Fatalf("NewLineWindowBuffer: %v", err)
	}

	pix := func(c, r int) uint8 { return uint8(r*width + c) }
	got := feedWindow(t, b, pix, width, 5)

	// Window anchored at (row,col) spans rows row-2..row, cols col-2..col.
	for r := 2; r < 5; r++ {
		for c := 2; c < width; c++ {
			w := got[r][c]
			for wr := 0; wr < 3; wr++ {
				for wc := 0; wc < 3; wc++ {
					want := pix(c-2+wc, r-2+wr)
					if w.Px[wr][wc] != want {
						t.Fatalf("window (%d,%d) cell [%d][%d] = %d, want %d",
							r, c, wr, wc, w.Px[wr][wc], want)
					}
				}
			}
		}
	}
}

func TestWindowIgnoresInvalidTicks(t *testing.T) {
	const width = 4
	mk := func() *LineWindowBuffer {
		b, err := NewLineWindowBuffer(width)
		if err != nil {
			t.Fatalf("NewLineWindowBuffer: %v", err)
		}
		return b
	}

	pix := func(c, r int) uint8 { return uint8(17*r + c) }
	plain := mk()
	want := feedWindow(t, plain, pix, width, 4)

	// Same frame, but with blanking ticks after every sample. History
	// must be untouched by them.
	noisy := mk()
	got := make([][]Window, 4)
	for r := 0; r < 4; r++ {
		got[r] = make([]Window, width)
		for c := 0; c < width; c++ {
			w, _ := noisy.Advance(pix(c, r), true, uint32(c), uint32(r))
			got[r][c] = w
			if _, ok := noisy.Advance(0xAA, false, uint32(c), uint32(r)); ok {
				t.Fatalf("invalid tick at (%d,%d) produced a valid window", r, c)
			}
		}
	}

	for r := range want {
		for c := range want[r] {
			if got[r][c] != want[r][c] {
				t.Fatalf("window (%d,%d) = %+v, want %+v", r, c, got[r][c], want[r][c])
			}
		}
	}
}

func TestWindowReset(t *testing.T) {
	const width = 4
	b, err := NewLineWindowBuffer(width)
	if err != nil {
		t.Fatalf("NewLineWindowBuffer: %v", err)
	}

	pix := func(c, r int) uint8 { return uint8(r*width + c + 1) }
	first := feedWindow(t, b, pix, width, 3)

	b.Reset()
	second := feedWindow(t, b, pix, width, 3)

	for r := range first {
		for c := range first[r] {
			if first[r][c] != second[r][c] {
				t.Fatalf("window (%d,%d) after reset = %+v, want %+v",
					r, c, second[r][c], first[r][c])
			}
		}
	}
}
