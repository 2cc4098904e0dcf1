// Package framestore holds the single-channel frame the pipeline scans.
//
// The store sits between the serial receiver (writer) and the raster
// generator (reader). Writes land in place, so a frame being uploaded is
// visible immediately, exactly like the frame RAM on the reference board.
package framestore

import (
	"fmt"
	"sync"
)

// Store is a width x height 8-bit intensity buffer, row-major.
type Store struct {
	mu     sync.Mutex
	width  int
	height int
	pix    []uint8
	gen    uint64
}

// New allocates a zeroed store.
func New(width, height int) (*Store, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("framestore: size %dx%d too small for a 3x3 window", width, height)
	}
	return &Store{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}, nil
}

func (s *Store) Width() int  { return s.width }
func (s *Store) Height() int { return s.height }

// Size returns the number of samples in one frame.
func (s *Store) Size() int { return s.width * s.height }

// At returns the sample at a scan position. Out-of-bounds reads return 0.
func (s *Store) At(col, row int) uint8 {
	if col < 0 || col >= s.width || row < 0 || row >= s.height {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pix[row*s.width+col]
}

// SetAt stores one sample at a raster offset counted from the frame start.
// Offsets outside the frame are ignored.
func (s *Store) SetAt(off int, v uint8) {
	if off < 0 || off >= len(s.pix) {
		return
	}
	s.mu.Lock()
	s.pix[off] = v
	s.mu.Unlock()
}

// LoadFrame replaces the whole frame in one call.
func (s *Store) LoadFrame(p []uint8) error {
	if len(p) != len(s.pix) {
		return fmt.Errorf("framestore: frame is %d bytes, want %d", len(p), len(s.pix))
	}
	s.mu.Lock()
	copy(s.pix, p)
	s.gen++
	s.mu.Unlock()
	return nil
}

// Fill sets every sample to v.
func (s *Store) Fill(v uint8) {
	s.mu.Lock()
	for i := range s.pix {
		s.pix[i] = v
	}
	s.gen++
	s.mu.Unlock()
}

// Commit marks the current contents as one completed frame.
func (s *Store) Commit() {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()
}

// Generation counts completed frames; consumers compare it to detect a
// fresh upload.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}
