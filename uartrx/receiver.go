// Package uartrx reassembles image frames from a raw serial byte stream.
//
// The wire format matches the board's upload tool: width*height intensity
// bytes in raster order, no framing, no checksum. The receiver counts
// bytes, writes them straight into the frame store and commits the store
// when a full frame has arrived. A long gap mid-frame resynchronizes to
// offset zero so a torn upload cannot shear every later frame.
package uartrx

import (
	"fmt"

	"pixelpipe/framestore"
)

// DefaultIdleLimit is the number of idle polls tolerated mid-frame before
// the receiver abandons a partial upload.
const DefaultIdleLimit = 120

// Receiver is a byte-counting frame assembler.
type Receiver struct {
	store     *framestore.Store
	off       int
	idle      int
	idleLimit int
	frames    uint64
	dropped   uint64
}

// New builds a receiver writing into store.
func New(store *framestore.Store) (*Receiver, error) {
	if store == nil {
		return nil, fmt.Errorf("uartrx: nil frame store")
	}
	return &Receiver{store: store, idleLimit: DefaultIdleLimit}, nil
}

// SetIdleLimit overrides the mid-frame resync threshold. Zero disables
// resynchronization.
func (r *Receiver) SetIdleLimit(polls int) {
	if polls < 0 {
		polls = 0
	}
	r.idleLimit = polls
}

// Feed consumes received bytes. Each completed frame commits the store.
func (r *Receiver) Feed(p []byte) {
	if len(p) > 0 {
		r.idle = 0
	}
	size := r.store.Size()
	for _, b := range p {
		r.store.SetAt(r.off, b)
		r.off++
		if r.off == size {
			r.off = 0
			r.frames++
			r.store.Commit()
		}
	}
}

// Idle reports one empty poll. After idleLimit consecutive empty polls
// mid-frame the partial frame is dropped and reception restarts at the
// top-left.
func (r *Receiver) Idle() {
	if r.off == 0 || r.idleLimit == 0 {
		return
	}
	r.idle++
	if r.idle >= r.idleLimit {
		r.idle = 0
		r.off = 0
		r.dropped++
	}
}

// Offset is the byte position the next received byte lands at.
func (r *Receiver) Offset() int { return r.off }

// Frames counts completed uploads.
func (r *Receiver) Frames() uint64 { return r.frames }

// Dropped counts partial frames abandoned by resynchronization.
func (r *Receiver) Dropped() uint64 { return r.dropped }
