package uartrx

import (
	"testing"

	"pixelpipe/framestore"
)

func newReceiver(t *testing.T, w, h int) (*Receiver, *framestore.Store) {
	t.Helper()
	s, err := framestore.New(w, h)
	if err != nil {
		t.Fatalf("framestore.New: %v", err)
	}
	r, err := New(s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r, s
}

func TestFeedAssemblesFrame(t *testing.T) {
	r, s := newReceiver(t, 3, 3)

	frame := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	r.Feed(frame[:4])
	if got := r.Offset(); got != 4 {
		t.Fatalf("Offset = %d, want 4", got)
	}
	if got := s.Generation(); got != 0 {
		t.Fatalf("Generation = %d before frame complete, want 0", got)
	}

	r.Feed(frame[4:])
	if got := r.Frames(); got != 1 {
		t.Fatalf("Frames = %d, want 1", got)
	}
	if got := s.Generation(); got != 1 {
		t.Fatalf("Generation = %d, want 1", got)
	}
	if got := s.At(1, 1); got != 5 {
		t.Fatalf("At(1,1) = %d, want 5", got)
	}
	if got := r.Offset(); got != 0 {
		t.Fatalf("Offset after frame = %d, want 0", got)
	}
}

func TestFeedSpansFrames(t *testing.T) {
	r, s := newReceiver(t, 3, 3)

	// 9 bytes of one frame plus 3 of the next, in one burst.
	burst := make([]byte, 12)
	for i := range burst {
		burst[i] = byte(i + 1)
	}
	r.Feed(burst)

	if got := r.Frames(); got != 1 {
		t.Fatalf("Frames = %d, want 1", got)
	}
	if got := r.Offset(); got != 3 {
		t.Fatalf("Offset = %d, want 3", got)
	}
	if got := s.At(2, 0); got != 12 {
		t.Fatalf("At(2,0) = %d, want 12 (start of second frame)", got)
	}
}

func TestIdleResync(t *testing.T) {
	r, _ := newReceiver(t, 3, 3)
	r.SetIdleLimit(5)

	r.Feed([]byte{1, 2, 3})
	for i := 0; i < 4; i++ {
		r.Idle()
	}
	if got := r.Offset(); got != 3 {
		t.Fatalf("Offset = %d after %d idle polls, want 3", got, 4)
	}

	r.Idle()
	if got := r.Offset(); got != 0 {
		t.Fatalf("Offset = %d after resync, want 0", got)
	}
	if got := r.Dropped(); got != 1 {
		t.Fatalf("Dropped = %d, want 1", got)
	}
}

func TestIdleBetweenFramesIsHarmless(t *testing.T) {
	r, _ := newReceiver(t, 3, 3)
	r.SetIdleLimit(1)

	for i := 0; i < 10; i++ {
		r.Idle()
	}
	if got := r.Dropped(); got != 0 {
		t.Fatalf("Dropped = %d with no frame in flight, want 0", got)
	}
}
