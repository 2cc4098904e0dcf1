package hal

import "testing"

func pollLevels(d *Debouncer, pin *virtualPin, levels ...bool) {
	for _, l := range levels {
		pin.set(l)
		d.Poll()
	}
}

func TestDebouncerFiltersBounce(t *testing.T) {
	pin := newVirtualPin("BTN", GPIOCapInput)
	d := NewDebouncer(pin, 3, false)

	// Bouncing contact: alternating samples never satisfy the stable
	// count, so no press registers.
	pollLevels(d, pin, true, false, true, false, true, false)
	if d.Level() {
		t.Fatal("level high after bounce, want low")
	}
	if d.Pressed() {
		t.Fatal("press registered from bounce")
	}

	// A held press does.
	pollLevels(d, pin, true, true, true)
	if !d.Level() {
		t.Fatal("level low after stable press")
	}
	if !d.Pressed() {
		t.Fatal("no press edge after stable press")
	}
	// The edge reports once.
	if d.Pressed() {
		t.Fatal("press edge reported twice")
	}

	// Release needs the same stability.
	pollLevels(d, pin, false, false)
	if !d.Level() {
		t.Fatal("level dropped before stable count")
	}
	pollLevels(d, pin, false)
	if d.Level() {
		t.Fatal("level high after stable release")
	}
}

func TestDebouncerActiveLow(t *testing.T) {
	pin := newVirtualPin("BTN", GPIOCapInput)
	pin.set(true) // pulled up, idle
	d := NewDebouncer(pin, 2, true)

	pollLevels(d, pin, true, true, true)
	if d.Level() || d.Pressed() {
		t.Fatal("idle pull-up read as press")
	}

	pollLevels(d, pin, false, false)
	if !d.Level() || !d.Pressed() {
		t.Fatal("active-low press not detected")
	}
}

func TestDebouncerNilPin(t *testing.T) {
	var d *Debouncer
	d.Poll() // must not panic
	d = NewDebouncer(nil, 3, false)
	d.Poll()
}
