package hal

// Debouncer filters contact bounce on a GPIO input by requiring a number
// of consecutive identical samples before accepting a level change. Poll
// it at a fixed rate from the app loop.
//
// Active-low wiring (button to ground with a pull-up) is the common case;
// activeLow inverts the raw level so Pressed always means "button down".
type Debouncer struct {
	pin       GPIOPin
	activeLow bool
	stable    int

	level  bool
	streak int
	cand   bool

	pressed bool // rising edge since last Pressed() call
}

// NewDebouncer wraps pin. stable is the number of consecutive equal
// samples required to accept a new level; values below 1 are clamped to 1
// (no filtering).
func NewDebouncer(pin GPIOPin, stable int, activeLow bool) *Debouncer {
	if stable < 1 {
		stable = 1
	}
	return &Debouncer{pin: pin, activeLow: activeLow, stable: stable}
}

// Poll samples the pin once. Read errors leave the debounced level as-is;
// a flaky pin must not fabricate presses.
func (d *Debouncer) Poll() {
	if d == nil || d.pin == nil {
		return
	}
	raw, err := d.pin.Read()
	if err != nil {
		d.streak = 0
		return
	}
	if d.activeLow {
		raw = !raw
	}

	if raw != d.cand {
		d.cand = raw
		d.streak = 1
		return
	}
	if d.streak < d.stable {
		d.streak++
	}
	if d.streak >= d.stable && raw != d.level {
		d.level = raw
		if raw {
			d.pressed = true
		}
	}
}

// Level returns the debounced button state.
func (d *Debouncer) Level() bool { return d.level }

// Pressed reports whether a debounced press edge occurred since the last
// call, and clears the edge.
func (d *Debouncer) Pressed() bool {
	p := d.pressed
	d.pressed = false
	return p
}
