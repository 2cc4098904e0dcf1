// Package app wires the board together: UART bytes into the frame store,
// the raster generator over it, the convolution pipelines, and the
// selected output stream onto the display.
package app

import (
	"fmt"

	"pixelpipe/engine"
	"pixelpipe/framestore"
	"pixelpipe/hal"
	"pixelpipe/raster"
	"pixelpipe/uartrx"
)

// Config tunes the simulated board. Zero values pick the reference
// geometry (640x480 visible, VGA blanking) and a conservative step budget.
type Config struct {
	Width  int
	Height int
	HBlank int
	VBlank int

	// TicksPerStep is how many raster ticks one app step advances. The
	// host runner uses a whole frame per step; the MCU build uses a few
	// scanlines.
	TicksPerStep int

	StartMode Mode

	// ButtonsActiveLow matches the board wiring (buttons to ground with
	// pull-ups). The host's virtual buttons are active-high.
	ButtonsActiveLow bool

	// TestPattern preloads a synthetic frame so the display shows
	// something before the first upload.
	TestPattern bool
}

const buttonStablePolls = 3

type system struct {
	h   hal.HAL
	log hal.Logger
	fb  hal.Framebuffer

	store *framestore.Store
	rx    *uartrx.Receiver
	gen   *raster.Generator

	pipes [modeCount]engine.Stepper // nil slot for passthrough
	mode  Mode

	modeBtn  *hal.Debouncer
	resetBtn *hal.Debouncer
	keys     <-chan hal.KeyEvent

	serialCh chan []byte

	ticksPerStep int
	scaleX       int
	scaleY       int
	ledOn        bool
	lastUpload   uint64
}

// New initializes the app with the default config and returns its step
// function, called once per host/display tick.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// Run starts the app and steps it from the HAL tick stream. MCU entrypoint.
func Run(h hal.HAL) {
	RunWithConfig(h, Config{})
}

// NewWithConfig initializes the app and returns its step function.
// Construction failures are reported by the first step call.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s, err := newSystem(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return s.step
}

// RunWithConfig starts the app and blocks, stepping on the HAL tick
// stream.
func RunWithConfig(h hal.HAL, cfg Config) {
	step := NewWithConfig(h, cfg)
	for range h.Time().Ticks() {
		if err := step(); err != nil {
			h.Logger().WriteLineString("app: " + err.Error())
			return
		}
	}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	if cfg.Width == 0 {
		cfg.Width = raster.VGA640x480.Width
		cfg.Height = raster.VGA640x480.Height
		cfg.HBlank = raster.VGA640x480.HBlank
		cfg.VBlank = raster.VGA640x480.VBlank
	}
	timing := raster.Timing{
		Width:  cfg.Width,
		Height: cfg.Height,
		HBlank: cfg.HBlank,
		VBlank: cfg.VBlank,
	}
	if cfg.TicksPerStep == 0 {
		// Two scanlines per step; entrypoints override.
		cfg.TicksPerStep = 2 * (timing.Width + timing.HBlank)
	}

	store, err := framestore.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	rx, err := uartrx.New(store)
	if err != nil {
		return nil, err
	}
	gen, err := raster.NewGenerator(timing, store)
	if err != nil {
		return nil, err
	}

	s := &system{
		h:            h,
		log:          h.Logger(),
		fb:           h.Display().Framebuffer(),
		store:        store,
		rx:           rx,
		gen:          gen,
		mode:         cfg.StartMode,
		serialCh:     make(chan []byte, 8),
		ticksPerStep: cfg.TicksPerStep,
	}

	if err := s.buildPipelines(cfg.Width); err != nil {
		return nil, err
	}

	s.scaleX = scale(cfg.Width, s.fb.Width())
	s.scaleY = scale(cfg.Height, s.fb.Height())

	if gpio := h.GPIO(); gpio != nil {
		s.modeBtn = newButton(gpio.Pin(hal.PinModeButton), cfg.ButtonsActiveLow)
		s.resetBtn = newButton(gpio.Pin(hal.PinResetButton), cfg.ButtonsActiveLow)
	}
	if in := h.Input(); in != nil && in.Keyboard() != nil {
		s.keys = in.Keyboard().Events()
	}

	if cfg.TestPattern {
		s.loadTestPattern()
	}

	s.fb.ClearRGB(0, 0, 0)
	go s.readSerial()

	s.log.WriteLineString("app: mode=" + s.mode.String())
	return s, nil
}

func scale(frame, fb int) int {
	if fb <= 0 || frame <= fb {
		return 1
	}
	return (frame + fb - 1) / fb
}

func newButton(pin hal.GPIOPin, activeLow bool) *hal.Debouncer {
	if pin == nil {
		return nil
	}
	pull := hal.GPIOPullNone
	if activeLow {
		pull = hal.GPIOPullUp
	}
	if err := pin.Configure(hal.GPIOModeInput, pull); err != nil {
		return nil
	}
	return hal.NewDebouncer(pin, buttonStablePolls, activeLow)
}

func (s *system) buildPipelines(width int) error {
	presets := []struct {
		mode Mode
		k    engine.Kernel
	}{
		{ModeIdentity, engine.Identity},
		{ModeGaussian, engine.Gaussian},
		{ModeSobelX, engine.SobelX},
		{ModeSobelY, engine.SobelY},
	}
	for _, p := range presets {
		pipe, err := engine.NewConvolutionPipeline(p.k, width)
		if err != nil {
			return fmt.Errorf("app: %s pipeline: %w", p.mode, err)
		}
		s.pipes[p.mode] = pipe
	}
	edge, err := engine.NewEdgeMagnitudeCombiner(width)
	if err != nil {
		return fmt.Errorf("app: edge pipeline: %w", err)
	}
	s.pipes[ModeEdge] = edge
	return nil
}

// step advances the board by one display tick: drain serial input, sample
// the buttons, run the raster/pipeline for the step budget, refresh the
// status bar and present.
func (s *system) step() error {
	s.pollSerial()
	s.pollInput()

	for i := 0; i < s.ticksPerStep; i++ {
		s.runTick(s.gen.Tick())
	}

	s.updateUploadStatus()
	drawStatus(s.fb, fmt.Sprintf("%s  up:%d", s.mode, s.rx.Frames()))
	return s.fb.Present()
}

// runTick advances one raster tick through the active processing path.
func (s *system) runTick(in engine.Input) {
	if s.mode == ModePassthrough {
		if in.Valid {
			s.blit(in.Column, in.Row, in.Sample)
		}
		return
	}
	out := s.pipes[s.mode].Step(in)
	if out.Valid {
		s.blit(out.Column, out.Row, out.Sample)
	}
}

// blit lands one output sample on the framebuffer, decimating when the
// display is smaller than the frame.
func (s *system) blit(col, row uint32, v uint8) {
	x, y := int(col), int(row)
	if x%s.scaleX != 0 || y%s.scaleY != 0 {
		return
	}
	hal.PutGray(s.fb, x/s.scaleX, y/s.scaleY, v)
}

func (s *system) readSerial() {
	serial := s.h.Serial()
	if serial == nil {
		return
	}
	buf := make([]byte, 4096)
	for {
		n, err := serial.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.serialCh <- chunk
		}
		if err != nil {
			return
		}
	}
}

func (s *system) pollSerial() {
	got := false
	for {
		select {
		case p := <-s.serialCh:
			s.rx.Feed(p)
			got = true
		default:
			if !got {
				s.rx.Idle()
			}
			return
		}
	}
}

func (s *system) pollInput() {
	if s.modeBtn != nil {
		s.modeBtn.Poll()
		if s.modeBtn.Pressed() {
			s.setMode(s.mode.next())
		}
	}
	if s.resetBtn != nil {
		s.resetBtn.Poll()
		if s.resetBtn.Pressed() {
			s.resetPipeline()
		}
	}

	for {
		select {
		case ev := <-s.keys:
			if ev.Press {
				s.handleKey(ev)
			}
		default:
			return
		}
	}
}

func (s *system) handleKey(ev hal.KeyEvent) {
	switch {
	case ev.Rune >= '1' && ev.Rune < '1'+rune(modeCount):
		s.setMode(Mode(ev.Rune - '1'))
	case ev.Rune == 'r':
		s.resetPipeline()
	}
}

func (s *system) setMode(m Mode) {
	if m == s.mode {
		return
	}
	s.mode = m
	if p := s.pipes[m]; p != nil {
		p.Reset()
	}
	s.fb.ClearRGB(0, 0, 0)
	s.log.WriteLineString("app: mode=" + m.String())
}

// resetPipeline is the board's synchronous reset: scan back to top-left,
// active pipeline state dropped within one step.
func (s *system) resetPipeline() {
	s.gen.Reset()
	if p := s.pipes[s.mode]; p != nil {
		p.Reset()
	}
	s.fb.ClearRGB(0, 0, 0)
	s.log.WriteLineString("app: reset")
}

// updateUploadStatus drives the LED while an upload is in flight and logs
// completed frames.
func (s *system) updateUploadStatus() {
	busy := s.rx.Offset() > 0
	if busy != s.ledOn {
		s.ledOn = busy
		if busy {
			s.h.LED().High()
		} else {
			s.h.LED().Low()
		}
	}
	if n := s.rx.Frames(); n != s.lastUpload {
		s.lastUpload = n
		s.log.WriteLineString(fmt.Sprintf("app: frame %d received", n))
	}
}

// loadTestPattern fills the store with a horizontal ramp crossed by bars,
// enough to make every mode show structure before an upload.
func (s *system) loadTestPattern() {
	w, h := s.store.Width(), s.store.Height()
	frame := make([]uint8, w*h)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			v := uint8(c * 255 / (w - 1))
			if (r/32)%2 == 1 {
				v = 255 - v
			}
			if c%64 < 4 {
				v = 255
			}
			frame[r*w+c] = v
		}
	}
	// Preload without counting as an upload.
	_ = s.store.LoadFrame(frame)
}
