//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// Host framebuffer matches the board's visible raster.
const (
	hostFBWidth  = 640
	hostFBHeight = 480
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	gpio   GPIO
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	t      *hostTime
	serial Serial

	modeBtn  *virtualPin
	resetBtn *virtualPin
}

// New returns a host HAL implementation. Serial reads come from stdin, so
// an upload is just a pipe:
//
//	pixupload -image lena.png -port - | pixelpipe -headless
func New() HAL {
	logger := &hostLogger{w: os.Stdout}
	t := newHostTime()
	led := &hostLED{logger: logger}

	// The board has two user buttons; on the host they are virtual pins
	// driven by the keyboard (Tab cycles modes, Backspace resets).
	modeBtn := newVirtualPin("BTN_MODE", GPIOCapInput|GPIOCapPullUp)
	resetBtn := newVirtualPin("BTN_RESET", GPIOCapInput|GPIOCapPullUp)

	pins := []GPIOPin{newLEDPin("LED", led), modeBtn, resetBtn}
	for i := 0; i < 4; i++ {
		pins = append(pins, newVirtualPin(fmt.Sprintf("GPIO%d", i+1), GPIOCapInput|GPIOCapOutput|GPIOCapPullUp|GPIOCapPullDown))
	}

	return &hostHAL{
		logger:   logger,
		led:      led,
		gpio:     newVirtualGPIO(pins),
		fb:       newHostFramebuffer(hostFBWidth, hostFBHeight),
		kbd:      newHostKeyboard(),
		t:        t,
		serial:   &hostSerial{r: os.Stdin, w: os.Stdout},
		modeBtn:  modeBtn,
		resetBtn: resetBtn,
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) GPIO() GPIO       { return h.gpio }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Serial() Serial   { return h.serial }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("led: LOW")
}
