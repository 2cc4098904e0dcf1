//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoInput struct {
	kbd Keyboard
}

func (in tinyGoInput) Keyboard() Keyboard { return in.kbd }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

type uartSerial struct {
	uart *machine.UART
}

func (s *uartSerial) Read(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	return s.uart.Read(p)
}

func (s *uartSerial) Write(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	return s.uart.Write(p)
}

// machinePin adapts a raw MCU pin to the GPIOPin interface. The app's
// debouncers sample the buttons through this.
type machinePin struct {
	pin  machine.Pin
	name string
	caps GPIOCaps
}

func newMachinePin(name string, pin machine.Pin, caps GPIOCaps) *machinePin {
	return &machinePin{pin: pin, name: name, caps: caps}
}

func (p *machinePin) Name() string   { return p.name }
func (p *machinePin) Caps() GPIOCaps { return p.caps }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	cfg := machine.PinConfig{}
	switch mode {
	case GPIOModeInput:
		if p.caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", p.name)
		}
		switch pull {
		case GPIOPullNone:
			cfg.Mode = machine.PinInput
		case GPIOPullUp:
			if p.caps&GPIOCapPullUp == 0 {
				return fmt.Errorf("gpio: pin %s: pull-up unsupported", p.name)
			}
			cfg.Mode = machine.PinInputPullup
		case GPIOPullDown:
			if p.caps&GPIOCapPullDown == 0 {
				return fmt.Errorf("gpio: pin %s: pull-down unsupported", p.name)
			}
			cfg.Mode = machine.PinInputPulldown
		default:
			return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
		}
	case GPIOModeOutput:
		if p.caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
		}
		cfg.Mode = machine.PinOutput
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}
	p.pin.Configure(cfg)
	return nil
}

func (p *machinePin) Read() (bool, error) {
	return p.pin.Get(), nil
}

func (p *machinePin) Write(level bool) error {
	if p.caps&GPIOCapOutput == 0 {
		return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
	}
	p.pin.Set(level)
	return nil
}
