//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	gpio   GPIO
	fb     Framebuffer
	kbd    Keyboard
	t      *tinyGoTime
	serial Serial
}

// New returns a Pico 2 (RP2350) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1 — the image upload link.
// Buttons: mode on GP2, reset on GP3, both active-low with pull-ups.
// Display: ST7789 240x320 panel on SPI0 (see tinygo_display.go).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led := &pinLED{pin: ledPin}

	modeBtn := newMachinePin("BTN_MODE", machine.GP2, GPIOCapInput|GPIOCapPullUp)
	resetBtn := newMachinePin("BTN_RESET", machine.GP3, GPIOCapInput|GPIOCapPullUp)

	var fb Framebuffer
	if lcd, err := initST7789(); err == nil {
		fb = newLCDFramebuffer(lcd, lcdWidth, lcdHeight)
	} else {
		fb = &stubFramebuffer{w: lcdWidth, h: lcdHeight, format: PixelFormatRGB565}
	}

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    led,
		gpio:   newVirtualGPIO([]GPIOPin{newLEDPin("LED", led), modeBtn, resetBtn}),
		fb:     fb,
		kbd:    &stubKeyboard{},
		t:      newTinyGoTime(),
		serial: &uartSerial{uart: uart},
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHAL) Serial() Serial   { return h.serial }
func (h *tinyGoHAL) Time() Time       { return h.t }
