//go:build tinygo

package main

import (
	"pixelpipe/app"
	"pixelpipe/hal"
)

func main() {
	app.RunWithConfig(hal.New(), app.Config{
		// A few scanlines per tick keeps the MCU loop responsive.
		TicksPerStep:     4 * (640 + 160),
		ButtonsActiveLow: true,
		TestPattern:      true,
	})
}
