//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"pixelpipe/app"
	"pixelpipe/hal"
	"pixelpipe/raster"
)

func main() {
	var hcfg hal.HeadlessConfig
	var modeName string
	var testPattern bool
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&modeName, "mode", "raw", "Startup mode: raw, identity, blur, sobel-x, sobel-y, edge.")
	flag.BoolVar(&testPattern, "test-pattern", true, "Preload a synthetic frame.")
	flag.Parse()

	mode, err := app.ParseMode(modeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg := app.Config{
		// One full raster frame per host tick.
		TicksPerStep: raster.VGA640x480.TicksPerFrame(),
		StartMode:    mode,
		TestPattern:  testPattern,
	}

	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, func(h hal.HAL) func() error {
			return app.NewWithConfig(h, cfg)
		}, hcfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg)
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
