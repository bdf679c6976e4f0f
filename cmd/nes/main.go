// Command nes loads an iNES ROM and runs it: free-running on the bus
// by default, or under the interactive debugger TUI with -debug.
//
// Grounded on _examples/bdwalton-gintendo/gintendo.go's flag-parse/
// load/run shape, with the ebiten game loop removed (video/input
// presentation is out of scope) and its signal-driven Run(ctx) lifted
// from _examples/bdwalton-gintendo/console/bus.go's Run/BIOS split.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"github.com/caseyscarborough/nes/bus"
	"github.com/caseyscarborough/nes/cartridge"
	"github.com/caseyscarborough/nes/controller"
	"github.com/caseyscarborough/nes/cpu"
	"github.com/caseyscarborough/nes/debugger"
	"github.com/caseyscarborough/nes/ppu"
)

var debug = flag.Bool("debug", false, "launch the interactive debugger TUI instead of free-running")

func main() {
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: nes <rom-path> [-debug]\n")
		os.Exit(1)
	}

	cart, err := cartridge.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "nes: loading %q: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	p := ppu.New(cart)
	b := bus.New()

	// cpu.New's Reset reads the reset vector through b.Read, so the
	// cartridge (and PPU) must already be wired before the CPU is
	// constructed — otherwise it resets PC from an unconnected bus.
	b.ConnectPPU(p)
	b.ConnectCartridge(cart)
	b.ConnectController1(&controller.Controller{})
	b.ConnectController2(&controller.Controller{})

	c := cpu.New(b)
	b.ConnectCPU(c)

	if *debug {
		if err := debugger.Run(b, c, p); err != nil {
			fmt.Fprintf(os.Stderr, "nes: debugger: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigQuit
		cancel()
	}()

	run(ctx, b)
	os.Exit(0)
}

// run free-runs the bus one cycle at a time until ctx is canceled. No
// fixed-rate sleep or frame pacing is implemented here; this loop only
// exists to make the CLI usefully runnable without a display.
func run(ctx context.Context, b *bus.Bus) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			b.Cycle()
		}
	}
}
