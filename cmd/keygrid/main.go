// Package main is the entry point for the keygrid keypad daemon.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/keygrid/keygrid/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.LayoutPath, "layout", "layout.toml", "Path to layout file (.toml or .lua)")
	flag.StringVar(&opts.LayoutPath, "l", "layout.toml", "Path to layout file (shorthand)")
	flag.BoolVar(&opts.Simulate, "sim", false, "Run the terminal simulator instead of hardware")
	flag.StringVar(&opts.Port, "port", "", "Serial port of the pad (overrides layout)")
	flag.StringVar(&opts.Device, "device", "", "HID gadget endpoint (overrides layout)")
	flag.BoolVar(&opts.NoTransmit, "no-transmit", false, "Log chords instead of sending them")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keygrid - RGB keypad daemon\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keygrid [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keygrid -l obs.toml -port /dev/ttyACM0   Drive a pad over serial\n")
		fmt.Fprintf(os.Stderr, "  keygrid -l obs.lua -sim                  Try a layout without hardware\n")
		fmt.Fprintf(os.Stderr, "  keygrid -no-transmit                     Exercise bindings into the log\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("keygrid %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}
