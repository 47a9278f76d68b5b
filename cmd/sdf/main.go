// Command sdf opens a window and draws the full-screen SDF quad until the window is closed
// or the exit key is pressed.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine"
	"github.com/Carmen-Shannon/oxy-sdf/engine/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "YAML config file (default: built-in defaults)")
	colourOnly := flag.Bool("colour-only", false, "Draw the per-vertex colour quad without uniforms or noise")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sdf: %v\n", err)
		return 1
	}
	if *colourOnly {
		cfg.Capabilities = config.CapabilitiesConfig{}
	}

	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sdf: %v\n", err)
		return 1
	}
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sdf: failed to initialise: %v\n", err)
		return 1
	}
	defer eng.Close()

	if err := eng.Run(); err != nil {
		common.Logger().Error("frame loop failed", "error", err)
		return 1
	}
	return 0
}
