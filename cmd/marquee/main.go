// Command marquee runs the skills carousel in a terminal.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/marquee"
)

var (
	configFile  string
	contentFile string
	speed       float64
	cellWidth   int
	// trace flags
	duration time.Duration
	step     time.Duration
	clickAt  time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "marquee",
		Short: "skills carousel in the terminal",
		RunE:  runPreview,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.toml", "config file path (toml)")
	rootCmd.PersistentFlags().StringVar(&contentFile, "content", "", "portfolio yaml (default: embedded)")
	rootCmd.PersistentFlags().Float64Var(&speed, "speed", 0, "scroll speed in cells per ms (default: from config)")
	rootCmd.PersistentFlags().IntVar(&cellWidth, "cell", 14, "cells per item")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "animate both rows; 1/2 hover a row, space clicks, t toggles theme",
		RunE:  runPreview,
	}

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "simulate the engine and plot row offsets",
		RunE:  runTrace,
	}
	traceCmd.Flags().DurationVar(&duration, "time", 10*time.Second, "simulated duration")
	traceCmd.Flags().DurationVar(&step, "step", 16*time.Millisecond, "frame interval")
	traceCmd.Flags().DurationVar(&clickAt, "click", 0, "simulate a click at this time (0: none)")

	rootCmd.AddCommand(previewCmd, traceCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config and the carousel items.
func setup() (*config.Config, []marquee.Item, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	if speed > 0 {
		cfg.Marquee.Speed = speed
	}
	portfolio, err := content.Load(contentFile)
	if err != nil {
		return nil, nil, err
	}
	items := content.MarqueeItems(portfolio.Skills)
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("no skills to show")
	}
	return cfg, items, nil
}
