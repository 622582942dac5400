package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/pcbcanvas/internal/config"
	"github.com/OpenTraceLab/pcbcanvas/pkg/renderer"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger = log.New(io.Discard)
)

var rootCmd = &cobra.Command{
	Use:   "pcbcanvas",
	Short: "pcbcanvas - circuit board raster renderer",
	Long: `pcbcanvas renders circuit board layouts (circuit-json or KiCad .kicad_pcb)
to raster images: pads, plated holes, vias, copper pours and the rats nest.

Examples:
  pcbcanvas render board.json -o board.png          # Render to PNG
  pcbcanvas render board.kicad_pcb --layers top     # Top copper only
  pcbcanvas nets board.kicad_pcb                    # List nets
  pcbcanvas view board.kicad_pcb                    # Open a viewer window`,
	Version:      "0.1.0",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		logger = newLogger(os.Stderr, level)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
}

// newLogger creates a logger writing to w at level, with timestamps
// formatted as "HH:MM:SS.ms"
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// loadConfig reads the config file and applies the flags the user set on
// cmd on top of it
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = renderWidth
	}
	if flags.Changed("height") {
		cfg.Height = renderHeight
	}
	if flags.Changed("layers") {
		cfg.Layers = renderer.ParseLayerList(renderLayers)
	}
	if flags.Changed("ratsnest") {
		cfg.RatsNest = renderRatsNest
	}
	if flags.Changed("theme") {
		cfg.Theme = renderTheme
	}
	if flags.Changed("background") {
		cfg.Colors.Background = renderBackground
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
