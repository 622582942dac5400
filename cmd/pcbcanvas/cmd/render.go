package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/pcbcanvas/internal/render"
	"github.com/OpenTraceLab/pcbcanvas/pkg/renderer"
)

var (
	renderOutput     string
	renderWidth      int
	renderHeight     int
	renderLayers     string
	renderRatsNest   bool
	renderTheme      string
	renderBackground string
)

var renderCmd = &cobra.Command{
	Use:   "render <input>",
	Short: "Render a board to PNG",
	Long: `Render a circuit-json document or a KiCad board to a PNG image.

Flags override values from the config file.

Layers: ` + strings.Join([]string{
		renderer.LayerTop,
		renderer.LayerBottom,
		renderer.LayerDrill,
		renderer.LayerSilkscreenTop,
		renderer.LayerSilkscreenBottom,
	}, ", "),
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addRenderFlags(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output PNG file (default <input>.png)")
}

// addRenderFlags registers the flags shared by render and view
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&renderWidth, "width", 1024, "canvas width in pixels")
	cmd.Flags().IntVar(&renderHeight, "height", 768, "canvas height in pixels")
	cmd.Flags().StringVar(&renderLayers, "layers", "", "comma separated layers to draw (default all)")
	cmd.Flags().BoolVar(&renderRatsNest, "ratsnest", true, "draw the rats nest")
	cmd.Flags().StringVar(&renderTheme, "theme", "", "color theme ("+themeList()+")")
	cmd.Flags().StringVar(&renderBackground, "background", "", "background color")
}

func themeList() string {
	names := make([]string, 0, len(renderer.ThemeNames))
	for t := renderer.ThemeClassic; t <= renderer.ThemeNord; t++ {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

func runRender(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger.Info("Loading board", "file", input)
	doc, err := render.LoadDocument(input, logger)
	if err != nil {
		return err
	}
	logger.Debug("Loaded board", "elements", len(doc.Elements), "nets", doc.Connectivity.Len())

	surface, err := render.NewScene(doc, cfg, logger).Render(render.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	output := renderOutput
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}
	if err := surface.SavePNG(output); err != nil {
		return fmt.Errorf("error writing image: %w", err)
	}

	logger.Info("Wrote image", "file", output, "width", surface.Width(), "height", surface.Height())
	return nil
}
