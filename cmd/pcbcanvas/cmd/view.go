package cmd

import (
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/pcbcanvas/internal/render"
	"github.com/OpenTraceLab/pcbcanvas/internal/viewer"
)

var viewCmd = &cobra.Command{
	Use:   "view <input>",
	Short: "View a board in a window",
	Long: `Opens a board in a Gio window. The image is re-rendered when the window
is resized or the displayed layers change.

Controls:
  Layers button  - Toggle layers
  Share button   - Toggle rats nest
  N              - Toggle rats nest
  A              - Show all layers
  Q / Escape     - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	addRenderFlags(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	filename := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger.Info("Loading board", "file", filename)
	doc, err := render.LoadDocument(filename, logger)
	if err != nil {
		return err
	}

	v := viewer.New(render.NewScene(doc, cfg, logger), render.OptionsFromConfig(cfg), logger)

	// Run the Gio application
	go func() {
		w := new(app.Window)
		w.Option(app.Title("pcbcanvas - " + filename))
		w.Option(app.Size(unit.Dp(cfg.Width), unit.Dp(cfg.Height)))

		if err := v.Run(w); err != nil {
			logger.Fatal("viewer failed", "err", err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}
