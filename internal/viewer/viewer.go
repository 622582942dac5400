// Package viewer shows a rendered board in a gio window. The board is
// drawn by the software renderer and presented as an image; changing the
// visible layers or the rats nest re-renders it.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sort"
	"strings"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/charmbracelet/log"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/pcbcanvas/internal/render"
	"github.com/OpenTraceLab/pcbcanvas/pkg/renderer"
)

// MenuLayers are the layers the layer menu can toggle
var MenuLayers = []string{
	renderer.LayerTop,
	renderer.LayerBottom,
	renderer.LayerDrill,
	renderer.LayerSilkscreenTop,
	renderer.LayerSilkscreenBottom,
}

// Viewer presents one scene
type Viewer struct {
	scene  *render.Scene
	opts   render.Options
	layers *renderer.LayerFilter
	logger *log.Logger

	gvTheme   *theme.Theme
	layerMenu *menu.DropdownMenu
	layerBtn  widget.Clickable
	ratsBtn   widget.Clickable
	ratsIcon  *widget.Icon

	image     paint.ImageOp
	imageSize image.Point
	dirty     bool
}

// New creates a viewer. opts.Width and opts.Height are replaced by the
// window size on every frame.
func New(scene *render.Scene, opts render.Options, logger *log.Logger) *Viewer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Viewer{
		scene:  scene,
		opts:   opts,
		layers: renderer.NewLayerFilter(opts.Layers...),
		logger: logger,
		dirty:  true,
	}
}

// Layers returns the visible layers, nil meaning all
func (v *Viewer) Layers() []string {
	return v.layers.Layers()
}

// RatsNest reports whether the rats nest is drawn
func (v *Viewer) RatsNest() bool {
	return v.opts.RatsNest
}

// ToggleLayer flips the visibility of one layer. The last visible layer
// cannot be hidden.
func (v *Viewer) ToggleLayer(layer string) {
	if len(v.layers.Layers()) == 0 {
		v.layers.ShowOnly(MenuLayers...)
	}
	visible := v.layers.IsVisible(layer)
	if visible && len(v.layers.Layers()) == 1 {
		return
	}
	v.layers.SetVisible(layer, !visible)
	if len(v.layers.Layers()) == len(MenuLayers) {
		v.layers.ShowAll()
	}
	v.dirty = true
}

// ShowAllLayers clears the layer filter
func (v *Viewer) ShowAllLayers() {
	v.layers.ShowAll()
	v.dirty = true
}

// ToggleRatsNest switches the rats nest on or off
func (v *Viewer) ToggleRatsNest() {
	v.opts.RatsNest = !v.opts.RatsNest
	v.dirty = true
}

// update re-renders when the settings changed or the window was resized
func (v *Viewer) update(size image.Point) error {
	if !v.dirty && size == v.imageSize {
		return nil
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}

	opts := v.opts
	opts.Width, opts.Height = size.X, size.Y
	opts.Layers = v.layers.Layers()
	surface, err := v.scene.Render(opts)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	v.image = paint.NewImageOp(surface.Image())
	v.imageSize = size
	v.dirty = false
	return nil
}

// Run processes window events until the window is closed or the user
// presses Q or Escape
func (v *Viewer) Run(w *app.Window) error {
	v.initUI()

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			if v.handleKeys(gtx) {
				return nil
			}

			v.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (v *Viewer) initUI() {
	v.gvTheme = theme.NewTheme("", nil, true)
	if icon, err := widget.NewIcon(icons.SocialShare); err == nil {
		v.ratsIcon = icon
	}
	v.layerMenu = v.buildLayerMenu()
}

func (v *Viewer) handleKeys(gtx layout.Context) bool {
	for {
		ev, ok := gtx.Event(key.Filter{})
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case key.NameEscape, "Q":
			return true
		case "N":
			v.ToggleRatsNest()
		case "A":
			v.ShowAllLayers()
		}
	}
	return false
}

func (v *Viewer) buildLayerMenu() *menu.DropdownMenu {
	opts := make([]menu.MenuOption, 0, len(MenuLayers))
	for _, name := range MenuLayers {
		layer := name
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				v.ToggleLayer(layer)
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				label := "  " + layer
				if v.layers.IsVisible(layer) {
					label = "✓ " + layer
				}
				lbl := material.Body1(th.Theme, label)
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	all := []menu.MenuOption{{
		OnClicked: func() error {
			v.ShowAllLayers()
			return nil
		},
		Layout: func(gtx menu.C, th *theme.Theme) menu.D {
			lbl := material.Body1(th.Theme, "All layers")
			return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
		},
	}}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{all, opts})
	drop.MaxWidth = unit.Dp(220)
	return drop
}

func (v *Viewer) layout(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(v.layoutToolbar),
		layout.Flexed(1, v.layoutBoard),
	)
}

func (v *Viewer) layoutToolbar(gtx layout.Context) layout.Dimensions {
	if v.layerBtn.Clicked(gtx) {
		v.layerMenu.ToggleVisibility(gtx)
	}
	if v.ratsBtn.Clicked(gtx) {
		v.ToggleRatsNest()
	}

	th := v.gvTheme.Theme
	return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				dims := material.Button(th, &v.layerBtn, "Layers").Layout(gtx)
				// Layout menu after button so it appears on top
				v.layerMenu.Layout(gtx, v.gvTheme)
				return dims
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if v.ratsIcon == nil {
					return material.Button(th, &v.ratsBtn, "Rats nest").Layout(gtx)
				}
				btn := material.IconButton(th, &v.ratsBtn, v.ratsIcon, "Toggle rats nest")
				btn.Size = unit.Dp(20)
				btn.Inset = layout.UniformInset(unit.Dp(8))
				if !v.opts.RatsNest {
					btn.Background = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
				}
				return btn.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Rigid(material.Body2(th, v.status()).Layout),
		)
	})
}

func (v *Viewer) status() string {
	layers := "all layers"
	if l := v.layers.Layers(); len(l) > 0 {
		sort.Strings(l)
		layers = strings.Join(l, ", ")
	}
	rats := "off"
	if v.opts.RatsNest {
		rats = "on"
	}
	return fmt.Sprintf("%d elements | %s | rats nest %s", len(v.scene.Document().Elements), layers, rats)
}

func (v *Viewer) layoutBoard(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	if err := v.update(size); err != nil {
		v.logger.Error("render failed", "err", err)
		return layout.Dimensions{Size: size}
	}

	img := widget.Image{
		Src:      v.image,
		Fit:      widget.Unscaled,
		Position: layout.NW,
		Scale:    1 / gtx.Metric.PxPerDp,
	}
	return img.Layout(gtx)
}
