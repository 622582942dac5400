package renderer

import (
	"strings"

	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
)

// Layer names used by circuit elements
const (
	LayerTop              = "top"
	LayerBottom           = "bottom"
	LayerDrill            = "drill"
	LayerSilkscreenTop    = "silkscreen_top"
	LayerSilkscreenBottom = "silkscreen_bottom"
)

// LayerFilter controls which layers DrawElements renders. An empty filter
// shows everything.
type LayerFilter struct {
	visible map[string]bool
}

// NewLayerFilter creates a filter that shows only the given layers, or
// every layer when none are given
func NewLayerFilter(layers ...string) *LayerFilter {
	lf := &LayerFilter{visible: make(map[string]bool)}
	for _, layer := range layers {
		lf.SetVisible(layer, true)
	}
	return lf
}

// ParseLayerList splits a comma separated layer list, dropping blanks
func ParseLayerList(s string) []string {
	var layers []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			layers = append(layers, part)
		}
	}
	return layers
}

// SetVisible sets the visibility of a specific layer
func (lf *LayerFilter) SetVisible(layer string, visible bool) {
	if visible {
		lf.visible[layer] = true
		return
	}
	delete(lf.visible, layer)
}

// ShowAll clears the filter
func (lf *LayerFilter) ShowAll() {
	lf.visible = make(map[string]bool)
}

// ShowOnly shows only the specified layers, hiding all others
func (lf *LayerFilter) ShowOnly(layers ...string) {
	lf.ShowAll()
	for _, layer := range layers {
		lf.SetVisible(layer, true)
	}
}

// Layers returns the visible layers, or nil when everything is shown
func (lf *LayerFilter) Layers() []string {
	if lf == nil || len(lf.visible) == 0 {
		return nil
	}
	out := make([]string, 0, len(lf.visible))
	for layer := range lf.visible {
		out = append(out, layer)
	}
	return out
}

// IsVisible reports whether a layer passes the filter
func (lf *LayerFilter) IsVisible(layer string) bool {
	if lf == nil || len(lf.visible) == 0 {
		return true
	}
	return lf.visible[layer]
}

// Accepts reports whether any layer of e passes the filter. Elements with
// no layer only pass an empty filter.
func (lf *LayerFilter) Accepts(e circuit.Element) bool {
	if lf == nil || len(lf.visible) == 0 {
		return true
	}
	for _, layer := range circuit.Layers(e) {
		if lf.visible[layer] {
			return true
		}
	}
	return false
}
