package pcb

import (
	"fmt"
	"math"
	"strings"

	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// CopperLayer maps a KiCad copper layer name onto the circuit layer names:
// F.Cu is "top", B.Cu is "bottom" and In1.Cu is "inner1". Other layers
// map to "".
func CopperLayer(name string) string {
	switch {
	case name == "F.Cu":
		return "top"
	case name == "B.Cu":
		return "bottom"
	case strings.HasPrefix(name, "In") && strings.HasSuffix(name, ".Cu"):
		return "inner" + strings.TrimSuffix(strings.TrimPrefix(name, "In"), ".Cu")
	default:
		return ""
	}
}

// copperLayers maps a layer set onto circuit layers, expanding wildcards
// like *.Cu and F&B.Cu
func copperLayers(set LayerSet) []string {
	var out []string
	add := func(l string) {
		for _, existing := range out {
			if existing == l {
				return
			}
		}
		out = append(out, l)
	}
	for _, name := range set {
		switch name {
		case "*.Cu", "F&B.Cu":
			add("top")
			add("bottom")
		default:
			if l := CopperLayer(name); l != "" {
				add(l)
			}
		}
	}
	return out
}

// Document converts the board into circuit elements and connectivity.
// Pads become SMT pads or plated holes, vias stay vias and every zone fill
// becomes a polygon copper pour. A zone that was never filled is drawn from
// its outline. Nets connect pad and via ids by net name.
func (b *Board) Document() *circuit.Document {
	doc := &circuit.Document{Connectivity: circuit.NewConnectivityMap()}
	ids := make(map[string]int)
	uniqueID := func(base string) string {
		ids[base]++
		if n := ids[base]; n > 1 {
			return fmt.Sprintf("%s_%d", base, n)
		}
		return base
	}
	connect := func(net *Net, id string) {
		if net != nil && net.Name != "" {
			doc.Connectivity.Add(net.Name, id)
		}
	}

	for i := range b.Footprints {
		fp := &b.Footprints[i]
		ref := fp.RefName(i)
		for _, pad := range fp.Pads {
			id := uniqueID(fmt.Sprintf("%s-%s", ref, pad.Number))
			el, ok := padElement(id, fp, pad)
			if !ok {
				continue
			}
			doc.Elements = append(doc.Elements, el)
			connect(pad.Net, id)
		}
	}

	for i, via := range b.Vias {
		id := uniqueID(fmt.Sprintf("via-%d", i+1))
		doc.Elements = append(doc.Elements, circuit.Via{
			ViaID:         id,
			X:             via.Position.X,
			Y:             via.Position.Y,
			OuterDiameter: via.Size,
			HoleDiameter:  via.Drill,
			Layers:        copperLayers(via.Layers),
		})
		connect(via.Net, id)
	}

	for i, zone := range b.Zones {
		layer := CopperLayer(zone.Layer)
		if layer == "" {
			continue
		}
		net := ""
		if zone.Net != nil {
			net = zone.Net.Name
		}
		fills := zone.Fills
		if len(fills) == 0 && len(zone.Outline) >= 3 {
			fills = [][]geom.Point{zone.Outline}
		}
		for j, fill := range fills {
			doc.Elements = append(doc.Elements, circuit.CopperPour{
				CopperPourID: uniqueID(fmt.Sprintf("zone-%d-%d", i+1, j+1)),
				Layer:        layer,
				Shape:        "polygon",
				Points:       fill,
				SourceNetID:  net,
			})
		}
	}

	return doc
}

// padElement converts one pad. Pads without copper are dropped.
func padElement(id string, fp *Footprint, pad Pad) (circuit.Element, bool) {
	pos := fp.TransformPosition(pad.Position)
	layers := copperLayers(pad.Layers)
	if len(layers) == 0 {
		return nil, false
	}
	radius := pad.RoundRectRatio * math.Min(pad.Size.Width, pad.Size.Height)

	switch pad.Type {
	case "thru_hole", "np_thru_hole":
		return platedHole(id, pos, pad, layers, radius), true
	default:
		return smtPad(id, pos, pad, layers[0], radius), true
	}
}

func platedHole(id string, pos geom.Point, pad Pad, layers []string, radius float64) circuit.PlatedHole {
	h := circuit.PlatedHole{
		PlatedHoleID: id,
		X:            pos.X,
		Y:            pos.Y,
		Layers:       layers,
		CCWRotation:  pad.Position.Angle,
		PortHints:    []string{pad.Number},
	}
	ovalDrill := pad.Drill.Width != pad.Drill.Height

	switch {
	case pad.Shape == "circle" && !ovalDrill:
		h.Shape = "circle"
		h.OuterDiameter = pad.Size.Width
		h.HoleDiameter = pad.Drill.Width
	case pad.Shape == "oval" || pad.Shape == "circle":
		h.Shape = "pill"
		h.OuterWidth = pad.Size.Width
		h.OuterHeight = pad.Size.Height
		h.HoleWidth = pad.Drill.Width
		h.HoleHeight = pad.Drill.Height
	case ovalDrill:
		h.Shape = "pill_hole_with_rect_pad"
		h.RectPadWidth = pad.Size.Width
		h.RectPadHeight = pad.Size.Height
		h.RectBorderRadius = radius
		h.HoleWidth = pad.Drill.Width
		h.HoleHeight = pad.Drill.Height
	default:
		h.Shape = "circular_hole_with_rect_pad"
		h.RectPadWidth = pad.Size.Width
		h.RectPadHeight = pad.Size.Height
		h.RectBorderRadius = radius
		h.HoleDiameter = pad.Drill.Width
	}
	return h
}

func smtPad(id string, pos geom.Point, pad Pad, layer string, radius float64) circuit.SMTPad {
	p := circuit.SMTPad{
		SMTPadID:    id,
		X:           pos.X,
		Y:           pos.Y,
		Width:       pad.Size.Width,
		Height:      pad.Size.Height,
		CCWRotation: pad.Position.Angle,
		Layer:       layer,
		PortHints:   []string{pad.Number},
	}

	switch pad.Shape {
	case "circle":
		p.Shape = "circle"
		p.Radius = pad.Size.Width / 2
	case "oval":
		p.Shape = "pill"
	default:
		// roundrect, trapezoid and custom pads draw as their bounding rect
		p.Shape = "rect"
		if p.CCWRotation != 0 {
			p.Shape = "rotated_rect"
		}
		p.CornerRadius = radius
	}
	return p
}
