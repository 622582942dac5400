package pcb

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/pcbcanvas/pkg/kicad/sexp"
)

// parsePad extracts a pad definition from a footprint
// Expected format: (pad "number" type shape (at x y [angle]) (size w h) (layers ...) (net n) ...)
func parsePad(node *sexp.Node, netMap *NetMap) (*Pad, error) {
	pad := &Pad{}

	number, err := node.String(1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad number: %w", err)
	}
	pad.Number = number

	// thru_hole, smd, connect, np_thru_hole
	padType, err := node.String(2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad type: %w", err)
	}
	pad.Type = padType

	// circle, rect, oval, roundrect, trapezoid, custom
	shape, err := node.String(3)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad shape: %w", err)
	}
	pad.Shape = shape

	at, err := parseAt(node)
	if err != nil {
		return nil, err
	}
	pad.Position = at

	sizeNode, found := node.Find("size")
	if !found {
		return nil, fmt.Errorf("missing required 'size' field")
	}
	width, err := sizeNode.Float(1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad width: %w", err)
	}
	height, err := sizeNode.Float(2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad height: %w", err)
	}
	pad.Size = Size{Width: width, Height: height}

	if drillNode, found := node.Find("drill"); found {
		pad.Drill = parseDrill(drillNode)
	}

	if ratio, ok := node.FindFloat("roundrect_rratio"); ok {
		pad.RoundRectRatio = ratio
	}

	layersNode, found := node.Find("layers")
	if !found {
		return nil, fmt.Errorf("missing required 'layers' field")
	}
	pad.Layers = LayerSet(layersNode.Strings())

	pad.Net = lookupNet(node, netMap)
	return pad, nil
}

// parseDrill reads (drill d), (drill oval w h) and (drill d (offset x y))
func parseDrill(node *sexp.Node) Size {
	index := 1
	oval := false
	if s, err := node.String(1); err == nil && s == "oval" {
		oval = true
		index = 2
	}

	w, err := node.Float(index)
	if err != nil {
		return Size{}
	}
	h := w
	if oval {
		if v, err := node.Float(index + 1); err == nil {
			h = v
		}
	}
	return Size{Width: w, Height: h}
}

// parseAt reads the required (at x y [angle]) child of node
func parseAt(node *sexp.Node) (PositionAngle, error) {
	atNode, found := node.Find("at")
	if !found {
		return PositionAngle{}, fmt.Errorf("missing required 'at' position")
	}
	x, y, err := atNode.XY()
	if err != nil {
		return PositionAngle{}, err
	}
	pos := PositionAngle{X: x, Y: y}

	// Angle is optional
	if angle, err := atNode.Float(3); err == nil {
		pos.Angle = angle
	}
	return pos, nil
}

// parseFootprint extracts a footprint (component) definition
// Expected format: (footprint "library:name" (layer "layer") (at x y [angle]) ...)
func (p *Parser) parseFootprint(node *sexp.Node, netMap *NetMap) (*Footprint, error) {
	footprint := &Footprint{}

	fpName, err := node.String(1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint name: %w", err)
	}

	// Example: "Resistor_SMD:R_0603_1608Metric"
	if lib, name, ok := strings.Cut(fpName, ":"); ok && lib != "" {
		footprint.Library = lib
		footprint.Name = name
	} else {
		footprint.Name = fpName
	}

	layer, ok := node.FindString("layer")
	if !ok {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	footprint.Layer = layer

	at, err := parseAt(node)
	if err != nil {
		return nil, err
	}
	footprint.Position = at

	// KiCad 8 writes (property "Reference" "R1"); KiCad 6 used fp_text
	for _, propNode := range node.FindAll("property") {
		propName, err := propNode.String(1)
		if err != nil {
			continue
		}
		propValue, err := propNode.String(2)
		if err != nil {
			continue
		}

		switch propName {
		case "Reference":
			footprint.Reference = propValue
		case "Value":
			footprint.Value = propValue
		}
	}
	for _, textNode := range node.FindAll("fp_text") {
		kind, err := textNode.String(1)
		if err != nil {
			continue
		}
		text, err := textNode.String(2)
		if err != nil {
			continue
		}
		switch {
		case kind == "reference" && footprint.Reference == "":
			footprint.Reference = text
		case kind == "value" && footprint.Value == "":
			footprint.Value = text
		}
	}

	for i, padNode := range node.FindAll("pad") {
		pad, err := parsePad(padNode, netMap)
		if err != nil {
			p.logger.Warn("skipping pad", "footprint", fpName, "index", i, "err", err)
			continue
		}
		footprint.Pads = append(footprint.Pads, *pad)
	}

	return footprint, nil
}

// parseFootprints extracts all footprint definitions from the root node
func (p *Parser) parseFootprints(root *sexp.Node, netMap *NetMap) []Footprint {
	footprintNodes := root.FindAll("footprint")
	footprints := make([]Footprint, 0, len(footprintNodes))

	for i, fpNode := range footprintNodes {
		footprint, err := p.parseFootprint(fpNode, netMap)
		if err != nil {
			p.logger.Warn("skipping footprint", "index", i, "err", err)
			continue
		}
		footprints = append(footprints, *footprint)
	}

	return footprints
}
