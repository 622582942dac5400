package pcb

import (
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
	"github.com/OpenTraceLab/pcbcanvas/pkg/kicad/sexp"
)

// parseZones extracts all zone definitions. Multi-layer zones produce one
// Zone per layer.
func (p *Parser) parseZones(root *sexp.Node, netMap *NetMap) []Zone {
	zoneNodes := root.FindAll("zone")
	zones := make([]Zone, 0, len(zoneNodes))

	for i, zoneNode := range zoneNodes {
		for _, zone := range parseZone(zoneNode, netMap) {
			if len(zone.Fills) == 0 {
				p.logger.Debug("zone has no fills", "index", i, "layer", zone.Layer)
			}
			zones = append(zones, zone)
		}
	}

	return zones
}

// parseZone reads one (zone ...) node
// Expected format: (zone (net 1) (layer "F.Cu") (polygon (pts ...)) (filled_polygon (layer "F.Cu") (pts ...)))
func parseZone(node *sexp.Node, netMap *NetMap) []Zone {
	base := Zone{Net: lookupNet(node, netMap)}

	if polyNode, found := node.Find("polygon"); found {
		if ptsNode, found := polyNode.Find("pts"); found {
			base.Outline = parsePoints(ptsNode)
		}
	}

	// (layers ...) overrides (layer ...) when both appear
	var layers []string
	if layer, ok := node.FindString("layer"); ok {
		layers = []string{layer}
	}
	if layersNode, found := node.Find("layers"); found {
		layers = layersNode.Strings()
	}

	fillsByLayer := make(map[string][][]geom.Point)
	for _, fillNode := range node.FindAll("filled_polygon") {
		ptsNode, found := fillNode.Find("pts")
		if !found {
			continue
		}
		points := parsePoints(ptsNode)
		if len(points) == 0 {
			continue
		}

		// A fill without its own layer belongs to a single-layer zone
		fillLayer, ok := fillNode.FindString("layer")
		if !ok && len(layers) > 0 {
			fillLayer = layers[0]
		}
		fillsByLayer[fillLayer] = append(fillsByLayer[fillLayer], points)
	}

	zones := make([]Zone, 0, len(layers))
	for _, layer := range layers {
		zone := base
		zone.Layer = layer
		zone.Fills = fillsByLayer[layer]
		zones = append(zones, zone)
	}
	return zones
}

// parsePoints extracts xy coordinate pairs from a pts node. Arc segments
// inside pts are skipped.
func parsePoints(ptsNode *sexp.Node) []geom.Point {
	var points []geom.Point
	for _, item := range ptsNode.FindAll("xy") {
		x, y, err := item.XY()
		if err != nil {
			continue
		}
		points = append(points, geom.Pt(x, y))
	}
	return points
}
