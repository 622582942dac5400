package renderer

import (
	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// Rats nest stroke, in pixels
const (
	ratsNestLineWidth = 0.1
	ratsNestDash      = 1.0
)

// RatsNestLine is one unrouted connection in board coordinates
type RatsNestLine struct {
	Net  string
	From geom.Point
	To   geom.Point
}

// RatsNestLines connects every resolved point of each net to its nearest
// other point on the same net. Points at distance zero are not neighbors;
// on a tie the first point wins. A pair that picks each other is returned
// once. Ids without a position are skipped.
func RatsNestLines(elements []circuit.Element, conn *circuit.ConnectivityMap) []RatsNestLine {
	if conn.Len() == 0 {
		return nil
	}
	index := circuit.NewPositionIndex(elements)

	var lines []RatsNestLine
	for _, net := range conn.Nets() {
		var points []geom.Point
		for _, id := range conn.IDsConnectedToNet(net) {
			if p, ok := index.Lookup(id); ok {
				points = append(points, p)
			}
		}

		drawn := make(map[[2]int]bool)
		for i, p := range points {
			j := nearest(points, p)
			if j < 0 {
				continue
			}
			key := [2]int{min(i, j), max(i, j)}
			if drawn[key] {
				continue
			}
			drawn[key] = true
			lines = append(lines, RatsNestLine{Net: net, From: p, To: points[j]})
		}
	}
	return lines
}

// nearest returns the index of the closest point to p at a non-zero
// distance, or -1
func nearest(points []geom.Point, p geom.Point) int {
	best := -1
	bestDist := 0.0
	for j, q := range points {
		d := p.Dist(q)
		if d > 0 && (best < 0 || d < bestDist) {
			best = j
			bestDist = d
		}
	}
	return best
}

// DrawRatsNest strokes the rats nest as thin dashed lines in the top
// silkscreen color. Points are transformed by m before drawing, so the
// stroke width and dash are in pixels. It returns the number of lines.
func DrawRatsNest(ctx canvas.Context, elements []circuit.Element, conn *circuit.ConnectivityMap, colors ColorMap, m geom.Matrix) int {
	lines := RatsNestLines(elements, conn)
	if len(lines) == 0 {
		return 0
	}

	ctx.Save()
	defer ctx.Restore()

	ctx.SetStrokeStyle(colors.Silkscreen.Top)
	ctx.SetLineWidth(ratsNestLineWidth)
	ctx.SetLineDash([]float64{ratsNestDash, ratsNestDash})

	for _, l := range lines {
		from := m.Apply(l.From)
		to := m.Apply(l.To)
		ctx.BeginPath()
		ctx.MoveTo(from.X, from.Y)
		ctx.LineTo(to.X, to.Y)
		ctx.Stroke()
	}
	return len(lines)
}
