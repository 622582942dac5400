// Package circuit models the subset of circuit-json that the renderer draws:
// pads, plated holes, vias, copper pours and boundary-representation shapes,
// plus the net connectivity between them.
package circuit

import "github.com/OpenTraceLab/pcbcanvas/pkg/geom"

// Kind is the circuit-json type tag of an element
type Kind string

const (
	KindPlatedHole Kind = "pcb_plated_hole"
	KindSMTPad     Kind = "pcb_smtpad"
	KindVia        Kind = "pcb_via"
	KindCopperPour Kind = "pcb_copper_pour"
	KindBrepShape  Kind = "pcb_brep_shape"
)

// Element is one typed circuit element. The set of implementations is
// closed: PlatedHole, SMTPad, Via, CopperPour, BrepShape and Unknown.
type Element interface {
	Kind() Kind
	ID() string
	element()
}

// PlatedHole is a drilled, plated through hole. Which size fields are
// meaningful depends on Shape:
//
//	circle                      OuterDiameter, HoleDiameter
//	oval, pill                  OuterWidth, OuterHeight, HoleWidth, HoleHeight
//	circular_hole_with_rect_pad HoleDiameter, RectPadWidth, RectPadHeight
//	pill_hole_with_rect_pad     HoleWidth, HoleHeight, RectPadWidth, RectPadHeight
type PlatedHole struct {
	PlatedHoleID     string   `json:"pcb_plated_hole_id"`
	Shape            string   `json:"shape"`
	X                float64  `json:"x"`
	Y                float64  `json:"y"`
	Layers           []string `json:"layers,omitempty"`
	OuterDiameter    float64  `json:"outer_diameter,omitempty"`
	HoleDiameter     float64  `json:"hole_diameter,omitempty"`
	OuterWidth       float64  `json:"outer_width,omitempty"`
	OuterHeight      float64  `json:"outer_height,omitempty"`
	HoleWidth        float64  `json:"hole_width,omitempty"`
	HoleHeight       float64  `json:"hole_height,omitempty"`
	RectPadWidth     float64  `json:"rect_pad_width,omitempty"`
	RectPadHeight    float64  `json:"rect_pad_height,omitempty"`
	RectBorderRadius float64  `json:"rect_border_radius,omitempty"`
	CCWRotation      float64  `json:"ccw_rotation,omitempty"`
	PortHints        []string `json:"port_hints,omitempty"`
}

// SMTPad is a surface mount copper pad on a single layer
type SMTPad struct {
	SMTPadID     string   `json:"pcb_smtpad_id"`
	Shape        string   `json:"shape"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Width        float64  `json:"width,omitempty"`
	Height       float64  `json:"height,omitempty"`
	Radius       float64  `json:"radius,omitempty"`
	CornerRadius float64  `json:"corner_radius,omitempty"`
	CCWRotation  float64  `json:"ccw_rotation,omitempty"`
	Layer        string   `json:"layer"`
	PortHints    []string `json:"port_hints,omitempty"`
}

// Via connects copper layers through a small plated hole
type Via struct {
	ViaID         string   `json:"pcb_via_id"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	OuterDiameter float64  `json:"outer_diameter"`
	HoleDiameter  float64  `json:"hole_diameter"`
	Layers        []string `json:"layers,omitempty"`
}

// CopperPour is a poured copper area. Shape selects which geometry is set:
// "brep" uses BrepShape, "rect" uses Center/Width/Height/Rotation and
// "polygon" uses Points.
type CopperPour struct {
	CopperPourID          string       `json:"pcb_copper_pour_id"`
	Layer                 string       `json:"layer"`
	Shape                 string       `json:"shape"`
	CoveredWithSolderMask bool         `json:"covered_with_solder_mask,omitempty"`
	BrepShape             *BrepRings   `json:"brep_shape,omitempty"`
	Center                *geom.Point  `json:"center,omitempty"`
	Width                 float64      `json:"width,omitempty"`
	Height                float64      `json:"height,omitempty"`
	Rotation              float64      `json:"rotation,omitempty"`
	Points                []geom.Point `json:"points,omitempty"`
	SourceNetID           string       `json:"source_net_id,omitempty"`
}

// BrepShape is a boundary-representation shape made of typed edges.
// Operation is carried as metadata only; the renderer never evaluates it.
type BrepShape struct {
	BrepShapeID string    `json:"pcb_brep_shape_id"`
	Geometry    Geometry  `json:"geometry"`
	Operation   Operation `json:"operation,omitempty"`
	Layer       string    `json:"layer"`
	Style       Style     `json:"style"`
}

// Operation is the boolean operator a BrepShape declares
type Operation string

const (
	OperationAdd       Operation = "add"
	OperationSubtract  Operation = "subtract"
	OperationIntersect Operation = "intersect"
)

// Style is the per-shape style an element declares. Zero values mean
// "not declared".
type Style struct {
	Fill        string   `json:"fill,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
}

// Unknown holds any element whose type tag the renderer does not handle
type Unknown struct {
	Type string
	Raw  []byte
}

func (PlatedHole) Kind() Kind   { return KindPlatedHole }
func (SMTPad) Kind() Kind       { return KindSMTPad }
func (Via) Kind() Kind          { return KindVia }
func (CopperPour) Kind() Kind   { return KindCopperPour }
func (BrepShape) Kind() Kind    { return KindBrepShape }
func (u Unknown) Kind() Kind    { return Kind(u.Type) }
func (h PlatedHole) ID() string { return h.PlatedHoleID }
func (p SMTPad) ID() string     { return p.SMTPadID }
func (v Via) ID() string        { return v.ViaID }
func (c CopperPour) ID() string { return c.CopperPourID }
func (b BrepShape) ID() string  { return b.BrepShapeID }
func (Unknown) ID() string      { return "" }

func (PlatedHole) element() {}
func (SMTPad) element()     {}
func (Via) element()        {}
func (CopperPour) element() {}
func (BrepShape) element()  {}
func (Unknown) element()    {}

// Position returns the center of the hole
func (h PlatedHole) Position() geom.Point { return geom.Pt(h.X, h.Y) }

// Position returns the center of the pad
func (p SMTPad) Position() geom.Point { return geom.Pt(p.X, p.Y) }

// Position returns the center of the via
func (v Via) Position() geom.Point { return geom.Pt(v.X, v.Y) }

// Layers returns the layer names an element occupies. Plated holes and
// vias without explicit layers span top and bottom.
func Layers(e Element) []string {
	switch el := e.(type) {
	case PlatedHole:
		if len(el.Layers) == 0 {
			return []string{"top", "bottom"}
		}
		return el.Layers
	case Via:
		if len(el.Layers) == 0 {
			return []string{"top", "bottom"}
		}
		return el.Layers
	case SMTPad:
		return []string{el.Layer}
	case CopperPour:
		return []string{el.Layer}
	case BrepShape:
		return []string{el.Layer}
	default:
		return nil
	}
}
