package pcb

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// Board is the subset of a KiCad PCB the renderer imports
type Board struct {
	Version    int         // File format version
	Generator  string      // Generator info (e.g., "pcbnew")
	Nets       []Net       // Electrical nets
	Footprints []Footprint // Component footprints
	Vias       []Via       // Vias
	Zones      []Zone      // Zones, one per copper layer
}

// PositionAngle is a position with a rotation in degrees
type PositionAngle struct {
	X, Y  float64
	Angle float64
}

// Point drops the angle
func (p PositionAngle) Point() geom.Point {
	return geom.Pt(p.X, p.Y)
}

// Size is a width and height in millimetres
type Size struct {
	Width  float64
	Height float64
}

// Footprint is a placed component
type Footprint struct {
	Library   string        // Library name
	Name      string        // Footprint name
	Layer     string        // Layer (F.Cu or B.Cu typically)
	Position  PositionAngle // Position and rotation
	Pads      []Pad         // Pads
	Reference string        // Reference designator (e.g., "R1")
	Value     string        // Component value
}

// Pad is a footprint pad. Position is relative to the footprint; its angle
// is absolute, as KiCad writes it.
type Pad struct {
	Number         string        // Pad number/name
	Type           string        // Pad type (thru_hole, smd, connect, np_thru_hole)
	Shape          string        // Pad shape (circle, rect, oval, roundrect, ...)
	Position       PositionAngle // Position and rotation
	Size           Size          // Pad size
	Drill          Size          // Drill size, zero for SMD; equal sides unless oval
	RoundRectRatio float64       // Corner radius as a fraction of the shorter side
	Layers         LayerSet      // Layers the pad appears on
	Net            *Net          // Connected net (if any)
}

// Via is a plated hole between copper layers
type Via struct {
	Position geom.Point // Via position
	Size     float64    // Via diameter
	Drill    float64    // Drill diameter
	Layers   LayerSet   // Layer pair
	Net      *Net       // Connected net
}

// Zone is a copper zone on one layer
type Zone struct {
	Net     *Net           // Connected net
	Layer   string         // Layer name
	Outline []geom.Point   // Zone outline polygon
	Fills   [][]geom.Point // Filled polygons, empty until the zone is filled
}

// TransformPosition maps a footprint-relative position onto the board by
// the footprint's rotation and translation
func (fp *Footprint) TransformPosition(relPos PositionAngle) geom.Point {
	x, y := relPos.X, relPos.Y

	// KiCad angles turn counter-clockwise on a y-down board
	if fp.Position.Angle != 0 {
		angleRad := -fp.Position.Angle * math.Pi / 180.0
		cos := math.Cos(angleRad)
		sin := math.Sin(angleRad)
		x, y = x*cos-y*sin, x*sin+y*cos
	}

	return geom.Pt(x, y).Add(fp.Position.Point())
}

// RefName returns the footprint reference, or FP<n> for the footprint at
// index when it has none
func (fp *Footprint) RefName(index int) string {
	if fp.Reference != "" {
		return fp.Reference
	}
	return fmt.Sprintf("FP%d", index+1)
}

// PlacedPad is a pad with its owning footprint and board position
type PlacedPad struct {
	Reference string
	Pad       Pad
	Position  geom.Point
}

// NetInfo is everything connected to one net
type NetInfo struct {
	Net  *Net
	Pads []PlacedPad
	Vias []Via
}

// GetNet returns a net by name, or nil if not found
func (b *Board) GetNet(name string) *Net {
	for i := range b.Nets {
		if b.Nets[i].Name == name {
			return &b.Nets[i]
		}
	}
	return nil
}

// GetNetPads returns all pads connected to a specific net, placed on the board
func (b *Board) GetNetPads(netName string) []PlacedPad {
	var pads []PlacedPad
	for i := range b.Footprints {
		fp := &b.Footprints[i]
		for _, pad := range fp.Pads {
			if pad.Net != nil && pad.Net.Name == netName {
				pads = append(pads, PlacedPad{
					Reference: fp.RefName(i),
					Pad:       pad,
					Position:  fp.TransformPosition(pad.Position),
				})
			}
		}
	}
	return pads
}

// GetNetVias returns all vias connected to a specific net
func (b *Board) GetNetVias(netName string) []Via {
	var vias []Via
	for _, via := range b.Vias {
		if via.Net != nil && via.Net.Name == netName {
			vias = append(vias, via)
		}
	}
	return vias
}

// GetNetInfo collects the pads and vias of a net, or returns nil if the
// board has no such net
func (b *Board) GetNetInfo(netName string) *NetInfo {
	net := b.GetNet(netName)
	if net == nil {
		return nil
	}
	return &NetInfo{
		Net:  net,
		Pads: b.GetNetPads(netName),
		Vias: b.GetNetVias(netName),
	}
}
