package circuit

import (
	"encoding/json"
	"fmt"

	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// ConnectivityMap maps net ids to the ids of the elements on that net.
// Nets keep the order they were added in so that drawing is repeatable.
type ConnectivityMap struct {
	order []string
	nets  map[string][]string
}

// NewConnectivityMap creates an empty connectivity map
func NewConnectivityMap() *ConnectivityMap {
	return &ConnectivityMap{nets: make(map[string][]string)}
}

// Add appends element ids to a net, creating the net on first use.
// An id already on the net is not added twice.
func (c *ConnectivityMap) Add(net string, ids ...string) {
	if c.nets == nil {
		c.nets = make(map[string][]string)
	}
	existing, ok := c.nets[net]
	if !ok {
		c.order = append(c.order, net)
	}
	for _, id := range ids {
		if !contains(existing, id) {
			existing = append(existing, id)
		}
	}
	c.nets[net] = existing
}

// Nets returns the net ids in insertion order
func (c *ConnectivityMap) Nets() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// IDsConnectedToNet returns the element ids on a net
func (c *ConnectivityMap) IDsConnectedToNet(net string) []string {
	if c == nil {
		return nil
	}
	return c.nets[net]
}

// NetForID returns the first net containing the element id
func (c *ConnectivityMap) NetForID(id string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, net := range c.order {
		if contains(c.nets[net], id) {
			return net, true
		}
	}
	return "", false
}

// Len returns the number of nets
func (c *ConnectivityMap) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// UnmarshalJSON decodes {"net": ["id", ...], ...} keeping the key order
func (c *ConnectivityMap) UnmarshalJSON(data []byte) error {
	*c = ConnectivityMap{nets: make(map[string][]string)}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid connectivity map: %w", err)
	}
	keys, err := objectKeys(data)
	if err != nil {
		return fmt.Errorf("invalid connectivity map: %w", err)
	}
	for _, net := range keys {
		c.Add(net, raw[net]...)
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// PositionIndex resolves element ids to board positions. It is built once
// per drawing pass instead of scanning the element list for every lookup.
type PositionIndex struct {
	positions map[string]geom.Point
}

// NewPositionIndex indexes the positions of pads, plated holes and vias.
// When ids collide, SMT pads win over plated holes, which win over vias.
func NewPositionIndex(elements []Element) PositionIndex {
	idx := PositionIndex{positions: make(map[string]geom.Point)}
	add := func(id string, p geom.Point) {
		if _, exists := idx.positions[id]; !exists {
			idx.positions[id] = p
		}
	}

	for _, e := range elements {
		if pad, ok := e.(SMTPad); ok {
			add(pad.SMTPadID, pad.Position())
		}
	}
	for _, e := range elements {
		if hole, ok := e.(PlatedHole); ok {
			add(hole.PlatedHoleID, hole.Position())
		}
	}
	for _, e := range elements {
		if via, ok := e.(Via); ok {
			add(via.ViaID, via.Position())
		}
	}
	return idx
}

// Lookup returns the position of an element id
func (idx PositionIndex) Lookup(id string) (geom.Point, bool) {
	p, ok := idx.positions[id]
	return p, ok
}

// Len returns the number of indexed ids
func (idx PositionIndex) Len() int {
	return len(idx.positions)
}
