// Package pcb imports KiCad .kicad_pcb boards into the circuit model the
// renderer draws.
package pcb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/pcbcanvas/pkg/kicad/sexp"
)

// Minimum supported KiCad version (6.0 = 20211014)
const MinSupportedVersion = 20211014

// ErrNotBoard is returned when the input parses but is not a KiCad board
var ErrNotBoard = errors.New("not a KiCad PCB file")

// Parser handles parsing of KiCad board files
type Parser struct {
	logger *log.Logger
}

// NewParser creates a new KiCad board parser. Items that fail to parse
// are skipped and reported to logger at warn level; a nil logger discards.
func NewParser(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Parser{logger: logger}
}

// ParseFile reads and parses a KiCad board file
func ParseFile(filename string) (*Board, error) {
	return NewParser(nil).ParseFile(filename)
}

// Parse reads and parses a KiCad board from an io.Reader
func Parse(r io.Reader) (*Board, error) {
	return NewParser(nil).Parse(r)
}

// ParseString parses a KiCad board held in memory
func ParseString(s string) (*Board, error) {
	return NewParser(nil).Parse(strings.NewReader(s))
}

// ParseFile reads and parses a KiCad board file
func (p *Parser) ParseFile(filename string) (*Board, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads and parses a KiCad board from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Board, error) {
	nodes, err := sexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrNotBoard)
	}

	// The root should be a (kicad_pcb ...) expression
	root := nodes[0]
	if name := root.Name(); name != "kicad_pcb" {
		return nil, fmt.Errorf("%w: expected 'kicad_pcb', got '%s'", ErrNotBoard, name)
	}

	version, generator, err := parseHeader(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	board := &Board{
		Version:   version,
		Generator: generator,
	}

	nets, err := parseNets(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse nets: %w", err)
	}
	board.Nets = nets

	// Create net map for lookups
	netMap := NewNetMap(board.Nets)

	board.Footprints = p.parseFootprints(root, netMap)
	board.Vias = p.parseVias(root, netMap)
	board.Zones = p.parseZones(root, netMap)

	p.logger.Debug("parsed board",
		"version", board.Version,
		"nets", len(board.Nets),
		"footprints", len(board.Footprints),
		"vias", len(board.Vias),
		"zones", len(board.Zones))

	return board, nil
}

// parseHeader extracts version and generator information from the root node
// Expected format: (kicad_pcb (version 20221018) (generator pcbnew) ...)
func parseHeader(root *sexp.Node) (version int, generator string, err error) {
	versionNode, found := root.Find("version")
	if !found {
		return 0, "", fmt.Errorf("missing required 'version' field")
	}

	ver, err := versionNode.Int(1)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}

	// Validate version (must be KiCad 6.0 or later)
	if ver < MinSupportedVersion {
		return 0, "", fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 6.0)", ver, MinSupportedVersion)
	}

	gen := "unknown"
	if name, ok := root.FindString("generator"); ok {
		gen = name
	} else if name, ok := root.FindString("host"); ok {
		gen = name
	}

	return ver, gen, nil
}

// parseNets extracts net definitions from the root node
// Expected format: (net 0 "") (net 1 "GND") (net 2 "+5V") ...
func parseNets(root *sexp.Node) ([]Net, error) {
	netNodes := root.FindAll("net")
	nets := make([]Net, 0, len(netNodes))

	for _, netNode := range netNodes {
		number, err := netNode.Int(1)
		if err != nil {
			return nil, fmt.Errorf("failed to parse net number: %w", err)
		}

		// Name is optional (net 0 often has empty name)
		name, _ := netNode.String(2)

		nets = append(nets, Net{
			Number: number,
			Name:   name,
		})
	}

	return nets, nil
}

// lookupNet resolves (net 3 "GND"), (net 3) or (net "GND") against netMap
func lookupNet(node *sexp.Node, netMap *NetMap) *Net {
	netNode, found := node.Find("net")
	if !found || netMap == nil {
		return nil
	}
	if num, err := netNode.Int(1); err == nil {
		if netMap.IsUnconnected(num) {
			return nil
		}
		if net, ok := netMap.GetByNumber(num); ok {
			return net
		}
		return nil
	}
	if name, err := netNode.String(1); err == nil {
		if net, ok := netMap.GetByName(name); ok {
			return net
		}
	}
	return nil
}

// parseVias extracts all vias from the root node
// Expected format: (via (at x y) (size d) (drill d) (layers "F.Cu" "B.Cu") (net n))
func (p *Parser) parseVias(root *sexp.Node, netMap *NetMap) []Via {
	viaNodes := root.FindAll("via")
	vias := make([]Via, 0, len(viaNodes))

	for i, viaNode := range viaNodes {
		via, err := parseVia(viaNode, netMap)
		if err != nil {
			p.logger.Warn("skipping via", "index", i, "err", err)
			continue
		}
		vias = append(vias, *via)
	}

	return vias
}

func parseVia(node *sexp.Node, netMap *NetMap) (*Via, error) {
	via := &Via{}

	atNode, found := node.Find("at")
	if !found {
		return nil, fmt.Errorf("missing required 'at' position")
	}
	x, y, err := atNode.XY()
	if err != nil {
		return nil, err
	}
	via.Position.X, via.Position.Y = x, y

	size, ok := node.FindFloat("size")
	if !ok {
		return nil, fmt.Errorf("missing required 'size' field")
	}
	via.Size = size

	if drill, ok := node.FindFloat("drill"); ok {
		via.Drill = drill
	}

	if layersNode, found := node.Find("layers"); found {
		via.Layers = LayerSet(layersNode.Strings())
	}

	via.Net = lookupNet(node, netMap)
	return via, nil
}
