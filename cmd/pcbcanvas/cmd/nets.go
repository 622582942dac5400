package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/pcbcanvas/internal/render"
	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/kicad/pcb"
	"github.com/OpenTraceLab/pcbcanvas/pkg/renderer"
)

var netsCmd = &cobra.Command{
	Use:   "nets <input> [net_name]",
	Short: "Show net information",
	Long: `Display information about the nets of a board.

Without net_name: Lists all nets with element and rats nest line counts
With net_name: Shows the elements of that net and its rats nest lines;
for KiCad boards the pads and vias of the net are listed`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runNets,
}

func init() {
	rootCmd.AddCommand(netsCmd)
}

func runNets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) >= 2 && render.IsKiCadBoard(args[0]) {
		board, err := pcb.NewParser(logger).ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("error parsing board: %w", err)
		}
		return showBoardNetDetails(out, board, args[1])
	}

	doc, err := render.LoadDocument(args[0], logger)
	if err != nil {
		return err
	}

	if len(args) >= 2 {
		return showNetDetails(out, doc, args[1])
	}

	listAllNets(out, doc)
	return nil
}

func listAllNets(w io.Writer, doc *circuit.Document) {
	conn := doc.Connectivity
	lines := renderer.RatsNestLines(doc.Elements, conn)
	perNet := make(map[string]int)
	for _, line := range lines {
		perNet[line.Net]++
	}

	fmt.Fprintf(w, "Board: %d nets\n\n", conn.Len())
	fmt.Fprintf(w, "%-30s %8s %8s\n", "Net Name", "Elements", "Lines")
	fmt.Fprintln(w, "────────────────────────────────────────────────")

	netNames := conn.Nets()
	sort.Strings(netNames)

	for _, net := range netNames {
		fmt.Fprintf(w, "%-30s %8d %8d\n", net, len(conn.IDsConnectedToNet(net)), perNet[net])
	}
}

func showNetDetails(w io.Writer, doc *circuit.Document, net string) error {
	ids := doc.Connectivity.IDsConnectedToNet(net)
	if len(ids) == 0 {
		return fmt.Errorf("net '%s' not found", net)
	}

	index := circuit.NewPositionIndex(doc.Elements)

	fmt.Fprintf(w, "Net: %s\n\n", net)
	fmt.Fprintf(w, "Elements (%d):\n", len(ids))
	for _, id := range ids {
		if p, ok := index.Lookup(id); ok {
			fmt.Fprintf(w, "  %-20s at (%.2f, %.2f)\n", id, p.X, p.Y)
		} else {
			fmt.Fprintf(w, "  %-20s (no position)\n", id)
		}
	}

	printRatsNest(w, doc, net, ids)
	return nil
}

func showBoardNetDetails(w io.Writer, board *pcb.Board, netName string) error {
	info := board.GetNetInfo(netName)
	if info == nil {
		return fmt.Errorf("net '%s' not found", netName)
	}

	fmt.Fprintf(w, "Net: %s (number %d)\n\n", info.Net.Name, info.Net.Number)

	// Show pads
	fmt.Fprintf(w, "Pads (%d):\n", len(info.Pads))
	for _, p := range info.Pads {
		fmt.Fprintf(w, "  Pad %-8s: %s %.2f×%.2f mm at (%.2f, %.2f)\n",
			p.Reference+"-"+p.Pad.Number, p.Pad.Shape,
			p.Pad.Size.Width, p.Pad.Size.Height,
			p.Position.X, p.Position.Y)
	}

	// Show vias
	fmt.Fprintf(w, "\nVias (%d):\n", len(info.Vias))
	for i, via := range info.Vias {
		fmt.Fprintf(w, "  Via %d: %.2f mm diameter, %.2f mm drill at (%.2f, %.2f)\n",
			i+1, via.Size, via.Drill,
			via.Position.X, via.Position.Y)
	}

	doc := board.Document()
	printRatsNest(w, doc, netName, doc.Connectivity.IDsConnectedToNet(netName))
	return nil
}

func printRatsNest(w io.Writer, doc *circuit.Document, net string, ids []string) {
	conn := circuit.NewConnectivityMap()
	conn.Add(net, ids...)
	lines := renderer.RatsNestLines(doc.Elements, conn)
	fmt.Fprintf(w, "\nRats nest (%d):\n", len(lines))
	for i, line := range lines {
		fmt.Fprintf(w, "  Line %d: (%.2f, %.2f) to (%.2f, %.2f)\n",
			i+1, line.From.X, line.From.Y, line.To.X, line.To.Y)
	}
}
