package sexp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Node is either a list or an atom. Atoms are bare symbols (which include
// numbers) or quoted strings.
type Node struct {
	Pos    lexer.Position
	List   *List   `  @@`
	Quoted *string `| @String`
	Symbol *string `| @Symbol`
}

// List is a parenthesized sequence of nodes
type List struct {
	Items []*Node `"(" @@* ")"`
}

// IsList reports whether n is a list
func (n *Node) IsList() bool {
	return n != nil && n.List != nil
}

// Items returns the children of a list, or nil for an atom
func (n *Node) Items() []*Node {
	if !n.IsList() {
		return nil
	}
	return n.List.Items
}

// Value returns the text of an atom with quotes and escapes removed.
// Lists have no value.
func (n *Node) Value() string {
	switch {
	case n == nil:
		return ""
	case n.Symbol != nil:
		return *n.Symbol
	case n.Quoted != nil:
		return unquote(*n.Quoted)
	default:
		return ""
	}
}

func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			if r == 'n' {
				b.WriteRune('\n')
			} else {
				b.WriteRune(r)
			}
			escaped = false
		case r == '\\':
			escaped = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Name returns the leading symbol of a list, as in "at" for (at 1 2)
func (n *Node) Name() string {
	items := n.Items()
	if len(items) == 0 || items[0].Symbol == nil {
		return ""
	}
	return *items[0].Symbol
}

// Find returns the first child list whose name is key
func (n *Node) Find(key string) (*Node, bool) {
	for _, item := range n.Items() {
		if item.IsList() && item.Name() == key {
			return item, true
		}
	}
	return nil, false
}

// FindAll returns every child list whose name is key
func (n *Node) FindAll(key string) []*Node {
	var results []*Node
	for _, item := range n.Items() {
		if item.IsList() && item.Name() == key {
			results = append(results, item)
		}
	}
	return results
}

// HasSymbol reports whether a bare symbol appears among the children
func (n *Node) HasSymbol(symbol string) bool {
	for _, item := range n.Items() {
		if item.Symbol != nil && *item.Symbol == symbol {
			return true
		}
	}
	return false
}

// Arg returns the atom at index (0 is the list name)
func (n *Node) Arg(index int) (*Node, error) {
	items := n.Items()
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("index %d out of range for (%s ...) with %d items", index, n.Name(), len(items))
	}
	if items[index].IsList() {
		return nil, fmt.Errorf("item %d of (%s ...) is a list", index, n.Name())
	}
	return items[index], nil
}

// String returns the atom at index as text
func (n *Node) String(index int) (string, error) {
	a, err := n.Arg(index)
	if err != nil {
		return "", err
	}
	return a.Value(), nil
}

// Float returns the atom at index as a number
func (n *Node) Float(index int) (float64, error) {
	s, err := n.String(index)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", s, err)
	}
	return v, nil
}

// Int returns the atom at index as an integer
func (n *Node) Int(index int) (int, error) {
	s, err := n.String(index)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", s, err)
	}
	return v, nil
}

// Strings returns the values of every atom after the list name
func (n *Node) Strings() []string {
	items := n.Items()
	if len(items) < 2 {
		return nil
	}
	var out []string
	for _, item := range items[1:] {
		if !item.IsList() {
			out = append(out, item.Value())
		}
	}
	return out
}

// XY reads the two numbers of an (at x y) or (xy x y) style node
func (n *Node) XY() (float64, float64, error) {
	x, err := n.Float(1)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse x: %w", err)
	}
	y, err := n.Float(2)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse y: %w", err)
	}
	return x, y, nil
}

// FindFloat returns the first number of the child (key value), as in
// (roundrect_rratio 0.25)
func (n *Node) FindFloat(key string) (float64, bool) {
	child, ok := n.Find(key)
	if !ok {
		return 0, false
	}
	v, err := child.Float(1)
	return v, err == nil
}

// FindString returns the first value of the child (key value)
func (n *Node) FindString(key string) (string, bool) {
	child, ok := n.Find(key)
	if !ok {
		return "", false
	}
	v, err := child.String(1)
	return v, err == nil
}
