// Package sexp parses the s-expression syntax KiCad files are written in
// and offers helpers for walking the resulting tree.
package sexp

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer defines the lexical structure of KiCad s-expressions
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Symbol", Pattern: `[^\s()"]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type file struct {
	Nodes []*Node `@@*`
}

var parser = participle.MustBuild[file](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
)

// Parse reads every top-level expression from r
func Parse(r io.Reader) ([]*Node, error) {
	f, err := parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return f.Nodes, nil
}

// ParseString parses every top-level expression in s
func ParseString(s string) ([]*Node, error) {
	f, err := parser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return f.Nodes, nil
}

// ParseFile parses every top-level expression in a file
func ParseFile(filename string) ([]*Node, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}
