// Package dsl parses and compiles vellum sheet files: declarative documents
// naming fonts, styles and aligned text blocks.
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	sheetLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		// 备选分支按长度降序排列：正则取第一个命中的分支，
		// 否则 #rrggbb 会被切成 Color("#rgb") + Number。
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:-?\d+\.\d+|-?\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;,=]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(sheetLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root AST node for a sheet file.
type Document struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    string         `parser:"Newline* 'sheet' @Ident"`
	Version string         `parser:"@Ident"`
	Decls   []*Decl        `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Decl is one top-level declaration (size/font/style/text).
type Decl struct {
	Size  *SizeDecl  `parser:"  @@"`
	Font  *FontDecl  `parser:"| @@"`
	Style *StyleDecl `parser:"| @@"`
	Text  *TextDecl  `parser:"| @@"`
}

// Kind returns the human-readable declaration type.
func (d *Decl) Kind() string {
	switch {
	case d == nil:
		return "unknown"
	case d.Size != nil:
		return "size"
	case d.Font != nil:
		return "font"
	case d.Style != nil:
		return "style"
	case d.Text != nil:
		return "text"
	default:
		return "unknown"
	}
}

// SizeDecl sets the page size, e.g. `size 210mm 297mm`.
type SizeDecl struct {
	Width  string `parser:"'size' @Number"`
	Height string `parser:"@Number"`
}

// FontDecl registers a named font source.
type FontDecl struct {
	Name  string `parser:"'font' @Ident"`
	Block *Block `parser:"@@"`
}

// StyleDecl declares a named, possibly inherited text style.
type StyleDecl struct {
	Name  string `parser:"'style' @Ident"`
	Block *Block `parser:"@@"`
}

// TextDecl declares a positioned text block with styled spans.
type TextDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"'text' @Ident"`
	At    *AtClause      `parser:"( @@ )?"`
	Box   *BoxClause     `parser:"( @@ )?"`
	Align *AlignClause   `parser:"( @@ )?"`
	Block *Block         `parser:"@@"`
}

// AtClause anchors a text block, e.g. `at 105mm 40mm`.
type AtClause struct {
	X string `parser:"'at' @Number"`
	Y string `parser:"@Number"`
}

// BoxClause gives a text block explicit bounds, e.g. `box 180mm 12mm`.
type BoxClause struct {
	Width  string `parser:"'box' @Number"`
	Height string `parser:"@Number"`
}

// AlignClause sets alignment keywords, e.g. `align center bottom`.
// The vertical keyword is optional and defaults to top.
type AlignClause struct {
	Horizontal string `parser:"'align' @Ident"`
	Vertical   string `parser:"( @Ident )?"`
}

// Block is a delimited list of statements.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a block: a styled span, an assignment, or a bare string.
type Statement struct {
	Span       *Span        `parser:"  @@"`
	Assignment *Assignment  `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Span is one styled run inside a text block, e.g. `span Title "hello "`.
type Span struct {
	Style string        `parser:"'span' @Ident"`
	Value StringLiteral `parser:"@String"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// TextLiteral is a bare string statement inside a text block.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value represents generic property values.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
}

// Text returns the raw textual form of the value.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses sheet content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses sheet content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
