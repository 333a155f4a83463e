package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Date", Pattern: `\d{4}-\d{2}(?:-\d{2})?`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px|pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Range", Pattern: `\.\.`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),=:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	tokenNames       = invertSymbols(dslLexer.Symbols())
	newlineTokenType = mustTokenType("Newline")
	lbraceTokenType  = mustTokenType("LBrace")
	rbraceTokenType  = mustTokenType("RBrace")
	symbolTokenType  = mustTokenType("Symbol")
	stringTokenType  = mustTokenType("String")

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
		participle.UseLookahead(2),
	)
)

// Document is the root AST node of a timeline chart file.
type Document struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"Newline* 'timeline' ( @String | @Ident )?"`
	Body *Block         `parser:"@@ Newline*"`
}

// Title returns the chart name without surrounding quotes.
func (d *Document) Title() string {
	if d == nil {
		return ""
	}
	if s, err := strconv.Unquote(d.Name); err == nil {
		return s
	}
	return d.Name
}

// Block is a delimited list of statements.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a block (assignment or command).
type Statement struct {
	Assignment *Assignment `parser:"  @@"`
	Command    *Command    `parser:"| @@"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' @@"`
}

// Command is a named statement with loose arguments and an optional block,
// eg `section "Work" #3366cc { ... }` or `entry 2010-02 present { ... }`.
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Lexeme      `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// Value is an array, a scalar, or a scalar range `low .. high`.
type Value struct {
	Array *ArrayValue `parser:"  @@"`
	Low   *Scalar     `parser:"| @@"`
	High  *Scalar     `parser:"  ( '..' @@ )?"`
}

// IsRange reports whether the value was written as `low .. high`.
func (v *Value) IsRange() bool { return v != nil && v.Low != nil && v.High != nil }

// Scalars flattens the value into its scalar parts.
func (v *Value) Scalars() []*Scalar {
	switch {
	case v == nil:
		return nil
	case v.Array != nil:
		return v.Array.Values
	case v.High != nil:
		return []*Scalar{v.Low, v.High}
	case v.Low != nil:
		return []*Scalar{v.Low}
	}
	return nil
}

// ArrayValue captures `[ ... ]` expressions.
type ArrayValue struct {
	Values []*Scalar `parser:"'[' Newline* ( @@ ( (',' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// Scalar is a single literal value.
type Scalar struct {
	String *StringLiteral `parser:"  @String"`
	Date   *string        `parser:"| @Date"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
}

// Text returns the literal text of the scalar.
func (s *Scalar) Text() string {
	switch {
	case s == nil:
		return ""
	case s.String != nil:
		return string(*s.String)
	case s.Date != nil:
		return *s.Date
	case s.Number != nil:
		return *s.Number
	case s.Color != nil:
		return *s.Color
	case s.Ident != nil:
		return *s.Ident
	}
	return ""
}

// Lexeme captures a single lexical token (used by command arguments).
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// Parse implements participle.Parseable so Lexeme can act as a grammar atom.
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if shouldStopArg(tok) {
		return participle.NextMatch
	}
	next := lex.Next()
	lexeme, err := newLexeme(*next)
	if err != nil {
		return err
	}
	*l = lexeme
	return nil
}

// Is reports whether the lexeme has the given token type name.
func (l *Lexeme) Is(typ string) bool { return l != nil && strings.EqualFold(l.Type, typ) }

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

// Parse parses a chart file from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses a chart file held in a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

func shouldStopArg(tok *lexer.Token) bool {
	if tok == nil || tok.EOF() {
		return true
	}
	switch tok.Type {
	case newlineTokenType, rbraceTokenType, lbraceTokenType:
		return true
	case symbolTokenType:
		return tok.Value == ";"
	default:
		return false
	}
}

func newLexeme(tok lexer.Token) (Lexeme, error) {
	name, ok := tokenNames[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	val := tok.Value
	if tok.Type == stringTokenType {
		unquoted, err := strconv.Unquote(tok.Value)
		if err != nil {
			return Lexeme{}, err
		}
		val = unquoted
	}
	return Lexeme{
		Type:  name,
		Value: val,
		Raw:   tok.Value,
		Pos:   tok.Pos,
	}, nil
}

func invertSymbols(symbols map[string]lexer.TokenType) map[lexer.TokenType]string {
	out := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		out[tt] = name
	}
	return out
}

func mustTokenType(name string) lexer.TokenType {
	symbols := dslLexer.Symbols()
	tt, ok := symbols[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
