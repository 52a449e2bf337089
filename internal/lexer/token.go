package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	EOF TokenType = iota

	DIRECTIVE // @tempo, @pattern
	IDENT     // kick, kickp, kick.gate
	STRING    // "x...x..."
	NUMBER    // 120, 0x1000, $1000, -3
	COMMENT   // # ... or ; ...
	NEWLINE
	COLON // :
)

// Token represents a lexical token.
//
// Literal holds the lower-cased name for DIRECTIVE and IDENT, the raw
// content for STRING, the trimmed text for COMMENT and the source text for
// NUMBER. Value holds the decoded value of a NUMBER.
type Token struct {
	Type    TokenType
	Literal string
	Value   int
	Line    int
	Column  int
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case DIRECTIVE:
		return "DIRECTIVE"
	case IDENT:
		return "IDENT"
	case STRING:
		return "STRING"
	case NUMBER:
		return "NUMBER"
	case COMMENT:
		return "COMMENT"
	case NEWLINE:
		return "NEWLINE"
	case COLON:
		return "COLON"
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}

// String renders a token for debugging and dumps.
func (t Token) String() string {
	switch t.Type {
	case NUMBER:
		return fmt.Sprintf("%d:%d %s %d", t.Line, t.Column, t.Type, t.Value)
	case NEWLINE, COLON, EOF:
		return fmt.Sprintf("%d:%d %s", t.Line, t.Column, t.Type)
	default:
		return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Type, t.Literal)
	}
}
