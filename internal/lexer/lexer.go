package lexer

import (
	"strings"

	"github.com/lhaig/tenten/internal/diagnostic"
)

// maxLiteral saturates numeric literals so oversized input still yields a
// value the linter can reject.
const maxLiteral = 1<<31 - 1

// Lexer scans $1010 source and produces tokens
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number
	diagnostics  *diagnostic.Diagnostics
}

// New creates a new Lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		input:       input,
		line:        1,
		column:      0,
		diagnostics: diagnostic.New(),
	}
	l.readChar()
	return l
}

// Diagnostics returns the lexer errors collected so far
func (l *Lexer) Diagnostics() *diagnostic.Diagnostics {
	return l.diagnostics
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// skipWhitespace skips spaces, tabs and carriage returns. Newlines are tokens.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// readIdentifier reads [A-Za-z0-9_-]*. With dotted set, a '.' followed by a
// letter or '_' continues the identifier, so "kick.gate" is one token.
func (l *Lexer) readIdentifier(dotted bool) string {
	position := l.position
	for !l.atEnd() {
		if isIdentChar(l.ch) {
			l.readChar()
			continue
		}
		if dotted && l.ch == '.' && isLetter(l.peekChar()) {
			l.readChar()
			continue
		}
		break
	}
	return l.input[position:l.position]
}

// readNumber reads 0x-prefixed hex, $-prefixed hex or signed decimal.
func (l *Lexer) readNumber() (string, int) {
	position := l.position

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		start := l.position
		for !l.atEnd() && isHexDigit(l.ch) {
			l.readChar()
		}
		return l.input[position:l.position], parseDigits(l.input[start:l.position], 16)
	}

	if l.ch == '$' {
		l.readChar()
		start := l.position
		for !l.atEnd() && isHexDigit(l.ch) {
			l.readChar()
		}
		return l.input[position:l.position], parseDigits(l.input[start:l.position], 16)
	}

	negative := false
	if l.ch == '-' {
		negative = true
		l.readChar()
	}
	start := l.position
	for !l.atEnd() && isDigit(l.ch) {
		l.readChar()
	}
	value := parseDigits(l.input[start:l.position], 10)
	if negative {
		value = -value
	}
	return l.input[position:l.position], value
}

// readString reads a string delimited by quote. The string may not span
// lines; an unterminated string is reported and its partial content kept.
func (l *Lexer) readString(quote byte) string {
	l.readChar() // consume opening quote
	position := l.position

	for !l.atEnd() && l.ch != quote && l.ch != '\n' {
		l.readChar()
	}
	value := l.input[position:l.position]

	if !l.atEnd() && l.ch == quote {
		l.readChar()
	} else {
		l.diagnostics.Errorf(l.line, l.column, "Unterminated string")
	}
	return value
}

// readComment reads to end of line after the comment marker.
func (l *Lexer) readComment() string {
	l.readChar() // consume '#' or ';'
	position := l.position
	for !l.atEnd() && l.ch != '\n' {
		l.readChar()
	}
	return strings.TrimSpace(l.input[position:l.position])
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()

		line, col := l.line, l.column
		if l.atEnd() {
			return Token{Type: EOF, Line: line, Column: col}
		}

		switch {
		case l.ch == '\n':
			l.readChar()
			return Token{Type: NEWLINE, Literal: "\n", Line: line, Column: col}

		case l.ch == '#' || l.ch == ';':
			text := l.readComment()
			return Token{Type: COMMENT, Literal: text, Line: line, Column: col}

		case l.ch == '@':
			l.readChar()
			name := l.readIdentifier(false)
			return Token{Type: DIRECTIVE, Literal: strings.ToLower(name), Line: line, Column: col}

		case l.ch == '"' || l.ch == '\'':
			value := l.readString(l.ch)
			return Token{Type: STRING, Literal: value, Line: line, Column: col}

		case isDigit(l.ch) || l.ch == '$' || (l.ch == '-' && isDigit(l.peekChar())):
			literal, value := l.readNumber()
			return Token{Type: NUMBER, Literal: literal, Value: value, Line: line, Column: col}

		case l.ch == ':':
			l.readChar()
			return Token{Type: COLON, Literal: ":", Line: line, Column: col}

		case isLetter(l.ch):
			ident := l.readIdentifier(true)
			return Token{Type: IDENT, Literal: strings.ToLower(ident), Line: line, Column: col}
		}

		// Unknown characters are dropped without a diagnostic.
		l.readChar()
	}
}

// Tokenize returns all tokens from the input, ending with EOF
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens
}

// Tokenize is a convenience wrapper that lexes source in one call.
func Tokenize(source string) ([]Token, *diagnostic.Diagnostics) {
	l := New(source)
	tokens := l.Tokenize()
	return tokens, l.Diagnostics()
}

// Helper functions

func parseDigits(digits string, base int) int {
	value := 0
	for i := 0; i < len(digits); i++ {
		value = value*base + digitValue(digits[i])
		if value > maxLiteral {
			return maxLiteral
		}
	}
	return value
}

func digitValue(ch byte) int {
	switch {
	case isDigit(ch):
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'F':
		return int(ch-'A') + 10
	}
	return 0
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '-'
}
