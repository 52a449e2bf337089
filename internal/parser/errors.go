package parser

import (
	"github.com/lhaig/tenten/internal/ast"
	"github.com/lhaig/tenten/internal/diagnostic"
	"github.com/lhaig/tenten/internal/lexer"
)

// directiveNames lists every directive the parser dispatches on
var directiveNames = []string{
	"title", "tempo", "swing", "pattern", "scene", "play",
	"stop", "param", "poke", "loop", "wait",
}

// Parser holds the parser state
type Parser struct {
	tokens []lexer.Token
	pos    int
	diags  *diagnostic.Diagnostics
	prog   *ast.Program
}

// current returns the current token
func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

// peek returns the next token without consuming
func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos+1]
}

// advance moves to the next token and returns the consumed token
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches the expected type.
// Otherwise it reports msg at the current token and consumes nothing.
func (p *Parser) expect(tt lexer.TokenType, msg string) (lexer.Token, bool) {
	tok := p.current()
	if tok.Type != tt {
		p.diags.Errorf(tok.Line, tok.Column, "%s", msg)
		return tok, false
	}
	return p.advance(), true
}

// check returns true if the current token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}
