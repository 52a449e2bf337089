package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/lhaig/tenten/internal/ast"
	"github.com/lhaig/tenten/internal/diagnostic"
	"github.com/lhaig/tenten/internal/lexer"
)

// Defaults used when a directive operand is missing.
const (
	DefaultTitle   = "Untitled"
	DefaultTempo   = 120
	DefaultPattern = "unnamed"
	DefaultScene   = "a"
	DefaultLoop    = 1
	DefaultWait    = 16
	DefaultParam   = "gate"
)

// Tempo and swing bounds. Parsed values are clamped into range.
const (
	MinTempo = 20
	MaxTempo = 255
	MinSwing = 0
	MaxSwing = 100
)

// New creates a parser over a token stream. NEWLINE tokens are dropped;
// statements are delimited by directives, not by lines.
func New(tokens []lexer.Token) *Parser {
	filtered := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type != lexer.NEWLINE {
			filtered = append(filtered, tok)
		}
	}
	return &Parser{
		tokens: filtered,
		pos:    0,
		diags:  diagnostic.New(),
	}
}

// ParseSource lexes and parses source in one call. Lexer diagnostics are
// tagged with the lexer phase and parser diagnostics with the parser phase.
// When the lexer reports an error the program is nil.
func ParseSource(source string) (*ast.Program, *diagnostic.Diagnostics) {
	tokens, lexDiags := lexer.Tokenize(source)
	lexDiags.Tag(diagnostic.PhaseLexer)
	if lexDiags.HasErrors() {
		return nil, lexDiags
	}

	p := New(tokens)
	prog := p.Parse()
	return prog, p.Diagnostics().Tag(diagnostic.PhaseParser)
}

// Diagnostics returns the parser's diagnostics
func (p *Parser) Diagnostics() *diagnostic.Diagnostics {
	return p.diags
}

// Parse parses the token stream into a Program AST. Errors do not stop the
// parse; every problem in the input is reported.
func (p *Parser) Parse() *ast.Program {
	p.prog = ast.NewProgram()
	for !p.check(lexer.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			p.prog.Append(stmt)
		}
	}
	return p.prog
}

func (p *Parser) parseStatement() ast.Statement {
	tok := p.current()

	switch tok.Type {
	case lexer.COMMENT:
		p.advance()
		return &ast.Comment{Text: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.DIRECTIVE:
		return p.parseDirective()
	case lexer.IDENT:
		return p.parseVoiceAssign()
	}

	p.advance()
	return nil
}

func (p *Parser) parseDirective() ast.Statement {
	directive := p.advance()

	switch directive.Literal {
	case "title":
		return p.parseTitle(directive)
	case "tempo":
		return p.parseTempo(directive)
	case "swing":
		return p.parseSwing(directive)
	case "pattern":
		return p.parsePattern(directive)
	case "scene":
		return p.parseScene(directive)
	case "play":
		return p.parsePlay(directive)
	case "stop":
		return &ast.Stop{Line: directive.Line, Column: directive.Column}
	case "param":
		return p.parseParam(directive)
	case "poke":
		return p.parsePoke(directive)
	case "loop":
		return p.parseLoop(directive)
	case "wait":
		return p.parseWait(directive)
	}

	hint := diagnostic.DidYouMean(directive.Literal, directiveNames, func(s string) string { return "@" + s })
	p.diags.ErrorWithHint(directive.Line, directive.Column, "Unknown directive: @"+directive.Literal, hint)
	return nil
}

// parseTitle parses: @title "text"
func (p *Parser) parseTitle(directive lexer.Token) ast.Statement {
	value := DefaultTitle
	if str, ok := p.expect(lexer.STRING, "Expected string after @title"); ok {
		value = str.Literal
	}
	return &ast.Title{Value: value, Line: directive.Line, Column: directive.Column}
}

// parseTempo parses: @tempo N
func (p *Parser) parseTempo(directive lexer.Token) ast.Statement {
	value := DefaultTempo
	if num, ok := p.expect(lexer.NUMBER, "Expected number after @tempo"); ok {
		value = num.Value
	}
	if value < MinTempo || value > MaxTempo {
		p.diags.Warningf(directive.Line, directive.Column, "Tempo %d out of range (%d-%d)", value, MinTempo, MaxTempo)
	}
	return &ast.Tempo{Value: clamp(value, MinTempo, MaxTempo), Line: directive.Line, Column: directive.Column}
}

// parseSwing parses: @swing N
func (p *Parser) parseSwing(directive lexer.Token) ast.Statement {
	value := 0
	if num, ok := p.expect(lexer.NUMBER, "Expected number after @swing"); ok {
		value = num.Value
	}
	if value < MinSwing || value > MaxSwing {
		p.diags.Warningf(directive.Line, directive.Column, "Swing %d out of range (%d-%d)", value, MinSwing, MaxSwing)
	}
	return &ast.Swing{Value: clamp(value, MinSwing, MaxSwing), Line: directive.Line, Column: directive.Column}
}

// parsePattern parses: @pattern name "data"
func (p *Parser) parsePattern(directive lexer.Token) ast.Statement {
	name := DefaultPattern
	if tok, ok := p.expect(lexer.IDENT, "Expected pattern name"); ok {
		name = tok.Literal
	}
	data := ""
	if tok, ok := p.expect(lexer.STRING, "Expected pattern string"); ok {
		data = tok.Literal
	}

	if n := utf8.RuneCountInString(data); n != 16 && n != 0 {
		p.diags.Warningf(directive.Line, directive.Column, "Pattern %q has %d chars (expected 16)", name, n)
	}

	return &ast.Pattern{
		Name:   name,
		Data:   data,
		Steps:  DecodePattern(data),
		Line:   directive.Line,
		Column: directive.Column,
	}
}

// parseScene parses: @scene name followed by any number of voice: pattern
// pairs. An identifier without a colon is skipped.
func (p *Parser) parseScene(directive lexer.Token) ast.Statement {
	name := DefaultScene
	if tok, ok := p.expect(lexer.IDENT, "Expected scene name"); ok {
		name = tok.Literal
	}

	scene := &ast.Scene{
		Name:        name,
		Assignments: make([]*ast.Assignment, 0),
		Line:        directive.Line,
		Column:      directive.Column,
	}

	for p.check(lexer.IDENT) {
		voice := p.advance()
		if !p.check(lexer.COLON) {
			continue
		}
		p.advance()
		pattern := ""
		if tok, ok := p.expect(lexer.IDENT, "Expected pattern name"); ok {
			pattern = tok.Literal
		}
		scene.Assignments = append(scene.Assignments, &ast.Assignment{
			Voice:   voice.Literal,
			Pattern: pattern,
			Line:    voice.Line,
			Column:  voice.Column,
		})
	}

	return scene
}

// parsePlay parses: @play [scene] [loop]. The first identifier is always
// the scene, so a lone "@play loop" names a scene called loop.
func (p *Parser) parsePlay(directive lexer.Token) ast.Statement {
	play := &ast.Play{Line: directive.Line, Column: directive.Column}

	if p.check(lexer.IDENT) {
		play.Scene = p.advance().Literal
		if p.check(lexer.IDENT) && p.current().Literal == "loop" {
			p.advance()
			play.Loop = true
		}
	}

	return play
}

// parseParam parses: @param voice.param value
func (p *Parser) parseParam(directive lexer.Token) ast.Statement {
	target, hasTarget := p.expect(lexer.IDENT, "Expected param target")
	param := &ast.Param{Line: directive.Line, Column: directive.Column}
	if num, ok := p.expect(lexer.NUMBER, "Expected param value"); ok {
		param.Value = num.Value
	}

	if hasTarget {
		parts := strings.Split(target.Literal, ".")
		param.Voice = parts[0]
		param.Param = DefaultParam
		if len(parts) > 1 && parts[1] != "" {
			param.Param = parts[1]
		}
	}

	return param
}

// parsePoke parses: @poke addr value
func (p *Parser) parsePoke(directive lexer.Token) ast.Statement {
	poke := &ast.Poke{Line: directive.Line, Column: directive.Column}
	if addr, ok := p.expect(lexer.NUMBER, "Expected address"); ok {
		poke.Addr = addr.Value
	}
	if value, ok := p.expect(lexer.NUMBER, "Expected value"); ok {
		poke.Value = value.Value
	}
	return poke
}

// parseLoop parses: @loop N
func (p *Parser) parseLoop(directive lexer.Token) ast.Statement {
	count := DefaultLoop
	if num, ok := p.expect(lexer.NUMBER, "Expected loop count"); ok {
		count = num.Value
	}
	return &ast.Loop{Count: count, Line: directive.Line, Column: directive.Column}
}

// parseWait parses: @wait N
func (p *Parser) parseWait(directive lexer.Token) ast.Statement {
	steps := DefaultWait
	if num, ok := p.expect(lexer.NUMBER, "Expected step count"); ok {
		steps = num.Value
	}
	return &ast.Wait{Steps: steps, Line: directive.Line, Column: directive.Column}
}

// parseVoiceAssign parses the shorthand voice: pattern. An identifier that
// is not followed by a colon produces no statement.
func (p *Parser) parseVoiceAssign() ast.Statement {
	if p.peek().Type != lexer.COLON {
		p.advance()
		return nil
	}

	voice := p.advance()
	p.advance() // consume ':'
	pattern := ""
	if tok, ok := p.expect(lexer.IDENT, "Expected pattern name"); ok {
		pattern = tok.Literal
	}
	return &ast.VoiceAssign{Voice: voice.Literal, Pattern: pattern, Line: voice.Line, Column: voice.Column}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
