package ast

// Node is the base interface for all AST nodes
type Node interface {
	Pos() (line, col int)
}

// Statement nodes
type Statement interface {
	Node
	stmtNode()
}

// Steps is the decoded value of every step in a pattern
type Steps [16]int

// Program represents an entire $1010 source file
type Program struct {
	Body     []Statement
	Patterns map[string]*Pattern // last definition of a name wins
	Scenes   map[string]*Scene   // last definition of a name wins
}

// NewProgram returns an empty program with its indices allocated
func NewProgram() *Program {
	return &Program{
		Body:     make([]Statement, 0),
		Patterns: make(map[string]*Pattern),
		Scenes:   make(map[string]*Scene),
	}
}

func (p *Program) Pos() (int, int) {
	if len(p.Body) > 0 {
		return p.Body[0].Pos()
	}
	return 0, 0
}

// Append adds a statement to the body and indexes patterns and scenes
func (p *Program) Append(stmt Statement) {
	p.Body = append(p.Body, stmt)
	switch s := stmt.(type) {
	case *Pattern:
		p.Patterns[s.Name] = s
	case *Scene:
		p.Scenes[s.Name] = s
	}
}

// Title represents @title "text"
type Title struct {
	Value  string
	Line   int
	Column int
}

func (t *Title) Pos() (int, int) { return t.Line, t.Column }
func (t *Title) stmtNode()       {}

// Tempo represents @tempo N. Value is clamped to [20, 255] by the parser.
type Tempo struct {
	Value  int
	Line   int
	Column int
}

func (t *Tempo) Pos() (int, int) { return t.Line, t.Column }
func (t *Tempo) stmtNode()       {}

// Swing represents @swing N. Value is clamped to [0, 100] by the parser.
type Swing struct {
	Value  int
	Line   int
	Column int
}

func (s *Swing) Pos() (int, int) { return s.Line, s.Column }
func (s *Swing) stmtNode()       {}

// Pattern represents @pattern name "data"
type Pattern struct {
	Name   string
	Data   string // raw source string, as written
	Steps  Steps
	Line   int
	Column int
}

func (p *Pattern) Pos() (int, int) { return p.Line, p.Column }
func (p *Pattern) stmtNode()       {}

// Assignment binds a voice to a pattern inside a scene
type Assignment struct {
	Voice   string
	Pattern string // empty when the pattern name was missing
	Line    int
	Column  int
}

func (a *Assignment) Pos() (int, int) { return a.Line, a.Column }

// Scene represents @scene name followed by voice: pattern pairs
type Scene struct {
	Name        string
	Assignments []*Assignment
	Line        int
	Column      int
}

func (s *Scene) Pos() (int, int) { return s.Line, s.Column }
func (s *Scene) stmtNode()       {}

// VoiceAssign represents the top-level shorthand voice: pattern
type VoiceAssign struct {
	Voice   string
	Pattern string // empty when the pattern name was missing
	Line    int
	Column  int
}

func (v *VoiceAssign) Pos() (int, int) { return v.Line, v.Column }
func (v *VoiceAssign) stmtNode()       {}

// Play represents @play [scene] [loop]
type Play struct {
	Scene  string // empty when no scene is named
	Loop   bool
	Line   int
	Column int
}

func (p *Play) Pos() (int, int) { return p.Line, p.Column }
func (p *Play) stmtNode()       {}

// Stop represents @stop
type Stop struct {
	Line   int
	Column int
}

func (s *Stop) Pos() (int, int) { return s.Line, s.Column }
func (s *Stop) stmtNode()       {}

// Param represents @param voice.param value
type Param struct {
	Voice  string
	Param  string // "gate" when the target has no dotted part
	Value  int
	Line   int
	Column int
}

func (p *Param) Pos() (int, int) { return p.Line, p.Column }
func (p *Param) stmtNode()       {}

// Poke represents @poke addr value, a direct memory write
type Poke struct {
	Addr   int
	Value  int
	Line   int
	Column int
}

func (p *Poke) Pos() (int, int) { return p.Line, p.Column }
func (p *Poke) stmtNode()       {}

// Loop represents @loop N
type Loop struct {
	Count  int
	Line   int
	Column int
}

func (l *Loop) Pos() (int, int) { return l.Line, l.Column }
func (l *Loop) stmtNode()       {}

// Wait represents @wait N
type Wait struct {
	Steps  int
	Line   int
	Column int
}

func (w *Wait) Pos() (int, int) { return w.Line, w.Column }
func (w *Wait) stmtNode()       {}

// Comment represents a # or ; line comment
type Comment struct {
	Text   string
	Line   int
	Column int
}

func (c *Comment) Pos() (int, int) { return c.Line, c.Column }
func (c *Comment) stmtNode()       {}
