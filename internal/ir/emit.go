package ir

// DefaultTitle is printed in generated headers when no title is given.
const DefaultTitle = "Untitled"

// DefaultTempo is the tempo label used when none is given.
const DefaultTempo = 120

// EmitOptions carries the metadata backends print into generated output.
// Neither field changes the memory effects of a program.
type EmitOptions struct {
	Title string
	Tempo int
}

// WithDefaults returns a copy with empty fields set to their defaults.
func (o EmitOptions) WithDefaults() EmitOptions {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Tempo == 0 {
		o.Tempo = DefaultTempo
	}
	return o
}
