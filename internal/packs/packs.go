// Package packs holds the preset catalog of classic drum machines and
// synths. A pack is a list of register pokes plus named step patterns; both
// are written through a Poker, so a pack can seed a runtime host directly or
// be rendered as $1010 source.
package packs

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lhaig/tenten/internal/diagnostic"
	"github.com/lhaig/tenten/internal/memmap"
)

//go:embed packs.yaml
var catalogYAML []byte

// Poker receives register writes.
type Poker interface {
	Poke(addr, value int)
}

// PokerFunc adapts a function to the Poker interface.
type PokerFunc func(addr, value int)

// Poke calls f(addr, value).
func (f PokerFunc) Poke(addr, value int) { f(addr, value) }

// Poke is one register write applied when a pack loads.
type Poke struct {
	Addr  int `yaml:"addr"`
	Value int `yaml:"value"`
}

// Pattern is a named preset. Voice strings use the pack step grammar
// parsed by ParsePattern; an empty string leaves the voice untouched.
type Pattern struct {
	Name  string `yaml:"name"`
	BPM   int    `yaml:"bpm"`
	Kick  string `yaml:"kick"`
	Snare string `yaml:"snare"`
	Lead  string `yaml:"lead"`
	Bass  string `yaml:"bass"`
	Noise string `yaml:"noise"`
}

// Voice returns the step string for a voice name, or "".
func (p *Pattern) Voice(name string) string {
	switch name {
	case "kick":
		return p.Kick
	case "snare":
		return p.Snare
	case "lead":
		return p.Lead
	case "bass":
		return p.Bass
	case "noise":
		return p.Noise
	default:
		return ""
	}
}

// Pack is one catalog entry.
type Pack struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Category     string    `yaml:"category"`
	Year         int       `yaml:"year"`
	Manufacturer string    `yaml:"manufacturer"`
	Description  string    `yaml:"description"`
	Teaches      []string  `yaml:"teaches"`
	Init         []Poke    `yaml:"init"`
	Patterns     []Pattern `yaml:"patterns"`
}

// Pattern looks up a pattern by name.
func (p *Pack) Pattern(name string) (*Pattern, bool) {
	for i := range p.Patterns {
		if p.Patterns[i].Name == name {
			return &p.Patterns[i], true
		}
	}
	return nil, false
}

// PatternNames lists the pack's patterns in catalog order.
func (p *Pack) PatternNames() []string {
	names := make([]string, len(p.Patterns))
	for i, pat := range p.Patterns {
		names[i] = pat.Name
	}
	return names
}

// Catalog is an ordered, read-only set of packs.
type Catalog struct {
	packs []*Pack
	byID  map[string]*Pack
}

// Parse decodes a YAML catalog. Every pack needs a unique id, init pokes
// must address the audio region with byte values, and pattern names must be
// unique within a pack.
func Parse(data []byte) (*Catalog, error) {
	var packs []*Pack
	if err := yaml.Unmarshal(data, &packs); err != nil {
		return nil, errors.Wrap(err, "decoding pack catalog")
	}

	c := &Catalog{byID: make(map[string]*Pack, len(packs))}
	for i, p := range packs {
		if p.ID == "" {
			return nil, errors.Errorf("pack %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, errors.Errorf("duplicate pack id %q", p.ID)
		}
		if err := validate(p); err != nil {
			return nil, errors.Wrapf(err, "pack %s", p.ID)
		}
		c.packs = append(c.packs, p)
		c.byID[p.ID] = p
	}
	return c, nil
}

func validate(p *Pack) error {
	for _, pk := range p.Init {
		if !memmap.InAudioRegion(pk.Addr) {
			return errors.Errorf("init address $%04X outside audio region", pk.Addr)
		}
		if pk.Value < 0 || pk.Value > 255 {
			return errors.Errorf("init value %d at $%04X out of byte range", pk.Value, pk.Addr)
		}
	}
	seen := make(map[string]bool, len(p.Patterns))
	for _, pat := range p.Patterns {
		if seen[pat.Name] {
			return errors.Errorf("duplicate pattern %q", pat.Name)
		}
		seen[pat.Name] = true
	}
	return nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It panics if the embedded data is
// malformed.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("packs: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Names returns pack ids in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.packs))
	for i, p := range c.packs {
		names[i] = p.ID
	}
	return names
}

// Get looks up a pack by id.
func (c *Catalog) Get(id string) (*Pack, error) {
	if p, ok := c.byID[id]; ok {
		return p, nil
	}
	msg := fmt.Sprintf("pack not found: %s", id)
	if hint := diagnostic.DidYouMean(id, c.Names(), nil); hint != "" {
		msg += " (" + hint + ")"
	}
	return nil, errors.New(msg)
}

// GetPattern looks up a pattern within a pack.
func (c *Catalog) GetPattern(id, pattern string) (*Pack, *Pattern, error) {
	p, err := c.Get(id)
	if err != nil {
		return nil, nil, err
	}
	pat, ok := p.Pattern(pattern)
	if !ok {
		msg := fmt.Sprintf("pattern not found: %s/%s", id, pattern)
		if hint := diagnostic.DidYouMean(pattern, p.PatternNames(), nil); hint != "" {
			msg += " (" + hint + ")"
		}
		return nil, nil, errors.New(msg)
	}
	return p, pat, nil
}

// Load applies a pack's init pokes in order.
func (c *Catalog) Load(id string, poker Poker) (*Pack, error) {
	p, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	for _, pk := range p.Init {
		poker.Poke(pk.Addr, pk.Value)
	}
	return p, nil
}

// LoadPattern loads the pack, sets the tempo register when the pattern has
// a BPM, then writes all 16 steps of every voice the pattern defines, in
// kick, snare, lead, bass, noise order.
func (c *Catalog) LoadPattern(id, pattern string, poker Poker) (*Pattern, error) {
	_, pat, err := c.GetPattern(id, pattern)
	if err != nil {
		return nil, err
	}
	if _, err := c.Load(id, poker); err != nil {
		return nil, err
	}

	if pat.BPM != 0 {
		poker.Poke(memmap.SeqTempo, pat.BPM)
	}
	for _, v := range memmap.Voices {
		data := pat.Voice(v.Name)
		if data == "" {
			continue
		}
		for i, val := range ParsePattern(data) {
			poker.Poke(v.Base+i, val)
		}
	}
	return pat, nil
}

// ByCategory groups packs by category, keeping catalog order within each
// group. Packs without a category are filed under "other".
func (c *Catalog) ByCategory() map[string][]*Pack {
	groups := make(map[string][]*Pack)
	for _, p := range c.packs {
		cat := p.Category
		if cat == "" {
			cat = "other"
		}
		groups[cat] = append(groups[cat], p)
	}
	return groups
}

// Categories returns the category names of ByCategory, sorted.
func (c *Catalog) Categories() []string {
	groups := c.ByCategory()
	cats := make([]string, 0, len(groups))
	for cat := range groups {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// ToMini renders a pattern in the mini format: a BPM line followed by one
// addr:steps line per defined voice, with the step strings unchanged.
//
//	BPM:90
//	1000:x.....x...x.....
//	1020:....x.......x...
func (c *Catalog) ToMini(id, pattern string) (string, error) {
	_, pat, err := c.GetPattern(id, pattern)
	if err != nil {
		return "", err
	}

	bpm := pat.BPM
	if bpm == 0 {
		bpm = 120
	}
	lines := []string{fmt.Sprintf("BPM:%d", bpm)}
	for _, v := range memmap.Voices {
		if data := pat.Voice(v.Name); data != "" {
			lines = append(lines, fmt.Sprintf("%X:%s", v.Base, data))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Package-level helpers use the built-in catalog.

// Names returns the built-in pack ids in catalog order.
func Names() []string { return Default().Names() }

// Get looks up a built-in pack.
func Get(id string) (*Pack, error) { return Default().Get(id) }

// Load applies a built-in pack's init pokes.
func Load(id string, poker Poker) (*Pack, error) { return Default().Load(id, poker) }

// LoadPattern loads a built-in pack pattern.
func LoadPattern(id, pattern string, poker Poker) (*Pattern, error) {
	return Default().LoadPattern(id, pattern, poker)
}

// ByCategory groups the built-in packs by category.
func ByCategory() map[string][]*Pack { return Default().ByCategory() }

// ToMini renders a built-in pack pattern in the mini format.
func ToMini(id, pattern string) (string, error) { return Default().ToMini(id, pattern) }

// ToSource renders a built-in pack pattern as $1010 source.
func ToSource(id, pattern string) (string, error) { return Default().ToSource(id, pattern) }
