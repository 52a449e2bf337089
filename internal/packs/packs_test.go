package packs_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lhaig/tenten/internal/compiler"
	"github.com/lhaig/tenten/internal/hexbe"
	"github.com/lhaig/tenten/internal/memmap"
	"github.com/lhaig/tenten/internal/packs"
)

type poke struct{ addr, value int }

// memory records pokes in order and keeps the last value per address.
type memory struct {
	log   []poke
	bytes map[int]int
}

func newMemory() *memory { return &memory{bytes: make(map[int]int)} }

func (m *memory) Poke(addr, value int) {
	m.log = append(m.log, poke{addr, value})
	m.bytes[addr] = value
}

var _ = Describe("Catalog", func() {
	It("should list the built-in packs in catalog order", func() {
		names := packs.Names()
		Expect(names).To(HaveLen(21))
		Expect(names[0]).To(Equal("TR-808"))
		Expect(names[1]).To(Equal("TR-909"))
		Expect(names[len(names)-1]).To(Equal("Jungle"))
	})

	It("should describe a pack", func() {
		p, err := packs.Get("TB-303")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name).To(Equal("Roland TB-303"))
		Expect(p.Category).To(Equal("synth"))
		Expect(p.Year).To(Equal(1981))
		Expect(p.PatternNames()).To(Equal([]string{"Acid Line", "Squelch"}))
	})

	It("should suggest a close pack id", func() {
		_, err := packs.Get("TR-80")
		Expect(err).To(MatchError(ContainSubstring("pack not found: TR-80")))
		Expect(err.Error()).To(ContainSubstring("did you mean"))
	})

	It("should report a missing pattern", func() {
		_, err := packs.LoadPattern("TR-808", "Boom", newMemory())
		Expect(err).To(MatchError(ContainSubstring("pattern not found: TR-808/Boom")))
	})

	It("should group packs by category", func() {
		groups := packs.ByCategory()
		Expect(groups).To(HaveKey("drums"))
		Expect(groups).To(HaveKey("synth"))
		Expect(groups).To(HaveKey("sampler"))
		Expect(groups).To(HaveKey("genre"))
		Expect(groups["drums"][0].ID).To(Equal("TR-808"))
		Expect(packs.Default().Categories()).To(Equal([]string{"drums", "genre", "sampler", "synth"}))
	})

	Describe("Parse", func() {
		It("should reject duplicate ids", func() {
			_, err := packs.Parse([]byte("- id: A\n- id: A\n"))
			Expect(err).To(MatchError(ContainSubstring(`duplicate pack id "A"`)))
		})

		It("should reject init pokes outside the audio region", func() {
			_, err := packs.Parse([]byte("- id: A\n  init:\n    - {addr: 0x2000, value: 1}\n"))
			Expect(err).To(MatchError(ContainSubstring("outside audio region")))
		})

		It("should reject init values above a byte", func() {
			_, err := packs.Parse([]byte("- id: A\n  init:\n    - {addr: 0x1010, value: 300}\n"))
			Expect(err).To(MatchError(ContainSubstring("out of byte range")))
		})

		It("should file packs without a category under other", func() {
			c, err := packs.Parse([]byte("- id: A\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Categories()).To(Equal([]string{"other"}))
		})
	})
})

var _ = Describe("ParsePattern", func() {
	DescribeTable("decoding step strings",
		func(in string, want []int) {
			got := packs.ParsePattern(in)
			var full [16]int
			copy(full[:], want)
			Expect(got).To(Equal(full))
		},
		Entry("triggers and rests", "x...x...", []int{1, 0, 0, 0, 1}),
		Entry("accent", "X.x.", []int{127, 0, 1}),
		Entry("hex notes", "24..27..", []int{36, 0, 0, 39}),
		Entry("lower-case hex", "3c3C", []int{60, 60}),
		Entry("hex digit before a rest", "4.x", []int{4, 1}),
		Entry("trailing hex digit", "x4", []int{1}),
		Entry("unknown characters", "x-x|x", []int{1, 1, 1}),
		Entry("empty", "", []int{}),
	)

	It("should stop after sixteen values", func() {
		got := packs.ParsePattern("3C..3C..43..43..3C..3C..45..45..")
		Expect(got[0]).To(Equal(60))
		Expect(got[6]).To(Equal(67))
		Expect(got[12]).To(Equal(60))
		Expect(got[15]).To(Equal(60))
	})
})

var _ = Describe("Loading", func() {
	var mem *memory

	BeforeEach(func() {
		mem = newMemory()
	})

	It("should apply init pokes in order", func() {
		p, err := packs.Load("TB-303", mem)
		Expect(err).NotTo(HaveOccurred())
		Expect(mem.log).To(HaveLen(len(p.Init)))
		Expect(mem.log[0]).To(Equal(poke{memmap.BassFilt, 40}))
		Expect(mem.log[1]).To(Equal(poke{memmap.BassFM, 80}))
	})

	It("should write tempo then every step of each defined voice", func() {
		pat, err := packs.LoadPattern("TR-808", "Boom Bap", mem)
		Expect(err).NotTo(HaveOccurred())
		Expect(pat.BPM).To(Equal(90))

		pack, _ := packs.Get("TR-808")
		Expect(mem.log).To(HaveLen(len(pack.Init) + 1 + 3*16))
		Expect(mem.log[len(pack.Init)]).To(Equal(poke{memmap.SeqTempo, 90}))

		Expect(mem.bytes[0x1000]).To(Equal(1))
		Expect(mem.bytes[0x1006]).To(Equal(1))
		Expect(mem.bytes[0x1001]).To(Equal(0))
		Expect(mem.bytes[0x1024]).To(Equal(1))
		Expect(mem.bytes[0x1302]).To(Equal(1))
		Expect(mem.bytes).NotTo(HaveKey(0x1100))
	})

	It("should accept a PokerFunc", func() {
		count := 0
		_, err := packs.Load("TR-909", packs.PokerFunc(func(addr, value int) { count++ }))
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(BeNumerically(">", 0))
	})
})

var _ = Describe("ToMini", func() {
	It("should render the BPM line and one line per voice", func() {
		out, err := packs.ToMini("TR-808", "Boom Bap")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("BPM:90\n" +
			"1000:x.....x...x.....\n" +
			"1020:....x.......x...\n" +
			"1300:x.x.x.x.x.x.x.x."))
	})

	It("should keep note strings unchanged", func() {
		out, err := packs.ToMini("TB-303", "Acid Line")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("BPM:130\n1100:................\n1200:24..24..27..24.."))
	})
})

var _ = Describe("ToSource", func() {
	It("should emit patterns and a looping scene", func() {
		src, err := packs.ToSource("TR-808", "Boom Bap")
		Expect(err).NotTo(HaveOccurred())
		Expect(src).To(HavePrefix("; Roland TR-808 (1980): Boom Bap\n@title \"TR-808 Boom Bap\"\n@tempo 90\n"))
		Expect(src).To(ContainSubstring(`@pattern kick "x.....x...x....."`))
		Expect(src).To(ContainSubstring("@scene main\n    kick: kick\n    snare: snare\n    noise: noise\n"))
		Expect(src).To(HaveSuffix("@play main loop\n"))
	})

	It("should fall back to pokes for note data", func() {
		src, err := packs.ToSource("TB-303", "Acid Line")
		Expect(err).NotTo(HaveOccurred())
		Expect(src).To(ContainSubstring("; note data\n@poke $1200 36\n@poke $1203 36\n@poke $1206 39\n@poke $1209 36\n"))
		Expect(src).NotTo(ContainSubstring("@pattern bass"))
		Expect(src).To(ContainSubstring(`@pattern lead "................"`))
	})

	It("should suggest a close pattern name", func() {
		_, err := packs.ToSource("TB-303", "Acid")
		Expect(err).To(MatchError(ContainSubstring("pattern not found")))
	})

	It("should compile to the bytes LoadPattern writes for every pattern", func() {
		for _, id := range packs.Names() {
			pack, err := packs.Get(id)
			Expect(err).NotTo(HaveOccurred())

			for _, name := range pack.PatternNames() {
				src, err := packs.ToSource(id, name)
				Expect(err).NotTo(HaveOccurred())

				res := compiler.Compile(src, compiler.Options{Target: "hex"})
				Expect(res.Errors).To(BeEmpty(), "%s/%s:\n%s", id, name, src)
				img := hexbe.Image(res.IR)

				mem := newMemory()
				_, err = packs.LoadPattern(id, name, mem)
				Expect(err).NotTo(HaveOccurred())

				for addr := memmap.AudioStart; addr < memmap.AudioEnd; addr++ {
					if addr == memmap.SeqCtrl {
						Expect(int(img[addr-memmap.AudioStart])).To(Equal(memmap.CtrlPlay|memmap.CtrlLoop),
							"%s/%s should play and loop", id, name)
						continue
					}
					Expect(int(img[addr-memmap.AudioStart])).To(Equal(mem.bytes[addr]),
						"%s/%s at $%04X", id, name, addr)
				}
			}
		}
	})
})
