package apu

import (
	"strings"
	"time"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lhaig/tenten/internal/compiler"
	"github.com/lhaig/tenten/internal/hexbe"
	"github.com/lhaig/tenten/internal/memmap"
)

func compile(src string) *compiler.Result {
	res := compiler.Compile(src, compiler.Options{Target: "hex"})
	ExpectWithOffset(1, res.Errors).To(BeEmpty())
	return res
}

var _ = Describe("APU", func() {
	var (
		mockCtrl *gomock.Controller
		voices   *MockVoices
		a        *APU
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		voices = NewMockVoices(mockCtrl)
		a = New(voices)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("memory", func() {
		It("should start cleared at the default tempo", func() {
			Expect(a.Read(0x1000)).To(Equal(0))
			Expect(a.Tempo()).To(Equal(DefaultTempo))
			Expect(a.IsPlaying()).To(BeFalse())
			Expect(a.Step()).To(Equal(0))
		})

		It("should keep the low byte of a write", func() {
			a.Write(0x1234, 0x1FF)
			Expect(a.Read(0x1234)).To(Equal(0xFF))
		})

		It("should ignore addresses outside memory", func() {
			a.Write(-1, 5)
			a.Write(MemSize, 5)
			Expect(a.Read(-1)).To(Equal(0))
			Expect(a.Read(MemSize)).To(Equal(0))
		})

		It("should copy a slice", func() {
			a.Poke(0x1000, 1)
			a.Poke(0x1002, 3)
			Expect(a.Slice(0x1000, 4)).To(Equal([]byte{1, 0, 3, 0}))
		})

		It("should restore defaults on reset", func() {
			a.Write(0x1000, 1)
			a.SetTempo(90)
			a.Start()
			a.Reset()
			Expect(a.Read(0x1000)).To(Equal(0))
			Expect(a.Tempo()).To(Equal(DefaultTempo))
			Expect(a.IsPlaying()).To(BeFalse())
		})
	})

	Context("tempo", func() {
		It("should fall back to the default when the register is 0", func() {
			a.SetTempo(0)
			Expect(a.Tempo()).To(Equal(DefaultTempo))
		})

		It("should derive the step duration", func() {
			Expect(a.StepDuration()).To(Equal(125 * time.Millisecond))
			a.SetTempo(150)
			Expect(a.StepDuration()).To(Equal(100 * time.Millisecond))
		})
	})

	Context("sequencing", func() {
		It("should not tick while stopped", func() {
			Expect(a.Tick()).To(BeFalse())
			Expect(a.Step()).To(Equal(0))
		})

		It("should trigger the kick on steps 0, 4, 8 and 12", func() {
			res := compile("@pattern k \"x...x...x...x...\"\nkick: k\n@play")
			a.LoadIR(res.IR)

			var steps []int
			voices.EXPECT().TriggerKick(DefaultKickPitch).Do(func(int) {
				steps = append(steps, a.Step())
			}).Times(4)

			for i := 0; i < 15; i++ {
				Expect(a.Tick()).To(BeTrue())
			}
			Expect(a.Tick()).To(BeFalse())
			Expect(steps).To(Equal([]int{0, 4, 8, 12}))
			Expect(a.IsPlaying()).To(BeFalse())
			Expect(a.Step()).To(Equal(0))
		})

		It("should keep playing with the loop bit", func() {
			res := compile("@pattern k \"x...............\"\n@scene s kick: k\n@play s loop")
			a.LoadIR(res.IR)
			voices.EXPECT().TriggerKick(gomock.Any()).Times(2)

			for i := 0; i < 32; i++ {
				Expect(a.Tick()).To(BeTrue())
			}
			Expect(a.IsPlaying()).To(BeTrue())
		})

		It("should pass parameter registers and note gates", func() {
			res := compile(`@pattern d "x..............."
@pattern n "C4.............."
@scene s kick: d snare: d lead: n bass: n noise: d
@poke $1010 50
@poke $1210 60
@poke $1310 3
@play s`)
			a.LoadIR(res.IR)

			gomock.InOrder(
				voices.EXPECT().TriggerKick(50),
				voices.EXPECT().TriggerSnare(DefaultSnareTone, DefaultSnareSnap),
				voices.EXPECT().TriggerLead(60),
				voices.EXPECT().TriggerBass(60, 60),
				voices.EXPECT().TriggerNoise(3),
			)
			Expect(a.Tick()).To(BeTrue())
		})

		It("should resume from the current step after a stop", func() {
			a.Write(0x1005, 1)
			a.SetStep(5)
			a.Start()
			voices.EXPECT().TriggerKick(DefaultKickPitch)

			Expect(a.Tick()).To(BeTrue())
			a.Stop()
			Expect(a.Tick()).To(BeFalse())
			Expect(a.Step()).To(Equal(6))
		})
	})

	Context("loading", func() {
		It("should load a hex image byte for byte", func() {
			res := compile(`@tempo 100
@pattern k "x.x.X..........."
@pattern b "C2..D#2........."
@scene s kick: k bass: b
@play s loop`)
			Expect(a.LoadHex(strings.NewReader(res.Output))).To(Succeed())

			img := hexbe.Image(res.IR)
			Expect(a.Slice(memmap.AudioStart, memmap.AudioSize)).To(Equal(img))
			Expect(a.Tempo()).To(Equal(100))
			Expect(a.IsPlaying()).To(BeTrue())
			Expect(a.IsLooping()).To(BeTrue())
		})

		It("should reject a corrupt image without writing", func() {
			err := a.LoadHex(strings.NewReader(":0110000001ED\n:00000001FF\n"))
			Expect(err).To(MatchError(ContainSubstring("loading hex image")))
			Expect(a.Read(0x1000)).To(Equal(0))
		})

		It("should reject records past the end of memory", func() {
			rec := hexbe.EncodeRecord(0xFFFF, hexbe.TypeData, []byte{1, 2})
			err := a.LoadHex(strings.NewReader(rec + "\n:00000001FF\n"))
			Expect(err).To(MatchError(ContainSubstring("past end of memory")))
		})
	})
})

var _ = Describe("Simulate", func() {
	It("should time triggers on step boundaries", func() {
		res := compile("@tempo 120\n@pattern k \"x...x...x...x...\"\n@scene s kick: k\n@play s loop")
		a := New(nil)
		a.LoadIR(res.IR)

		log, err := Simulate(a, 32)
		Expect(err).NotTo(HaveOccurred())
		Expect(log).To(HaveLen(8))

		step := a.StepDuration().Seconds()
		for i, tr := range log {
			Expect(tr.Voice).To(Equal("kick"))
			Expect(tr.Args).To(Equal([]int{DefaultKickPitch}))
			Expect(tr.Step).To(Equal((i * 4) % 16))
			Expect(float64(tr.Time)).To(BeNumerically("~", float64(i*4)*step, 1e-9))
		}
		Expect(a.IsPlaying()).To(BeTrue())
	})

	It("should stop at the end of a pattern without the loop bit", func() {
		res := compile("@pattern s \"....x.......x...\"\nsnare: s\n@play")
		a := New(nil)
		a.LoadIR(res.IR)

		log, err := Simulate(a, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(log).To(HaveLen(2))
		Expect(log[1].Step).To(Equal(12))
		Expect(a.IsPlaying()).To(BeFalse())
	})

	It("should forward triggers to the voices", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()
		voices := NewMockVoices(mockCtrl)
		voices.EXPECT().TriggerNoise(DefaultNoiseDecay).Times(16)

		a := New(voices)
		for i := 0; i < 16; i++ {
			a.Write(0x1300+i, 1)
		}
		a.Start()

		log, err := Simulate(a, 16)
		Expect(err).NotTo(HaveOccurred())
		Expect(log).To(HaveLen(16))
	})

	It("should return nothing while stopped", func() {
		log, err := Simulate(New(nil), 16)
		Expect(err).NotTo(HaveOccurred())
		Expect(log).To(BeEmpty())
	})

	It("should require a step limit", func() {
		_, err := Simulate(New(nil), 0)
		Expect(err).To(HaveOccurred())
	})
})
