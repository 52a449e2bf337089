package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"github.com/tebeka/atexit"

	"github.com/lhaig/tenten/internal/apu"
	"github.com/lhaig/tenten/internal/compiler"
	"github.com/lhaig/tenten/internal/config"
	"github.com/lhaig/tenten/internal/diagnostic"
	"github.com/lhaig/tenten/internal/memmap"
	"github.com/lhaig/tenten/internal/packs"
	"github.com/lhaig/tenten/internal/synth"
)

const usage = `tentenplay - play $1010 programs and preset packs

Usage:
  tentenplay [--seconds N] <file.1010>
  tentenplay [--seconds N] --pack <id> --pattern <name>

Keys:
  Space    stop / resume
  Escape   quit
`

const (
	cellW   = 24
	cellH   = 24
	labelW  = 56
	screenW = labelW + memmap.Steps*cellW + 8
	screenH = 40 + 5*cellH + 8
)

type options struct {
	file    string
	pack    string
	pattern string
	seconds float64
	verbose bool
}

func parseOptions(args []string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-v", "--verbose":
			o.verbose = true
		case "--pack", "--pattern", "--seconds":
			if i+1 >= len(args) {
				return o, errors.Errorf("option %s needs a value", arg)
			}
			i++
			switch arg {
			case "--pack":
				o.pack = args[i]
			case "--pattern":
				o.pattern = args[i]
			case "--seconds":
				s, err := strconv.ParseFloat(args[i], 64)
				if err != nil || s <= 0 {
					return o, errors.Errorf("invalid duration: %s", args[i])
				}
				o.seconds = s
			}
		default:
			if len(arg) > 0 && arg[0] == '-' {
				return o, errors.Errorf("Unknown option: %s", arg)
			}
			if o.file != "" {
				return o, errors.Errorf("unexpected argument %q", arg)
			}
			o.file = arg
		}
	}

	switch {
	case o.file != "" && o.pack != "":
		return o, errors.New("give either a file or --pack, not both")
	case o.pack != "" && o.pattern == "":
		return o, errors.New("--pack needs --pattern")
	case o.file == "" && o.pack == "":
		return o, errors.New("no input specified")
	}
	return o, nil
}

// load fills host from a source file or a pack pattern and returns a title.
func load(o options, host *apu.APU) (string, error) {
	if o.pack != "" {
		if _, err := packs.LoadPattern(o.pack, o.pattern, host); err != nil {
			return "", err
		}
		host.Write(memmap.SeqCtrl, memmap.CtrlLoop)
		return o.pack + " " + o.pattern, nil
	}

	source, err := os.ReadFile(o.file)
	if err != nil {
		return "", errors.Wrap(err, "reading source")
	}
	cfg, err := config.Resolve(filepath.Dir(o.file))
	if err != nil {
		return "", err
	}

	res := compiler.Compile(string(source), compiler.Options{
		Target:         "hex",
		EmitZeroClears: cfg.ZeroClears,
		Logger:         slog.Default(),
	})
	for _, w := range res.Warnings {
		slog.Warn(w.Message, "file", o.file, "line", w.Line)
	}
	if !res.Success {
		return "", errors.Errorf("compilation errors:\n%s", diagnostic.FormatList(res.Errors, o.file))
	}
	host.LoadIR(res.IR)
	return filepath.Base(o.file), nil
}

type player struct {
	mixer    *synth.Mixer
	title    string
	deadline time.Time
	cell     *ebiten.Image
}

func (p *player) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if p.mixer.IsPlaying() {
			p.mixer.Stop()
		} else {
			p.mixer.Start()
		}
	}
	if !p.deadline.IsZero() && time.Now().After(p.deadline) {
		return ebiten.Termination
	}
	if p.mixer.Done() && p.deadline.IsZero() {
		return ebiten.Termination
	}
	return nil
}

var (
	colorRest     = color.RGBA{0x30, 0x30, 0x38, 0xFF}
	colorGate     = color.RGBA{0xE0, 0x90, 0x20, 0xFF}
	colorPlayhead = color.RGBA{0x40, 0xA0, 0xF0, 0xFF}
)

func (p *player) Draw(screen *ebiten.Image) {
	state := "stopped"
	if p.mixer.IsPlaying() {
		state = "playing"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  [%s]", p.title, state), 8, 8)

	current := (p.mixer.Step() + memmap.Steps - 1) % memmap.Steps
	for row, gates := range p.mixer.Gates() {
		y := 40 + row*cellH
		ebitenutil.DebugPrintAt(screen, memmap.Voices[row].Name, 8, y+4)
		for step, gate := range gates {
			clr := colorRest
			if gate != 0 {
				clr = colorGate
			}
			if step == current && p.mixer.IsPlaying() {
				clr = colorPlayhead
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(cellW-2, cellH-2)
			op.GeoM.Translate(float64(labelW+step*cellW), float64(y))
			op.ColorScale.ScaleWithColor(clr)
			screen.DrawImage(p.cell, op)
		}
	}
}

func (p *player) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	o, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n\n", err)
		fmt.Fprint(os.Stderr, usage)
		atexit.Exit(1)
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	host := apu.New(nil)
	title, err := load(o, host)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		atexit.Exit(1)
	}

	mixer := synth.NewMixer(host, synth.DefaultSampleRate)
	mixer.Start()

	ctx := audio.NewContext(mixer.SampleRate())
	stream, err := ctx.NewPlayer(mixer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening audio: %s\n", err)
		atexit.Exit(1)
	}
	stream.SetBufferSize(50 * time.Millisecond)
	stream.Play()
	atexit.Register(func() { _ = stream.Close() })

	cell := ebiten.NewImage(1, 1)
	cell.Fill(color.White)

	p := &player{mixer: mixer, title: title, cell: cell}
	if o.seconds > 0 {
		p.deadline = time.Now().Add(time.Duration(o.seconds * float64(time.Second)))
	}
	slog.Debug("playing", "title", title, "tempo", host.Tempo(), "step", host.StepDuration())

	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("tentenplay - " + title)
	if err := ebiten.RunGame(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
