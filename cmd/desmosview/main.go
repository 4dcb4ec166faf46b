// Command desmosview shows an image next to the preview of its converted
// curves and lets the conversion be tuned interactively.
//
// Keys: Up/Down change the threshold, Left/Right change the minimum chord
// length, C copies the expressions, S saves them, Esc quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dennwc/desmostrace"
	"github.com/dennwc/desmostrace/preview"
	"github.com/dennwc/desmostrace/sink"
)

const (
	thresholdStep = 8
	lengthStep    = 1
)

type viewer struct {
	src  *image.Gray
	opt  desmostrace.Options
	save sink.Sink
	copy sink.Sink

	rnd    preview.Renderer
	res    *desmostrace.Result
	srcImg *ebiten.Image
	preImg *ebiten.Image
	status string
}

func (v *viewer) convert() error {
	res, err := desmostrace.ConvertImage(v.src, nil, v.opt)
	if err != nil {
		return err
	}
	if err := v.rnd.Render(res); err != nil {
		return err
	}
	if v.preImg != nil {
		v.preImg.Deallocate()
	}
	v.preImg = ebiten.NewImageFromImage(v.rnd.Image())
	v.res = res
	v.status = fmt.Sprintf("threshold %d  min %g  curves %d/%d",
		v.opt.Threshold, v.opt.MinLength, len(res.Expressions), res.Traced)
	return nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	opt := v.opt
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		opt.Threshold = min(opt.Threshold+thresholdStep, 255)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		opt.Threshold = max(opt.Threshold-thresholdStep, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		opt.MinLength = min(opt.MinLength+lengthStep, opt.MaxLength)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		opt.MinLength = max(opt.MinLength-lengthStep, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.deliver(v.copy, "copied")
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.deliver(v.save, "saved")
		return nil
	default:
		return nil
	}
	prev := v.opt
	v.opt = opt
	if err := v.convert(); err != nil {
		v.opt = prev
		v.status = err.Error()
	}
	return nil
}

func (v *viewer) deliver(s sink.Sink, what string) {
	if v.res == nil {
		return
	}
	if err := s.Accept(v.res.Text()); err != nil {
		v.status = err.Error()
		return
	}
	v.status = fmt.Sprintf("%s %d expressions", what, len(v.res.Expressions))
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.DrawImage(v.srcImg, nil)
	if v.preImg != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(v.src.Rect.Dx()), 0)
		screen.DrawImage(v.preImg, op)
	}
	ebitenutil.DebugPrint(screen, v.status)
}

func (v *viewer) Layout(int, int) (int, int) {
	return 2 * v.src.Rect.Dx(), v.src.Rect.Dy()
}

func (v *viewer) Close() {
	if v.preImg != nil {
		v.preImg.Deallocate()
	}
	if err := v.rnd.Close(); err != nil {
		log.Println(err)
	}
}

func main() {
	var (
		threshold = flag.Int("threshold", desmostrace.DefaultOptions.Threshold, "initial threshold (0-255)")
		minLen    = flag.Float64("min", desmostrace.DefaultOptions.MinLength, "initial minimum chord length")
		output    = flag.String("o", "expressions.txt", "file written by the S key")
		verbose   = flag.Bool("v", false, "log pipeline details to stderr")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] image\n", os.Args[0])
		os.Exit(2)
	}
	if *verbose {
		desmostrace.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	src, err := desmostrace.LoadGray(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	v := &viewer{
		src:    src,
		opt:    desmostrace.DefaultOptions,
		save:   sink.File{Path: *output},
		copy:   sink.Clipboard{},
		srcImg: ebiten.NewImageFromImage(src),
	}
	v.opt.Threshold = *threshold
	v.opt.MinLength = *minLen
	if err := v.convert(); err != nil {
		log.Fatal(err)
	}
	defer v.Close()

	ebiten.SetWindowTitle("desmosview: " + flag.Arg(0))
	ebiten.SetWindowSize(2*src.Rect.Dx(), src.Rect.Dy())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
