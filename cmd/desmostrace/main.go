// Command desmostrace converts the outline of an image into parametric
// Bézier expressions for a graphing calculator.
//
// Usage:
//
//	desmostrace [flags] image
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dennwc/desmostrace"
	"github.com/dennwc/desmostrace/preview"
	"github.com/dennwc/desmostrace/sink"
)

func main() {
	def := desmostrace.DefaultOptions
	var (
		threshold = flag.Int("threshold", def.Threshold, "luma below this is foreground (0-255)")
		minLen    = flag.Float64("min", def.MinLength, "drop curves with a chord shorter than this")
		maxLen    = flag.Float64("max", def.MaxLength, "drop curves with a chord longer than this")
		latex     = flag.Bool("latex", false, "write the t domain in LaTeX form")
		output    = flag.String("o", "", "write expressions to this file instead of stdout")
		copyClip  = flag.Bool("copy", false, "copy expressions to the clipboard")
		prevPNG   = flag.String("preview", "", "render the sampled curves to this PNG file")
		svgOut    = flag.String("svg", "", "write the curves to this SVG file")
		turdSize  = flag.Int("turdsize", def.Trace.TurdSize, "suppress speckles of up to this many pixels")
		alphaMax  = flag.Float64("alphamax", def.Trace.AlphaMax, "corner threshold")
		optTol    = flag.Float64("opttolerance", def.Trace.OptTolerance, "curve optimization tolerance")
		noOpt     = flag.Bool("noopt", false, "disable curve optimization")
		verbose   = flag.Bool("v", false, "log pipeline details to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] image\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	desmostrace.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opt := def
	opt.Threshold = *threshold
	opt.MinLength = *minLen
	opt.MaxLength = *maxLen
	if *latex {
		opt.Domain = desmostrace.DomainLatex
	}
	opt.Trace.TurdSize = *turdSize
	opt.Trace.AlphaMax = *alphaMax
	opt.Trace.OptTolerance = *optTol
	opt.Trace.OptiCurve = !*noOpt

	res, err := desmostrace.ConvertFile(flag.Arg(0), nil, opt)
	if err != nil {
		log.Fatal(err)
	}

	var out sink.Multi
	if *output != "" {
		out = append(out, sink.File{Path: *output})
	} else {
		out = append(out, sink.Writer{W: os.Stdout})
	}
	if *copyClip {
		out = append(out, sink.Clipboard{})
	}
	if err := out.Accept(res.Text()); err != nil {
		log.Fatal(err)
	}

	if *prevPNG != "" {
		if err := savePreview(*prevPNG, res); err != nil {
			log.Fatalf("preview: %v", err)
		}
	}
	if *svgOut != "" {
		if err := saveSvg(*svgOut, res); err != nil {
			log.Fatalf("svg: %v", err)
		}
	}
	if lo, hi, ok := desmostrace.Bounds(res.Preview); ok {
		desmostrace.Logger().Debug("preview extent", "min", lo, "max", hi)
	}
	desmostrace.Logger().Info("done",
		"expressions", len(res.Expressions),
		"rejected", res.Traced-len(res.Expressions))
}

func savePreview(name string, res *desmostrace.Result) error {
	var r preview.Renderer
	defer r.Close()
	if err := r.Render(res); err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := r.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func saveSvg(name string, res *desmostrace.Result) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := preview.WriteSvg(f, res, ""); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
