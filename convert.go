package desmostrace

import (
	"fmt"
	"image"
	"math"
)

// Options controls a conversion.
type Options struct {
	Threshold int         // pixels with luma below this are foreground, 0..255
	MinLength float64     // shortest accepted chord, in pixels
	MaxLength float64     // longest accepted chord; Unbounded for no limit
	Domain    DomainStyle // how the t range is written
	Trace     TraceParams // parameters for the built-in tracer
}

// DefaultOptions are the default conversion options.
var DefaultOptions = Options{
	Threshold: 128,
	MinLength: 0,
	MaxLength: Unbounded,
	Domain:    DomainPlain,
	Trace:     DefaultTraceParams,
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	switch {
	case o.Threshold < 0 || o.Threshold > 255:
		return fmt.Errorf("%w: threshold %d not in [0,255]", ErrInvalidOptions, o.Threshold)
	case math.IsNaN(o.MinLength) || o.MinLength < 0:
		return fmt.Errorf("%w: min length %v is negative", ErrInvalidOptions, o.MinLength)
	case math.IsNaN(o.MaxLength) || o.MaxLength < o.MinLength:
		return fmt.Errorf("%w: max length %v below min length %v", ErrInvalidOptions, o.MaxLength, o.MinLength)
	case o.Domain != DomainPlain && o.Domain != DomainLatex:
		return fmt.Errorf("%w: unknown domain style %d", ErrInvalidOptions, o.Domain)
	case o.Trace.TurdSize < 0:
		return fmt.Errorf("%w: turd size %d is negative", ErrInvalidOptions, o.Trace.TurdSize)
	case o.Trace.TurnPolicy < TurnBlack || o.Trace.TurnPolicy > TurnRandom:
		return fmt.Errorf("%w: unknown turn policy %d", ErrInvalidOptions, o.Trace.TurnPolicy)
	}
	return nil
}

// Filter returns the length filter described by o.
func (o Options) Filter() LengthFilter {
	return LengthFilter{Min: o.MinLength, Max: o.MaxLength}
}

// Result is the output of one conversion.
type Result struct {
	Width, Height int
	Scale         float64
	Traced        int          // segments before filtering
	Curves        []Curve      // accepted curves, normalized
	Expressions   []Expression // one per accepted curve
	Preview       []Polyline   // one per accepted curve
}

// Text is the newline-joined expression list.
func (r *Result) Text() string {
	return JoinExpressions(r.Expressions)
}

// Convert runs normalization, filtering and synthesis on an existing trace
// of a w×h image. It keeps no state between calls.
func Convert(tr TraceResult, w, h int, opt Options) *Result {
	res := &Result{Width: w, Height: h, Scale: 1}
	res.Traced = tr.Segments()
	if res.Traced == 0 || w <= 0 || h <= 0 {
		Logger().Debug("empty trace", "width", w, "height", h)
		return res
	}

	res.Scale = EstimateScale(tr, w, h)
	frame := NewFrame(res.Scale, w, h)
	res.Curves = opt.Filter().Apply(BuildCurves(tr, frame))
	res.Expressions = FormatExpressions(res.Curves, opt.Domain)
	res.Preview = SamplePreview(res.Curves)

	Logger().Debug("converted",
		"scale", res.Scale,
		"paths", len(tr),
		"segments", res.Traced,
		"accepted", len(res.Curves),
		"rejected", res.Traced-len(res.Curves))
	return res
}

// ConvertImage thresholds and traces img, then converts the trace. A nil
// tracer selects the built-in one configured from opt.Trace.
func ConvertImage(img image.Image, tracer Tracer, opt Options) (*Result, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if tracer == nil {
		tracer = NewPotrace(opt.Trace)
	}
	gray := ToGray(img)
	mask := ThresholdMask(gray, opt.Threshold)
	tr, err := tracer.Trace(mask)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	return Convert(tr, mask.W, mask.H, opt), nil
}

// ConvertFile loads the image at path and converts it. Load failures are
// reported as *ImageLoadError before anything is traced.
func ConvertFile(path string, tracer Tracer, opt Options) (*Result, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	gray, err := LoadGray(path)
	if err != nil {
		return nil, err
	}
	Logger().Debug("loaded image", "path", path, "width", gray.Rect.Dx(), "height", gray.Rect.Dy())
	return ConvertImage(gray, tracer, opt)
}
