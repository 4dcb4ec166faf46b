package desmostrace

import (
	"github.com/dennwc/desmostrace/internal/potrace"
)

// Supported turn policies, see TraceParams.
const (
	TurnBlack    = TurnPolicy(potrace.TurnBlack)
	TurnWhite    = TurnPolicy(potrace.TurnWhite)
	TurnLeft     = TurnPolicy(potrace.TurnLeft)
	TurnRight    = TurnPolicy(potrace.TurnRight)
	TurnMinority = TurnPolicy(potrace.TurnMinority)
	TurnMajority = TurnPolicy(potrace.TurnMajority)
	TurnRandom   = TurnPolicy(potrace.TurnRandom)
)

// TurnPolicy decides how the tracer resolves ambiguous pixel
// configurations.
type TurnPolicy int

// TraceParams configures the built-in tracer.
type TraceParams struct {
	TurdSize     int        // drop components with area up to this many pixels
	TurnPolicy   TurnPolicy // ambiguity resolution
	AlphaMax     float64    // corner threshold; lower values give more corners
	OptiCurve    bool       // join Bézier segments where possible
	OptTolerance float64    // tolerance for OptiCurve
}

// DefaultTraceParams are the tracer defaults.
var DefaultTraceParams = TraceParams{
	TurdSize:     potrace.Defaults.TurdSize,
	TurnPolicy:   TurnPolicy(potrace.Defaults.TurnPolicy),
	AlphaMax:     potrace.Defaults.AlphaMax,
	OptiCurve:    potrace.Defaults.OptiCurve,
	OptTolerance: potrace.Defaults.OptTolerance,
}

// Potrace is the built-in Tracer.
type Potrace struct {
	Params TraceParams
}

// NewPotrace returns a tracer with the given parameters.
func NewPotrace(p TraceParams) *Potrace {
	return &Potrace{Params: p}
}

// Trace implements Tracer. Paths come out in potrace order: each outline
// followed by its holes, nested islands after the enclosing level.
func (t *Potrace) Trace(m *Mask) (TraceResult, error) {
	bm := potrace.NewBitmap(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.Get(x, y) {
				bm.Set(x, y, true)
			}
		}
	}
	p := potrace.Params{
		TurdSize:     t.Params.TurdSize,
		TurnPolicy:   potrace.TurnPolicy(t.Params.TurnPolicy),
		AlphaMax:     t.Params.AlphaMax,
		OptiCurve:    t.Params.OptiCurve,
		OptTolerance: t.Params.OptTolerance,
	}
	forest, err := potrace.Trace(bm, &p)
	if err != nil {
		return nil, err
	}
	flat := potrace.Flatten(forest)
	out := make(TraceResult, 0, len(flat))
	for _, fp := range flat {
		if len(fp.Curve) == 0 {
			continue
		}
		path := Path{
			Start:    fp.Start(),
			Segments: make([]Segment, len(fp.Curve)),
		}
		for i, s := range fp.Curve {
			if s.Kind == potrace.Corner {
				path.Segments[i] = CornerSegment(s.Pnt[1], s.Pnt[2])
			} else {
				path.Segments[i] = SmoothSegment(s.Pnt[0], s.Pnt[1], s.Pnt[2])
			}
		}
		out = append(out, path)
	}
	Logger().Debug("traced", "paths", len(out), "segments", out.Segments())
	return out, nil
}
