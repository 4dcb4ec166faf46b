package desmostrace

import (
	"strconv"
	"strings"
)

// DomainStyle selects how the t ∈ [0,1] restriction is written.
type DomainStyle int

const (
	// DomainPlain writes {0 <= t <= 1}.
	DomainPlain DomainStyle = iota
	// DomainLatex writes \left\{0 \le t \le 1\right\}, the form Desmos
	// itself produces when an expression is copied out of the calculator.
	DomainLatex
)

func (d DomainStyle) clause() string {
	if d == DomainLatex {
		return `\left\{0 \le t \le 1\right\}`
	}
	return "{0 <= t <= 1}"
}

// Expression is a parametric curve in Desmos syntax.
type Expression struct {
	Curve  Curve
	X, Y   string // polynomials in t
	Domain string
}

// String renders the expression as a single Desmos input line.
func (e Expression) String() string {
	return "(" + e.X + ", " + e.Y + ") " + e.Domain
}

// FormatExpression renders c with its control points as literal numbers.
func FormatExpression(c Curve, style DomainStyle) Expression {
	return Expression{
		Curve:  c,
		X:      bernstein(c[0].X, c[1].X, c[2].X, c[3].X),
		Y:      bernstein(c[0].Y, c[1].Y, c[2].Y, c[3].Y),
		Domain: style.clause(),
	}
}

// FormatExpressions renders every curve in order.
func FormatExpressions(curves []Curve, style DomainStyle) []Expression {
	out := make([]Expression, len(curves))
	for i, c := range curves {
		out[i] = FormatExpression(c, style)
	}
	return out
}

func bernstein(p0, p1, p2, p3 float64) string {
	var b strings.Builder
	b.WriteString("(1-t)^3*")
	b.WriteString(FormatNumber(p0))
	b.WriteString("+3*(1-t)^2*t*")
	b.WriteString(FormatNumber(p1))
	b.WriteString("+3*(1-t)*t^2*")
	b.WriteString(FormatNumber(p2))
	b.WriteString("+t^3*")
	b.WriteString(FormatNumber(p3))
	return b.String()
}

// FormatNumber writes v as a plain decimal with the fewest digits that
// still parse back to v. Desmos does not read exponent notation.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0" // also covers -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// JoinExpressions renders one expression per line.
func JoinExpressions(exprs []Expression) string {
	lines := make([]string, len(exprs))
	for i, e := range exprs {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}
