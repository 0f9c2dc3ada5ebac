package codegen

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/sarchlab/odegen/analysis"
)

// Go operator precedence levels used to decide where parentheses are
// required. Right operands are rendered one level tighter so that the
// emitted text preserves the exact grouping of the resolved tree.
const (
	precOr    = 1
	precAnd   = 2
	precCmp   = 3
	precAdd   = 4
	precMul   = 5
	precUnary = 6
)

// An exprWriter renders resolved expression trees as Go source and
// records which support the emitted file needs.
type exprWriter struct {
	needsMath    bool
	needsTernary bool
}

// Multiplicative operators render tight and additive ones spaced, the
// way gofmt lays out mixed-precedence arithmetic.
var binaryTokens = map[analysis.Opcode]struct {
	token string
	prec  int
}{
	analysis.NodeAdd: {" + ", precAdd},
	analysis.NodeSub: {" - ", precAdd},
	analysis.NodeMul: {"*", precMul},
	analysis.NodeDiv: {"/", precMul},
}

var mathFuncs = map[analysis.Opcode]string{
	analysis.NodeAbs:   "math.Abs",
	analysis.NodeExp:   "math.Exp",
	analysis.NodeLn:    "math.Log",
	analysis.NodeLog10: "math.Log10",
	analysis.NodeSqrt:  "math.Sqrt",
	analysis.NodeSin:   "math.Sin",
	analysis.NodeCos:   "math.Cos",
	analysis.NodeTan:   "math.Tan",
	analysis.NodeAsin:  "math.Asin",
	analysis.NodeAcos:  "math.Acos",
	analysis.NodeAtan:  "math.Atan",
	analysis.NodeSinh:  "math.Sinh",
	analysis.NodeCosh:  "math.Cosh",
	analysis.NodeTanh:  "math.Tanh",
	analysis.NodeFloor: "math.Floor",
	analysis.NodeCeil:  "math.Ceil",
}

var cmpTokens = map[analysis.Opcode]string{
	analysis.NodeEq: "==",
	analysis.NodeNe: "!=",
	analysis.NodeLt: "<",
	analysis.NodeLe: "<=",
	analysis.NodeGt: ">",
	analysis.NodeGe: ">=",
}

func isBoolNode(n *analysis.Node) bool {
	switch n.Op {
	case analysis.NodeEq, analysis.NodeNe,
		analysis.NodeLt, analysis.NodeLe,
		analysis.NodeGt, analysis.NodeGe,
		analysis.NodeAnd, analysis.NodeOr, analysis.NodeNot:
		return true
	default:
		return false
	}
}

// renderFloat renders a node in a numeric context. prec is the
// precedence level of the surrounding expression; the result is
// parenthesized when binding looser than that.
func (w *exprWriter) renderFloat(n *analysis.Node, prec int) string {
	if isBoolNode(n) {
		w.needsTernary = true
		return "ternary(" + w.renderBool(n, 0) + ", 1.0, 0.0)"
	}

	switch n.Op {
	case analysis.NodeNumber:
		return formatFloat(n.Value)
	case analysis.NodeVoi:
		return "voi"
	case analysis.NodeState:
		return fmt.Sprintf("states[%d]", n.Index)
	case analysis.NodeRate:
		return fmt.Sprintf("rates[%d]", n.Index)
	case analysis.NodeVariable:
		return fmt.Sprintf("variables[%d]", n.Index)

	case analysis.NodeNeg:
		s := "-" + w.renderFloat(n.X, precUnary)
		if prec > precUnary {
			s = "(" + s + ")"
		}
		return s

	case analysis.NodeAdd, analysis.NodeSub,
		analysis.NodeMul, analysis.NodeDiv:
		op := binaryTokens[n.Op]
		s := w.renderFloat(n.X, op.prec) +
			op.token +
			w.renderFloat(n.Y, op.prec+1)
		if prec > op.prec {
			s = "(" + s + ")"
		}
		return s

	case analysis.NodePow:
		w.needsMath = true
		return "math.Pow(" + w.renderFloat(n.X, 0) + ", " +
			w.renderFloat(n.Y, 0) + ")"

	case analysis.NodeMin:
		w.needsMath = true
		return "math.Min(" + w.renderFloat(n.X, 0) + ", " +
			w.renderFloat(n.Y, 0) + ")"

	case analysis.NodeMax:
		w.needsMath = true
		return "math.Max(" + w.renderFloat(n.X, 0) + ", " +
			w.renderFloat(n.Y, 0) + ")"

	case analysis.NodePiecewise:
		w.needsTernary = true
		return "ternary(" + w.renderBool(n.X, 0) + ", " +
			w.renderFloat(n.Y, 0) + ", " + w.renderFloat(n.Z, 0) + ")"

	default:
		fn, found := mathFuncs[n.Op]
		if !found {
			log.Panicf("unknown opcode %d", int(n.Op))
		}
		w.needsMath = true
		return fn + "(" + w.renderFloat(n.X, 0) + ")"
	}
}

// renderBool renders a node in a condition context. Numeric nodes are
// compared against zero, mirroring how the evaluator treats truth.
func (w *exprWriter) renderBool(n *analysis.Node, prec int) string {
	switch n.Op {
	case analysis.NodeAnd:
		s := w.renderBool(n.X, precAnd) + " && " + w.renderBool(n.Y, precAnd+1)
		if prec > precAnd {
			s = "(" + s + ")"
		}
		return s

	case analysis.NodeOr:
		s := w.renderBool(n.X, precOr) + " || " + w.renderBool(n.Y, precOr+1)
		if prec > precOr {
			s = "(" + s + ")"
		}
		return s

	case analysis.NodeNot:
		return "!" + w.renderBool(n.X, precUnary)

	case analysis.NodeEq, analysis.NodeNe,
		analysis.NodeLt, analysis.NodeLe,
		analysis.NodeGt, analysis.NodeGe:
		s := w.renderFloat(n.X, precCmp+1) + " " + cmpTokens[n.Op] + " " +
			w.renderFloat(n.Y, precCmp+1)
		if prec > precCmp {
			s = "(" + s + ")"
		}
		return s

	default:
		s := w.renderFloat(n, precCmp+1) + " != 0.0"
		if prec > precCmp {
			s = "(" + s + ")"
		}
		return s
	}
}

// renderAssignment renders one instruction as a Go assignment
// statement.
func (w *exprWriter) renderAssignment(in analysis.Instruction) string {
	var target string

	switch in.Store {
	case analysis.StoreState:
		target = fmt.Sprintf("states[%d]", in.Index)
	case analysis.StoreRate:
		target = fmt.Sprintf("rates[%d]", in.Index)
	case analysis.StoreVariable:
		target = fmt.Sprintf("variables[%d]", in.Index)
	}

	return target + " = " + w.renderFloat(in.RHS, 0)
}

// formatFloat renders a literal so that it reads as a floating point
// number, the way generated numerical code conventionally does.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
