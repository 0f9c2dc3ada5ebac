package compiled

import (
	"log"
	"math"

	"github.com/sarchlab/odegen/analysis"
)

// eval walks a resolved expression tree. Arithmetic faults surface as
// IEEE NaN or Inf, never as errors; integrators detect and react to
// those values themselves.
func eval(
	n *analysis.Node,
	voi float64,
	states, rates, variables []float64,
) float64 {
	switch n.Op {
	case analysis.NodeNumber:
		return n.Value
	case analysis.NodeVoi:
		return voi
	case analysis.NodeState:
		return states[n.Index]
	case analysis.NodeRate:
		return rates[n.Index]
	case analysis.NodeVariable:
		return variables[n.Index]

	case analysis.NodeNeg:
		return -eval(n.X, voi, states, rates, variables)
	case analysis.NodeNot:
		return boolToFloat(eval(n.X, voi, states, rates, variables) == 0)

	case analysis.NodeAdd:
		return eval(n.X, voi, states, rates, variables) +
			eval(n.Y, voi, states, rates, variables)
	case analysis.NodeSub:
		return eval(n.X, voi, states, rates, variables) -
			eval(n.Y, voi, states, rates, variables)
	case analysis.NodeMul:
		return eval(n.X, voi, states, rates, variables) *
			eval(n.Y, voi, states, rates, variables)
	case analysis.NodeDiv:
		return eval(n.X, voi, states, rates, variables) /
			eval(n.Y, voi, states, rates, variables)
	case analysis.NodePow:
		return math.Pow(
			eval(n.X, voi, states, rates, variables),
			eval(n.Y, voi, states, rates, variables),
		)

	case analysis.NodeEq:
		return boolToFloat(eval(n.X, voi, states, rates, variables) ==
			eval(n.Y, voi, states, rates, variables))
	case analysis.NodeNe:
		return boolToFloat(eval(n.X, voi, states, rates, variables) !=
			eval(n.Y, voi, states, rates, variables))
	case analysis.NodeLt:
		return boolToFloat(eval(n.X, voi, states, rates, variables) <
			eval(n.Y, voi, states, rates, variables))
	case analysis.NodeLe:
		return boolToFloat(eval(n.X, voi, states, rates, variables) <=
			eval(n.Y, voi, states, rates, variables))
	case analysis.NodeGt:
		return boolToFloat(eval(n.X, voi, states, rates, variables) >
			eval(n.Y, voi, states, rates, variables))
	case analysis.NodeGe:
		return boolToFloat(eval(n.X, voi, states, rates, variables) >=
			eval(n.Y, voi, states, rates, variables))
	case analysis.NodeAnd:
		return boolToFloat(eval(n.X, voi, states, rates, variables) != 0 &&
			eval(n.Y, voi, states, rates, variables) != 0)
	case analysis.NodeOr:
		return boolToFloat(eval(n.X, voi, states, rates, variables) != 0 ||
			eval(n.Y, voi, states, rates, variables) != 0)

	case analysis.NodeMin:
		return math.Min(
			eval(n.X, voi, states, rates, variables),
			eval(n.Y, voi, states, rates, variables),
		)
	case analysis.NodeMax:
		return math.Max(
			eval(n.X, voi, states, rates, variables),
			eval(n.Y, voi, states, rates, variables),
		)

	case analysis.NodeAbs:
		return math.Abs(eval(n.X, voi, states, rates, variables))
	case analysis.NodeExp:
		return math.Exp(eval(n.X, voi, states, rates, variables))
	case analysis.NodeLn:
		return math.Log(eval(n.X, voi, states, rates, variables))
	case analysis.NodeLog10:
		return math.Log10(eval(n.X, voi, states, rates, variables))
	case analysis.NodeSqrt:
		return math.Sqrt(eval(n.X, voi, states, rates, variables))
	case analysis.NodeSin:
		return math.Sin(eval(n.X, voi, states, rates, variables))
	case analysis.NodeCos:
		return math.Cos(eval(n.X, voi, states, rates, variables))
	case analysis.NodeTan:
		return math.Tan(eval(n.X, voi, states, rates, variables))
	case analysis.NodeAsin:
		return math.Asin(eval(n.X, voi, states, rates, variables))
	case analysis.NodeAcos:
		return math.Acos(eval(n.X, voi, states, rates, variables))
	case analysis.NodeAtan:
		return math.Atan(eval(n.X, voi, states, rates, variables))
	case analysis.NodeSinh:
		return math.Sinh(eval(n.X, voi, states, rates, variables))
	case analysis.NodeCosh:
		return math.Cosh(eval(n.X, voi, states, rates, variables))
	case analysis.NodeTanh:
		return math.Tanh(eval(n.X, voi, states, rates, variables))
	case analysis.NodeFloor:
		return math.Floor(eval(n.X, voi, states, rates, variables))
	case analysis.NodeCeil:
		return math.Ceil(eval(n.X, voi, states, rates, variables))

	case analysis.NodePiecewise:
		if eval(n.X, voi, states, rates, variables) != 0 {
			return eval(n.Y, voi, states, rates, variables)
		}
		return eval(n.Z, voi, states, rates, variables)

	default:
		log.Panicf("unknown opcode %d", int(n.Op))
		return 0
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
