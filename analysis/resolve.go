package analysis

import (
	"log"

	"github.com/sarchlab/odegen/model"
)

var binaryOpcodes = map[model.BinaryOp]Opcode{
	model.OpAdd: NodeAdd,
	model.OpSub: NodeSub,
	model.OpMul: NodeMul,
	model.OpDiv: NodeDiv,
	model.OpPow: NodePow,
	model.OpEq:  NodeEq,
	model.OpNe:  NodeNe,
	model.OpLt:  NodeLt,
	model.OpLe:  NodeLe,
	model.OpGt:  NodeGt,
	model.OpGe:  NodeGe,
	model.OpAnd: NodeAnd,
	model.OpOr:  NodeOr,
	model.OpMin: NodeMin,
	model.OpMax: NodeMax,
}

var funcOpcodes = map[model.Func]Opcode{
	model.FnAbs:   NodeAbs,
	model.FnExp:   NodeExp,
	model.FnLn:    NodeLn,
	model.FnLog10: NodeLog10,
	model.FnSqrt:  NodeSqrt,
	model.FnSin:   NodeSin,
	model.FnCos:   NodeCos,
	model.FnTan:   NodeTan,
	model.FnAsin:  NodeAsin,
	model.FnAcos:  NodeAcos,
	model.FnAtan:  NodeAtan,
	model.FnSinh:  NodeSinh,
	model.FnCosh:  NodeCosh,
	model.FnTanh:  NodeTanh,
	model.FnFloor: NodeFloor,
	model.FnCeil:  NodeCeil,
}

// resolveExpr rewrites a definition expression into a resolved node
// tree, recording on eq everything the expression reads.
func (a *analyzer) resolveExpr(eq *equation, e model.Expr) (*Node, error) {
	switch x := e.(type) {
	case model.Number:
		return &Node{Op: NodeNumber, Value: x.Value}, nil

	case model.VoiRef:
		eq.readsVoi = true
		return &Node{Op: NodeVoi}, nil

	case model.Ref:
		return a.resolveRef(eq, x.Name)

	case model.RateRef:
		idx, found := a.stateIndex[x.Name]
		if !found {
			return nil, UnresolvedReferenceError{
				Target: eq.target,
				Name:   x.Name,
			}
		}
		eq.readsRates = append(eq.readsRates, x.Name)
		return &Node{Op: NodeRate, Index: idx}, nil

	case model.Unary:
		op := NodeNeg
		if x.Op == model.OpNot {
			op = NodeNot
		}
		child, err := a.resolveExpr(eq, x.X)
		if err != nil {
			return nil, err
		}
		return &Node{Op: op, X: child}, nil

	case model.Binary:
		op, found := binaryOpcodes[x.Op]
		if !found {
			log.Panicf("unknown binary operator %d", int(x.Op))
		}
		left, err := a.resolveExpr(eq, x.X)
		if err != nil {
			return nil, err
		}
		right, err := a.resolveExpr(eq, x.Y)
		if err != nil {
			return nil, err
		}
		return &Node{Op: op, X: left, Y: right}, nil

	case model.Call:
		op, found := funcOpcodes[x.Fn]
		if !found {
			log.Panicf("unknown function %d", int(x.Fn))
		}
		child, err := a.resolveExpr(eq, x.X)
		if err != nil {
			return nil, err
		}
		return &Node{Op: op, X: child}, nil

	case model.Piecewise:
		cond, err := a.resolveExpr(eq, x.Cond)
		if err != nil {
			return nil, err
		}
		then, err := a.resolveExpr(eq, x.Then)
		if err != nil {
			return nil, err
		}
		els, err := a.resolveExpr(eq, x.Else)
		if err != nil {
			return nil, err
		}
		return &Node{Op: NodePiecewise, X: cond, Y: then, Z: els}, nil

	default:
		log.Panicf("unknown expression node %T", e)
		return nil, nil
	}
}

func (a *analyzer) resolveRef(eq *equation, name string) (*Node, error) {
	if name == a.voi.Name {
		eq.readsVoi = true
		return &Node{Op: NodeVoi}, nil
	}

	if idx, found := a.stateIndex[name]; found {
		eq.readsStates = true
		return &Node{Op: NodeState, Index: idx}, nil
	}

	if idx, found := a.varIndex[name]; found {
		eq.readsVars = append(eq.readsVars, name)
		return &Node{Op: NodeVariable, Index: idx}, nil
	}

	return nil, UnresolvedReferenceError{Target: eq.target, Name: name}
}
