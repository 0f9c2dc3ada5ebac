package analysis

import "github.com/sarchlab/odegen/model"

// A VariableInfo is one metadata record of a compiled model. The index
// of a record in the state or variable sequence equals the index of its
// slot in the matching storage array.
type VariableInfo struct {
	Name      string
	Units     string
	Component string
	Kind      model.VariableKind
}

// StoreKind tells which storage array an instruction writes.
type StoreKind int

// The storage arrays an instruction can write.
const (
	StoreState StoreKind = iota
	StoreRate
	StoreVariable
)

// Opcode enumerates the operations of a resolved expression node.
type Opcode int

// Resolved expression operations. Comparison and logic nodes evaluate
// to 1.0 or 0.0.
const (
	NodeNumber Opcode = iota
	NodeVoi
	NodeState
	NodeRate
	NodeVariable
	NodeNeg
	NodeNot
	NodeAdd
	NodeSub
	NodeMul
	NodeDiv
	NodePow
	NodeEq
	NodeNe
	NodeLt
	NodeLe
	NodeGt
	NodeGe
	NodeAnd
	NodeOr
	NodeMin
	NodeMax
	NodeAbs
	NodeExp
	NodeLn
	NodeLog10
	NodeSqrt
	NodeSin
	NodeCos
	NodeTan
	NodeAsin
	NodeAcos
	NodeAtan
	NodeSinh
	NodeCosh
	NodeTanh
	NodeFloor
	NodeCeil
	NodePiecewise
)

// A Node is one operation of a resolved expression. References carry
// the storage index they were resolved to. Piecewise nodes use X as the
// condition, Y as the then-branch, and Z as the else-branch.
type Node struct {
	Op    Opcode
	Value float64
	Index int
	X     *Node
	Y     *Node
	Z     *Node
}

// An Instruction writes the value of RHS into one storage slot.
type Instruction struct {
	Store StoreKind
	Index int
	RHS   *Node
}

// A Plan is the resolved, index-rewritten, phase-partitioned form of a
// model definition. It is immutable once built and is what the compiled
// evaluator and the code generator consume.
type Plan struct {
	ModelName string

	Voi       VariableInfo
	States    []VariableInfo
	Variables []VariableInfo

	// Init writes every literal initial value. ComputedConstants
	// populates slots that depend on constants only. Rates writes every
	// rate, interleaved with the algebraic slots the rates read.
	// Algebraic recomputes every algebraic slot and may read rates.
	Init              []Instruction
	ComputedConstants []Instruction
	Rates             []Instruction
	Algebraic         []Instruction
}

// StateCount returns the length of the state and rate arrays.
func (p *Plan) StateCount() int {
	return len(p.States)
}

// VariableCount returns the length of the variable array.
func (p *Plan) VariableCount() int {
	return len(p.Variables)
}
