package model

// An Expr is a node of a model expression. The node set is closed:
// expressions are built from the constructors in this file and consumed
// by analysis, which rewrites references into array indices.
type Expr interface {
	isExpr()
}

// A Number is a literal constant.
type Number struct {
	Value float64
}

// A VoiRef reads the current value of the variable of integration.
type VoiRef struct{}

// A Ref reads a variable by name. The name may also resolve to the
// variable of integration.
type Ref struct {
	Name string
}

// A RateRef reads the rate of a state, d(name)/d(voi). Only equations
// evaluated in the algebraic phase may read rates.
type RateRef struct {
	Name string
}

// UnaryOp enumerates unary operators.
type UnaryOp int

// Unary operators.
const (
	OpNeg UnaryOp = iota
	OpNot
)

// A Unary applies a unary operator to an operand.
type Unary struct {
	Op UnaryOp
	X  Expr
}

// BinaryOp enumerates binary operators. Comparison and logic operators
// evaluate to 1.0 or 0.0.
type BinaryOp int

// Binary operators.
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpMin
	OpMax
)

// A Binary applies a binary operator to two operands.
type Binary struct {
	Op   BinaryOp
	X, Y Expr
}

// Func enumerates the supported unary functions.
type Func int

// Unary functions.
const (
	FnAbs Func = iota
	FnExp
	FnLn
	FnLog10
	FnSqrt
	FnSin
	FnCos
	FnTan
	FnAsin
	FnAcos
	FnAtan
	FnSinh
	FnCosh
	FnTanh
	FnFloor
	FnCeil
)

// A Call applies a unary function to an operand.
type Call struct {
	Fn Func
	X  Expr
}

// A Piecewise selects Then when Cond is non-zero and Else otherwise.
type Piecewise struct {
	Cond, Then, Else Expr
}

func (Number) isExpr()    {}
func (VoiRef) isExpr()    {}
func (Ref) isExpr()       {}
func (RateRef) isExpr()   {}
func (Unary) isExpr()     {}
func (Binary) isExpr()    {}
func (Call) isExpr()      {}
func (Piecewise) isExpr() {}

// Num creates a literal constant.
func Num(v float64) Expr { return Number{Value: v} }

// Voi reads the variable of integration.
func Voi() Expr { return VoiRef{} }

// Var reads a variable by name.
func Var(name string) Expr { return Ref{Name: name} }

// Rate reads the rate of the named state.
func Rate(name string) Expr { return RateRef{Name: name} }

// Neg negates an expression.
func Neg(x Expr) Expr { return Unary{Op: OpNeg, X: x} }

// Not logically negates an expression.
func Not(x Expr) Expr { return Unary{Op: OpNot, X: x} }

// Add adds two expressions.
func Add(x, y Expr) Expr { return Binary{Op: OpAdd, X: x, Y: y} }

// Sub subtracts y from x.
func Sub(x, y Expr) Expr { return Binary{Op: OpSub, X: x, Y: y} }

// Mul multiplies two expressions.
func Mul(x, y Expr) Expr { return Binary{Op: OpMul, X: x, Y: y} }

// Div divides x by y.
func Div(x, y Expr) Expr { return Binary{Op: OpDiv, X: x, Y: y} }

// Pow raises x to the power y.
func Pow(x, y Expr) Expr { return Binary{Op: OpPow, X: x, Y: y} }

// Eq compares two expressions for equality.
func Eq(x, y Expr) Expr { return Binary{Op: OpEq, X: x, Y: y} }

// Ne compares two expressions for inequality.
func Ne(x, y Expr) Expr { return Binary{Op: OpNe, X: x, Y: y} }

// Lt is the less-than comparison.
func Lt(x, y Expr) Expr { return Binary{Op: OpLt, X: x, Y: y} }

// Le is the less-than-or-equal comparison.
func Le(x, y Expr) Expr { return Binary{Op: OpLe, X: x, Y: y} }

// Gt is the greater-than comparison.
func Gt(x, y Expr) Expr { return Binary{Op: OpGt, X: x, Y: y} }

// Ge is the greater-than-or-equal comparison.
func Ge(x, y Expr) Expr { return Binary{Op: OpGe, X: x, Y: y} }

// And is the logical conjunction of two expressions.
func And(x, y Expr) Expr { return Binary{Op: OpAnd, X: x, Y: y} }

// Or is the logical disjunction of two expressions.
func Or(x, y Expr) Expr { return Binary{Op: OpOr, X: x, Y: y} }

// Min is the smaller of two expressions.
func Min(x, y Expr) Expr { return Binary{Op: OpMin, X: x, Y: y} }

// Max is the larger of two expressions.
func Max(x, y Expr) Expr { return Binary{Op: OpMax, X: x, Y: y} }

// Fn applies a unary function.
func Fn(fn Func, x Expr) Expr { return Call{Fn: fn, X: x} }

// Exp is the natural exponential.
func Exp(x Expr) Expr { return Call{Fn: FnExp, X: x} }

// Ln is the natural logarithm.
func Ln(x Expr) Expr { return Call{Fn: FnLn, X: x} }

// Sqrt is the square root.
func Sqrt(x Expr) Expr { return Call{Fn: FnSqrt, X: x} }

// If selects then when cond is non-zero and otherwise else.
func If(cond, then, els Expr) Expr {
	return Piecewise{Cond: cond, Then: then, Else: els}
}
