package model

// GeneratorVersion tags compiled and emitted artifacts for
// compatibility diagnostics. It is informational and never enforced at
// runtime.
const GeneratorVersion = "0.9.0"

// An Equation is a directed assignment with a single target. Rate
// equations define d(Target)/d(voi); assign equations define the target
// itself.
type Equation struct {
	Target string
	IsRate bool
	RHS    Expr
}

// Assign creates an equation that defines target = rhs.
func Assign(target string, rhs Expr) Equation {
	return Equation{Target: target, RHS: rhs}
}

// RateOf creates an equation that defines d(state)/d(voi) = rhs.
func RateOf(state string, rhs Expr) Equation {
	return Equation{Target: state, IsRate: true, RHS: rhs}
}

// A Definition is the declarative form of a model: a named collection
// of variables and equations. It is handed to analysis, which resolves
// it into a dependency-ordered plan.
type Definition struct {
	name      string
	variables []Variable
	nameIndex map[string]int
	equations []Equation
}

// NewDefinition creates an empty model definition.
func NewDefinition(name string) *Definition {
	return &Definition{
		name:      name,
		nameIndex: make(map[string]int),
	}
}

// Name returns the model name.
func (d *Definition) Name() string {
	return d.name
}

// AddVariable registers a variable with the definition. Variable names
// are unique within a model.
func (d *Definition) AddVariable(v Variable) *Definition {
	if _, found := d.nameIndex[v.Name]; found {
		panic("variable " + v.Name + " already declared")
	}

	d.variables = append(d.variables, v)
	d.nameIndex[v.Name] = len(d.variables) - 1

	return d
}

// AddEquation registers an equation with the definition.
func (d *Definition) AddEquation(eq Equation) *Definition {
	d.equations = append(d.equations, eq)
	return d
}

// Variables returns the declared variables in declaration order.
func (d *Definition) Variables() []Variable {
	return d.variables
}

// VariableByName returns the declared variable with the given name.
func (d *Definition) VariableByName(name string) (Variable, bool) {
	i, found := d.nameIndex[name]
	if !found {
		return Variable{}, false
	}

	return d.variables[i], true
}

// Equations returns the declared equations in declaration order.
func (d *Definition) Equations() []Equation {
	return d.equations
}
