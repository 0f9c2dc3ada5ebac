package model

import "log"

// VariableKind defines the role that a variable plays in a model.
type VariableKind int

// The roles a variable can take. Equation-defined variables may be
// declared Algebraic or ComputedConstant; analysis settles the final
// role from the dependency graph.
const (
	VariableOfIntegration VariableKind = iota
	State
	Constant
	ComputedConstant
	Algebraic
)

// Name returns the name of a variable kind.
func (k VariableKind) String() string {
	switch k {
	case VariableOfIntegration:
		return "variable_of_integration"
	case State:
		return "state"
	case Constant:
		return "constant"
	case ComputedConstant:
		return "computed_constant"
	case Algebraic:
		return "algebraic"
	default:
		log.Panicf("unknown variable kind %d", int(k))
		return ""
	}
}

// A Variable is one quantity of a model. States and variables are
// array-resident; the variable of integration is a scalar passed to the
// evaluators by the caller.
type Variable struct {
	Name      string
	Units     string
	Component string
	Kind      VariableKind

	InitialValue    float64
	HasInitialValue bool
}

// NewVariable creates a variable with the given name, units, owning
// component, and kind.
func NewVariable(name, units, component string, kind VariableKind) Variable {
	return Variable{
		Name:      name,
		Units:     units,
		Component: component,
		Kind:      kind,
	}
}

// WithInitialValue returns a copy of the variable that carries a literal
// initial value. States and constants require one.
func (v Variable) WithInitialValue(value float64) Variable {
	v.InitialValue = value
	v.HasInitialValue = true
	return v
}
