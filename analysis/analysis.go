// Package analysis resolves a model definition into a dependency-ordered
// plan. It rewrites named references into storage indices, settles the
// final role of every variable, partitions the equations into the four
// evaluation phases, and rejects models that no generated code could
// evaluate.
package analysis

import (
	"log"

	"github.com/sarchlab/odegen/model"
)

// Analyze resolves a definition into a plan. It fails with a typed
// error when the definition references undeclared variables, assigns a
// variable twice, leaves a variable undefined, or contains a dependency
// cycle. A plan that Analyze returns is valid by construction; the
// evaluators built from it cannot fail at runtime.
func Analyze(def *model.Definition) (*Plan, error) {
	a := &analyzer{
		def:         def,
		stateIndex:  make(map[string]int),
		varIndex:    make(map[string]int),
		assignByVar: make(map[string]*equation),
		rateByState: make(map[string]*equation),
	}

	steps := []func() error{
		a.partitionVariables,
		a.checkInitialValues,
		a.resolveEquations,
		a.checkCompleteness,
		a.inferComputedConstants,
		a.sortEquations,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	return a.buildPlan(), nil
}

// An equation is the resolved form of one model equation, annotated
// with everything it reads.
type equation struct {
	target    string
	component string
	isRate    bool
	rhs       *Node

	readsVoi    bool
	readsStates bool
	readsVars   []string
	readsRates  []string

	isComputedConstant bool
	order              int
}

type analyzer struct {
	def *model.Definition

	voi      model.Variable
	voiFound bool

	states    []model.Variable
	arrayVars []model.Variable

	stateIndex map[string]int
	varIndex   map[string]int

	equations   []*equation
	assignByVar map[string]*equation
	rateByState map[string]*equation

	sorted []*equation
}

func (a *analyzer) partitionVariables() error {
	for _, v := range a.def.Variables() {
		switch v.Kind {
		case model.VariableOfIntegration:
			if a.voiFound {
				return InvalidModelError{
					Reason: "more than one variable of integration (" +
						a.voi.Name + ", " + v.Name + ")",
				}
			}
			a.voi = v
			a.voiFound = true
		case model.State:
			a.stateIndex[v.Name] = len(a.states)
			a.states = append(a.states, v)
		case model.Constant, model.ComputedConstant, model.Algebraic:
			a.varIndex[v.Name] = len(a.arrayVars)
			a.arrayVars = append(a.arrayVars, v)
		default:
			log.Panicf("unknown variable kind %d", int(v.Kind))
		}
	}

	if !a.voiFound {
		return InvalidModelError{Reason: "no variable of integration"}
	}

	return nil
}

func (a *analyzer) checkInitialValues() error {
	if a.voi.HasInitialValue {
		return InvalidModelError{
			Reason: "variable of integration " + a.voi.Name +
				" cannot carry an initial value",
		}
	}

	for _, s := range a.states {
		if !s.HasInitialValue {
			return MissingInitialValueError{
				Variable:  s.Name,
				Component: s.Component,
			}
		}
	}

	for _, v := range a.arrayVars {
		switch {
		case v.Kind == model.Constant && !v.HasInitialValue:
			return MissingInitialValueError{
				Variable:  v.Name,
				Component: v.Component,
			}
		case v.Kind != model.Constant && v.HasInitialValue:
			// An initial value and an equation would both define it.
			return DuplicateAssignmentError{
				Variable:  v.Name,
				Component: v.Component,
			}
		}
	}

	return nil
}

func (a *analyzer) resolveEquations() error {
	for _, meq := range a.def.Equations() {
		var err error
		if meq.IsRate {
			err = a.resolveRateEquation(meq)
		} else {
			err = a.resolveAssignEquation(meq)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (a *analyzer) resolveRateEquation(meq model.Equation) error {
	v, declared := a.def.VariableByName(meq.Target)
	if !declared {
		return UnresolvedReferenceError{Target: meq.Target, Name: meq.Target}
	}

	if v.Kind != model.State {
		return InvalidModelError{
			Reason: "rate equation targets " + v.Name +
				", which is not a state",
		}
	}

	if _, dup := a.rateByState[v.Name]; dup {
		return DuplicateAssignmentError{
			Variable:  v.Name,
			Component: v.Component,
		}
	}

	eq := &equation{target: v.Name, component: v.Component, isRate: true}

	rhs, err := a.resolveExpr(eq, meq.RHS)
	if err != nil {
		return err
	}
	eq.rhs = rhs

	a.rateByState[v.Name] = eq
	a.equations = append(a.equations, eq)

	return nil
}

func (a *analyzer) resolveAssignEquation(meq model.Equation) error {
	v, declared := a.def.VariableByName(meq.Target)
	if !declared {
		return UnresolvedReferenceError{Target: meq.Target, Name: meq.Target}
	}

	switch v.Kind {
	case model.ComputedConstant, model.Algebraic:
	default:
		// States are defined by rate equations and constants by their
		// initial values; a direct assignment is a second definition.
		return DuplicateAssignmentError{
			Variable:  v.Name,
			Component: v.Component,
		}
	}

	if _, dup := a.assignByVar[v.Name]; dup {
		return DuplicateAssignmentError{
			Variable:  v.Name,
			Component: v.Component,
		}
	}

	eq := &equation{target: v.Name, component: v.Component}

	rhs, err := a.resolveExpr(eq, meq.RHS)
	if err != nil {
		return err
	}
	eq.rhs = rhs

	a.assignByVar[v.Name] = eq
	a.equations = append(a.equations, eq)

	return nil
}

func (a *analyzer) checkCompleteness() error {
	for _, s := range a.states {
		if _, found := a.rateByState[s.Name]; !found {
			return MissingAssignmentError{
				Variable:  s.Name,
				Component: s.Component,
			}
		}
	}

	for _, v := range a.arrayVars {
		if v.Kind == model.Constant {
			continue
		}
		if _, found := a.assignByVar[v.Name]; !found {
			return MissingAssignmentError{
				Variable:  v.Name,
				Component: v.Component,
			}
		}
	}

	return nil
}

// inferComputedConstants settles which equation-defined variables are
// invariant across a run. A variable is a computed constant when its
// equation reads nothing but constants and other computed constants,
// settled by fixpoint iteration.
func (a *analyzer) inferComputedConstants() error {
	isConstant := func(name string) bool {
		v, _ := a.def.VariableByName(name)
		if v.Kind == model.Constant {
			return true
		}
		eq, found := a.assignByVar[name]
		return found && eq.isComputedConstant
	}

	for changed := true; changed; {
		changed = false

		for _, eq := range a.equations {
			if eq.isRate || eq.isComputedConstant {
				continue
			}
			if eq.readsVoi || eq.readsStates || len(eq.readsRates) > 0 {
				continue
			}

			eligible := true
			for _, name := range eq.readsVars {
				if !isConstant(name) {
					eligible = false
					break
				}
			}

			if eligible {
				eq.isComputedConstant = true
				changed = true
			}
		}
	}

	return nil
}

// equationsRead returns the equations that eq depends on: the defining
// equation of every equation-defined variable it reads, and the rate
// equation of every rate it reads.
func (a *analyzer) equationsRead(eq *equation) []*equation {
	var deps []*equation

	for _, name := range eq.readsVars {
		if dep, found := a.assignByVar[name]; found {
			deps = append(deps, dep)
		}
	}

	for _, state := range eq.readsRates {
		deps = append(deps, a.rateByState[state])
	}

	return deps
}

const (
	markNone = iota
	markInProgress
	markDone
)

// sortEquations orders all equations topologically over the read/write
// dependency graph. A cycle is a generation-time error that names the
// variables involved.
func (a *analyzer) sortEquations() error {
	for _, eq := range a.equations {
		eq.order = markNone
	}

	var stack []*equation
	var visit func(eq *equation) error
	visit = func(eq *equation) error {
		switch eq.order {
		case markDone:
			return nil
		case markInProgress:
			return cycleError(stack, eq)
		}

		eq.order = markInProgress
		stack = append(stack, eq)

		for _, dep := range a.equationsRead(eq) {
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		eq.order = markDone
		a.sorted = append(a.sorted, eq)

		return nil
	}

	for _, eq := range a.equations {
		if err := visit(eq); err != nil {
			return err
		}
	}

	return nil
}

func cycleError(stack []*equation, start *equation) error {
	names := []string{start.target}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == start {
			break
		}
		names = append(names, stack[i].target)
	}

	// Restore discovery order.
	for i, j := 1, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}

	return CyclicDependencyError{Variables: names}
}

func (a *analyzer) buildPlan() *Plan {
	p := &Plan{
		ModelName: a.def.Name(),
		Voi:       a.variableInfo(a.voi),
	}

	for _, s := range a.states {
		p.States = append(p.States, a.variableInfo(s))
	}
	for _, v := range a.arrayVars {
		p.Variables = append(p.Variables, a.variableInfo(v))
	}

	p.Init = a.initInstructions()
	p.ComputedConstants = a.phaseInstructions(func(eq *equation) bool {
		return eq.isComputedConstant
	})
	p.Rates = a.rateInstructions()
	p.Algebraic = a.phaseInstructions(func(eq *equation) bool {
		return !eq.isRate && !eq.isComputedConstant
	})

	return p
}

// variableInfo builds the metadata record of a variable, with its final
// role settled by analysis rather than the declared one.
func (a *analyzer) variableInfo(v model.Variable) VariableInfo {
	kind := v.Kind
	if eq, found := a.assignByVar[v.Name]; found {
		kind = model.Algebraic
		if eq.isComputedConstant {
			kind = model.ComputedConstant
		}
	}

	return VariableInfo{
		Name:      v.Name,
		Units:     v.Units,
		Component: v.Component,
		Kind:      kind,
	}
}

func (a *analyzer) initInstructions() []Instruction {
	var instrs []Instruction

	for _, v := range a.def.Variables() {
		if !v.HasInitialValue {
			continue
		}

		instr := Instruction{RHS: &Node{Op: NodeNumber, Value: v.InitialValue}}
		if v.Kind == model.State {
			instr.Store = StoreState
			instr.Index = a.stateIndex[v.Name]
		} else {
			instr.Store = StoreVariable
			instr.Index = a.varIndex[v.Name]
		}

		instrs = append(instrs, instr)
	}

	return instrs
}

// rateInstructions emits the rate equations in dependency order,
// interleaved with the algebraic equations they transitively read. The
// algebraic slots written here are recomputed in the algebraic phase.
func (a *analyzer) rateInstructions() []Instruction {
	needed := make(map[*equation]bool)

	var require func(eq *equation)
	require = func(eq *equation) {
		if needed[eq] || eq.isComputedConstant {
			return
		}
		needed[eq] = true

		for _, dep := range a.equationsRead(eq) {
			require(dep)
		}
	}

	for _, eq := range a.sorted {
		if eq.isRate {
			require(eq)
		}
	}

	return a.phaseInstructions(func(eq *equation) bool {
		return needed[eq]
	})
}

// phaseInstructions filters the topologically sorted equations into a
// phase instruction list.
func (a *analyzer) phaseInstructions(include func(*equation) bool) []Instruction {
	var instrs []Instruction

	for _, eq := range a.sorted {
		if !include(eq) {
			continue
		}

		instr := Instruction{RHS: eq.rhs}
		if eq.isRate {
			instr.Store = StoreRate
			instr.Index = a.stateIndex[eq.target]
		} else {
			instr.Store = StoreVariable
			instr.Index = a.varIndex[eq.target]
		}

		instrs = append(instrs, instr)
	}

	return instrs
}
