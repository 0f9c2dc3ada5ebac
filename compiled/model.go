// Package compiled provides the executable form of an analyzed model:
// the storage-array constructors, metadata tables, and the four phase
// evaluators that a numerical integrator drives.
package compiled

import (
	"github.com/sarchlab/odegen/analysis"
	"github.com/sarchlab/odegen/model"
)

// A Model is one compiled model. It is immutable after Build and holds
// no mutable state of its own; the storage arrays belong to the caller.
// Any number of runs may evaluate the same Model concurrently as long
// as each run owns its arrays.
//
// The evaluators must be called in contract order:
//
//	InitialiseVariables -> ComputeComputedConstants ->
//	{ComputeRates -> ComputeVariables}*
//
// Calling them out of order leaves stale values in dependent slots; it
// is a caller contract, not a checked error.
type Model struct {
	name    string
	version string

	voi       analysis.VariableInfo
	states    []analysis.VariableInfo
	variables []analysis.VariableInfo

	init              []analysis.Instruction
	computedConstants []analysis.Instruction
	rates             []analysis.Instruction
	algebraic         []analysis.Instruction
}

// Build turns a plan into a compiled model.
func Build(plan *analysis.Plan) *Model {
	return &Model{
		name:              plan.ModelName,
		version:           model.GeneratorVersion,
		voi:               plan.Voi,
		states:            plan.States,
		variables:         plan.Variables,
		init:              plan.Init,
		computedConstants: plan.ComputedConstants,
		rates:             plan.Rates,
		algebraic:         plan.Algebraic,
	}
}

// Name returns the model name.
func (m *Model) Name() string {
	return m.name
}

// Version returns the generator version tag baked into the model.
func (m *Model) Version() string {
	return m.version
}

// StateCount returns the length of the state and rate arrays.
func (m *Model) StateCount() int {
	return len(m.states)
}

// VariableCount returns the length of the variable array.
func (m *Model) VariableCount() int {
	return len(m.variables)
}

// Voi returns the metadata record of the variable of integration.
func (m *Model) Voi() analysis.VariableInfo {
	return m.voi
}

// States returns the state metadata records. The index of a record
// equals the index of its slot in the state array.
func (m *Model) States() []analysis.VariableInfo {
	return m.states
}

// Variables returns the variable metadata records. The index of a
// record equals the index of its slot in the variable array.
func (m *Model) Variables() []analysis.VariableInfo {
	return m.variables
}

// CreateStatesArray returns a zero-initialized state array.
func (m *Model) CreateStatesArray() []float64 {
	return make([]float64, len(m.states))
}

// CreateRatesArray returns a zero-initialized rate array. It has the
// same shape as the state array.
func (m *Model) CreateRatesArray() []float64 {
	return make([]float64, len(m.states))
}

// CreateVariablesArray returns a zero-initialized variable array.
func (m *Model) CreateVariablesArray() []float64 {
	return make([]float64, len(m.variables))
}

// InitialiseVariables writes the literal initial value of every state
// and constant. It must run once per simulation, before any other
// phase.
func (m *Model) InitialiseVariables(states, variables []float64) {
	m.run(m.init, 0, states, nil, variables)
}

// ComputeComputedConstants populates the slots that depend on constants
// only. A model without computed constants makes this a no-op.
func (m *Model) ComputeComputedConstants(variables []float64) {
	m.run(m.computedConstants, 0, nil, nil, variables)
}

// ComputeRates writes every rate as a function of the voi, the states,
// and the variables. Algebraic slots the rates depend on are refreshed
// in place along the way. It never writes states and may be called any
// number of times per step. This is the hot path; it allocates nothing.
func (m *Model) ComputeRates(voi float64, states, rates, variables []float64) {
	m.run(m.rates, voi, states, rates, variables)
}

// ComputeVariables evaluates the remaining algebraic slots, which may
// read the rates produced by the last ComputeRates call. It runs once
// per accepted integrator step.
func (m *Model) ComputeVariables(voi float64, states, rates, variables []float64) {
	m.run(m.algebraic, voi, states, rates, variables)
}

func (m *Model) run(
	instrs []analysis.Instruction,
	voi float64,
	states, rates, variables []float64,
) {
	for _, in := range instrs {
		v := eval(in.RHS, voi, states, rates, variables)

		switch in.Store {
		case analysis.StoreState:
			states[in.Index] = v
		case analysis.StoreRate:
			rates[in.Index] = v
		case analysis.StoreVariable:
			variables[in.Index] = v
		}
	}
}
