// Package driver runs a compiled model across the variable of
// integration, honoring the phase-ordering contract the generated
// artifact relies on.
package driver

// A System is the generated-artifact contract that the driver consumes.
// Both in-process compiled models and wrappers around emitted source
// satisfy it.
//
// The storage arrays returned by the Create functions are owned by the
// caller. A System holds no mutable state, so one System may serve any
// number of concurrent runs as long as each run owns its own arrays.
type System interface {
	StateCount() int
	VariableCount() int

	CreateStatesArray() []float64
	CreateRatesArray() []float64
	CreateVariablesArray() []float64

	InitialiseVariables(states, variables []float64)
	ComputeComputedConstants(variables []float64)
	ComputeRates(voi float64, states, rates, variables []float64)
	ComputeVariables(voi float64, states, rates, variables []float64)
}
