package driver

import (
	"context"
	"math"
)

// A StepInfo is the hook item delivered at each step position. The
// slices alias the run's storage arrays; hooks must treat them as
// read-only and must not retain them across steps.
type StepInfo struct {
	Step      int
	Voi       float64
	States    []float64
	Rates     []float64
	Variables []float64
}

// A Result is the final snapshot of a completed run.
type Result struct {
	Voi       float64
	Steps     int
	States    []float64
	Rates     []float64
	Variables []float64
}

// A Driver owns one simulation run over a System. It allocates the
// storage arrays, runs the evaluator phases in contract order, and
// fires hooks as the run progresses.
type Driver struct {
	HookableBase

	sys      System
	stepper  Stepper
	from, to float64
	stepSize float64
}

// A Builder can be used to build a driver.
type Builder struct {
	sys      System
	stepper  Stepper
	from, to float64
	stepSize float64
}

// MakeBuilder creates a new builder with a forward Euler stepper and a
// step size of 0.001.
func MakeBuilder() Builder {
	return Builder{
		stepper:  ForwardEuler{},
		stepSize: 0.001,
	}
}

// WithSystem sets the system to run.
func (b Builder) WithSystem(sys System) Builder {
	b.sys = sys
	return b
}

// WithStepper sets the stepper that advances the states.
func (b Builder) WithStepper(s Stepper) Builder {
	b.stepper = s
	return b
}

// WithRange sets the voi interval to run over.
func (b Builder) WithRange(from, to float64) Builder {
	b.from = from
	b.to = to
	return b
}

// WithStepSize sets the voi increment per step.
func (b Builder) WithStepSize(h float64) Builder {
	b.stepSize = h
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.sys == nil {
		panic("no system to run")
	}

	if b.stepSize <= 0 {
		panic("step size must be positive")
	}

	if b.to < b.from {
		panic("run range ends before it starts")
	}
}

// Build builds the driver.
func (b Builder) Build() *Driver {
	b.parametersMustBeValid()

	return &Driver{
		sys:      b.sys,
		stepper:  b.stepper,
		from:     b.from,
		to:       b.to,
		stepSize: b.stepSize,
	}
}

// StepCount returns the number of steps the run will take.
func (d *Driver) StepCount() int {
	return int(math.Round((d.to - d.from) / d.stepSize))
}

// Run executes the run to completion. It initialises fresh storage
// arrays, runs the computed-constants phase once, and then alternates
// ComputeRates and ComputeVariables across the steps. Cancelling the
// context stops the run between steps.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	states := d.sys.CreateStatesArray()
	rates := d.sys.CreateRatesArray()
	variables := d.sys.CreateVariablesArray()

	d.sys.InitialiseVariables(states, variables)
	d.sys.ComputeComputedConstants(variables)

	d.InvokeHook(HookCtx{Domain: d, Pos: HookPosRunStart})

	totalSteps := d.StepCount()
	voi := d.from

	for step := 0; step <= totalSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Deriving the voi from the step index keeps long runs free of
		// accumulated rounding drift.
		voi = d.from + float64(step)*d.stepSize

		d.sys.ComputeRates(voi, states, rates, variables)
		d.sys.ComputeVariables(voi, states, rates, variables)

		d.InvokeHook(HookCtx{
			Domain: d,
			Pos:    HookPosStepEnd,
			Item: StepInfo{
				Step:      step,
				Voi:       voi,
				States:    states,
				Rates:     rates,
				Variables: variables,
			},
		})

		if step < totalSteps {
			d.stepper.Advance(d.sys, voi, states, rates, variables, d.stepSize)
		}
	}

	result := &Result{
		Voi:       voi,
		Steps:     totalSteps,
		States:    states,
		Rates:     rates,
		Variables: variables,
	}

	d.InvokeHook(HookCtx{Domain: d, Pos: HookPosRunEnd, Item: result})

	return result, nil
}
