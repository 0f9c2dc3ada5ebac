package driver

// A Stepper advances the state array from voi to voi+h. The rates array
// holds a fresh ComputeRates result for the current voi when Advance is
// called; multi-stage steppers may call ComputeRates again with scratch
// arrays of their own.
type Stepper interface {
	Advance(sys System, voi float64, states, rates, variables []float64, h float64)
}

// ForwardEuler is the fixed-step reference stepper. Anything beyond a
// single explicit stage is the caller's business.
type ForwardEuler struct{}

// Advance applies one explicit Euler step in place.
func (ForwardEuler) Advance(
	sys System,
	voi float64,
	states, rates, variables []float64,
	h float64,
) {
	for i := range states {
		states[i] += h * rates[i]
	}
}
