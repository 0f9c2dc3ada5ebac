package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/odegen/analysis"
	"github.com/sarchlab/odegen/model"
)

// derivativeOnRHSModel is a one-state model whose algebraic variable
// reads the rate computed in the same step.
func derivativeOnRHSModel() *model.Definition {
	def := model.NewDefinition("derivative_on_rhs")

	def.AddVariable(model.NewVariable(
		"t", "second", "environment", model.VariableOfIntegration))
	def.AddVariable(model.NewVariable(
		"v", "dimensionless", "my_ode", model.State).WithInitialValue(1.0))
	def.AddVariable(model.NewVariable(
		"a", "per_s", "my_ode", model.Constant).WithInitialValue(1.0))
	def.AddVariable(model.NewVariable(
		"x", "per_s", "my_algebraic_eqn", model.Algebraic))

	def.AddEquation(model.RateOf("v", model.Var("a")))
	def.AddEquation(model.Assign("x", model.Rate("v")))

	return def
}

var _ = Describe("Analyze", func() {
	It("should resolve the derivative-on-rhs model", func() {
		plan, err := analysis.Analyze(derivativeOnRHSModel())

		Expect(err).ToNot(HaveOccurred())
		Expect(plan.StateCount()).To(Equal(1))
		Expect(plan.VariableCount()).To(Equal(2))

		Expect(plan.Voi.Name).To(Equal("t"))
		Expect(plan.Voi.Kind).To(Equal(model.VariableOfIntegration))

		Expect(plan.States[0].Name).To(Equal("v"))
		Expect(plan.States[0].Kind).To(Equal(model.State))

		Expect(plan.Variables[0].Name).To(Equal("a"))
		Expect(plan.Variables[0].Kind).To(Equal(model.Constant))
		Expect(plan.Variables[1].Name).To(Equal("x"))
		Expect(plan.Variables[1].Kind).To(Equal(model.Algebraic))
	})

	It("should put literal initial values in declaration order", func() {
		plan, _ := analysis.Analyze(derivativeOnRHSModel())

		Expect(plan.Init).To(HaveLen(2))

		Expect(plan.Init[0].Store).To(Equal(analysis.StoreState))
		Expect(plan.Init[0].Index).To(Equal(0))
		Expect(plan.Init[0].RHS.Value).To(Equal(1.0))

		Expect(plan.Init[1].Store).To(Equal(analysis.StoreVariable))
		Expect(plan.Init[1].Index).To(Equal(0))
	})

	It("should leave the computed-constant phase empty", func() {
		plan, _ := analysis.Analyze(derivativeOnRHSModel())

		Expect(plan.ComputedConstants).To(BeEmpty())
	})

	It("should keep the rate-reading equation out of the rates phase", func() {
		plan, _ := analysis.Analyze(derivativeOnRHSModel())

		Expect(plan.Rates).To(HaveLen(1))
		Expect(plan.Rates[0].Store).To(Equal(analysis.StoreRate))
		Expect(plan.Rates[0].Index).To(Equal(0))
		Expect(plan.Rates[0].RHS.Op).To(Equal(analysis.NodeVariable))

		Expect(plan.Algebraic).To(HaveLen(1))
		Expect(plan.Algebraic[0].Store).To(Equal(analysis.StoreVariable))
		Expect(plan.Algebraic[0].Index).To(Equal(1))
		Expect(plan.Algebraic[0].RHS.Op).To(Equal(analysis.NodeRate))
	})

	It("should inline algebraic dependencies into the rates phase", func() {
		def := model.NewDefinition("gating")
		def.AddVariable(model.NewVariable(
			"t", "ms", "environment", model.VariableOfIntegration))
		def.AddVariable(model.NewVariable(
			"m", "dimensionless", "gate", model.State).WithInitialValue(0.05))
		def.AddVariable(model.NewVariable(
			"alpha", "per_ms", "gate", model.Algebraic))

		def.AddEquation(model.RateOf("m",
			model.Mul(model.Var("alpha"),
				model.Sub(model.Num(1), model.Var("m")))))
		def.AddEquation(model.Assign("alpha",
			model.Exp(model.Neg(model.Var("m")))))

		plan, err := analysis.Analyze(def)

		Expect(err).ToNot(HaveOccurred())

		// alpha first, then the rate that reads it.
		Expect(plan.Rates).To(HaveLen(2))
		Expect(plan.Rates[0].Store).To(Equal(analysis.StoreVariable))
		Expect(plan.Rates[0].Index).To(Equal(0))
		Expect(plan.Rates[1].Store).To(Equal(analysis.StoreRate))

		// alpha is recomputed in the algebraic phase as well.
		Expect(plan.Algebraic).To(HaveLen(1))
		Expect(plan.Algebraic[0].Store).To(Equal(analysis.StoreVariable))
	})

	It("should settle computed constants by fixpoint", func() {
		def := model.NewDefinition("nernst")
		def.AddVariable(model.NewVariable(
			"t", "ms", "environment", model.VariableOfIntegration))
		def.AddVariable(model.NewVariable(
			"v", "mV", "membrane", model.State).WithInitialValue(0))
		def.AddVariable(model.NewVariable(
			"E_R", "mV", "membrane", model.Constant).WithInitialValue(0))
		def.AddVariable(model.NewVariable(
			"E_K", "mV", "potassium", model.Algebraic))
		def.AddVariable(model.NewVariable(
			"E_K2", "mV", "potassium", model.Algebraic))
		def.AddVariable(model.NewVariable(
			"i", "uA", "potassium", model.Algebraic))

		def.AddEquation(model.RateOf("v", model.Var("i")))
		def.AddEquation(model.Assign("E_K",
			model.Add(model.Var("E_R"), model.Num(12))))
		def.AddEquation(model.Assign("E_K2",
			model.Mul(model.Var("E_K"), model.Num(2))))
		def.AddEquation(model.Assign("i",
			model.Sub(model.Var("v"), model.Var("E_K2"))))

		plan, err := analysis.Analyze(def)

		Expect(err).ToNot(HaveOccurred())

		// E_K and E_K2 are invariant across the run; i is not.
		Expect(plan.ComputedConstants).To(HaveLen(2))
		Expect(plan.Variables[1].Kind).To(Equal(model.ComputedConstant))
		Expect(plan.Variables[2].Kind).To(Equal(model.ComputedConstant))
		Expect(plan.Variables[3].Kind).To(Equal(model.Algebraic))

		// E_K must be settled before E_K2.
		Expect(plan.ComputedConstants[0].Index).To(Equal(1))
		Expect(plan.ComputedConstants[1].Index).To(Equal(2))

		// Only i is evaluated with the rates.
		Expect(plan.Rates).To(HaveLen(2))
		Expect(plan.Rates[0].Store).To(Equal(analysis.StoreVariable))
		Expect(plan.Rates[0].Index).To(Equal(3))
	})
})

var _ = Describe("Analyze error reporting", func() {
	var def *model.Definition

	BeforeEach(func() {
		def = model.NewDefinition("broken")
		def.AddVariable(model.NewVariable(
			"t", "second", "environment", model.VariableOfIntegration))
		def.AddVariable(model.NewVariable(
			"v", "dimensionless", "membrane", model.State).
			WithInitialValue(1.0))
		def.AddEquation(model.RateOf("v", model.Num(1)))
	})

	It("should reject an undeclared reference", func() {
		def.AddVariable(model.NewVariable(
			"x", "per_s", "eqn", model.Algebraic))
		def.AddEquation(model.Assign("x", model.Var("missing")))

		_, err := analysis.Analyze(def)

		var unresolved analysis.UnresolvedReferenceError
		Expect(err).To(BeAssignableToTypeOf(unresolved))

		unresolved = err.(analysis.UnresolvedReferenceError)
		Expect(unresolved.Target).To(Equal("x"))
		Expect(unresolved.Name).To(Equal("missing"))
	})

	It("should reject a rate of a non-state", func() {
		def.AddVariable(model.NewVariable(
			"x", "per_s", "eqn", model.Algebraic))
		def.AddEquation(model.Assign("x", model.Rate("t")))

		_, err := analysis.Analyze(def)

		Expect(err).To(BeAssignableToTypeOf(
			analysis.UnresolvedReferenceError{}))
	})

	It("should reject two equations with the same target", func() {
		def.AddVariable(model.NewVariable(
			"x", "per_s", "eqn", model.Algebraic))
		def.AddEquation(model.Assign("x", model.Num(1)))
		def.AddEquation(model.Assign("x", model.Num(2)))

		_, err := analysis.Analyze(def)

		var dup analysis.DuplicateAssignmentError
		Expect(err).To(BeAssignableToTypeOf(dup))

		dup = err.(analysis.DuplicateAssignmentError)
		Expect(dup.Variable).To(Equal("x"))
		Expect(dup.Component).To(Equal("eqn"))
	})

	It("should reject an equation over a constant", func() {
		def.AddVariable(model.NewVariable(
			"g", "mS", "leak", model.Constant).WithInitialValue(0.3))
		def.AddEquation(model.Assign("g", model.Num(1)))

		_, err := analysis.Analyze(def)

		Expect(err).To(BeAssignableToTypeOf(
			analysis.DuplicateAssignmentError{}))
	})

	It("should reject a variable no equation defines", func() {
		def.AddVariable(model.NewVariable(
			"x", "per_s", "eqn", model.Algebraic))

		_, err := analysis.Analyze(def)

		var missing analysis.MissingAssignmentError
		Expect(err).To(BeAssignableToTypeOf(missing))

		missing = err.(analysis.MissingAssignmentError)
		Expect(missing.Variable).To(Equal("x"))
	})

	It("should reject a state without an initial value", func() {
		def.AddVariable(model.NewVariable(
			"w", "dimensionless", "membrane", model.State))
		def.AddEquation(model.RateOf("w", model.Num(0)))

		_, err := analysis.Analyze(def)

		Expect(err).To(BeAssignableToTypeOf(
			analysis.MissingInitialValueError{}))
	})

	It("should reject an algebraic cycle and name it", func() {
		def.AddVariable(model.NewVariable(
			"p", "per_s", "eqn", model.Algebraic))
		def.AddVariable(model.NewVariable(
			"q", "per_s", "eqn", model.Algebraic))
		def.AddEquation(model.Assign("p", model.Var("q")))
		def.AddEquation(model.Assign("q", model.Var("p")))

		_, err := analysis.Analyze(def)

		var cyclic analysis.CyclicDependencyError
		Expect(err).To(BeAssignableToTypeOf(cyclic))

		cyclic = err.(analysis.CyclicDependencyError)
		Expect(cyclic.Variables).To(ConsistOf("p", "q"))
	})

	It("should reject a cycle through a rate", func() {
		def2 := model.NewDefinition("rate_cycle")
		def2.AddVariable(model.NewVariable(
			"t", "second", "environment", model.VariableOfIntegration))
		def2.AddVariable(model.NewVariable(
			"v", "dimensionless", "membrane", model.State).
			WithInitialValue(0))
		def2.AddVariable(model.NewVariable(
			"x", "per_s", "eqn", model.Algebraic))
		def2.AddEquation(model.RateOf("v", model.Var("x")))
		def2.AddEquation(model.Assign("x", model.Rate("v")))

		_, err := analysis.Analyze(def2)

		Expect(err).To(BeAssignableToTypeOf(
			analysis.CyclicDependencyError{}))
	})

	It("should require a variable of integration", func() {
		def2 := model.NewDefinition("no_voi")
		def2.AddVariable(model.NewVariable(
			"k", "dimensionless", "c", model.Constant).WithInitialValue(1))

		_, err := analysis.Analyze(def2)

		Expect(err).To(BeAssignableToTypeOf(analysis.InvalidModelError{}))
	})

	It("should reject a second variable of integration", func() {
		def.AddVariable(model.NewVariable(
			"t2", "second", "environment", model.VariableOfIntegration))

		_, err := analysis.Analyze(def)

		Expect(err).To(BeAssignableToTypeOf(analysis.InvalidModelError{}))
	})
})
