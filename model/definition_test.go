package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/odegen/model"
)

var _ = Describe("Definition", func() {
	var def *model.Definition

	BeforeEach(func() {
		def = model.NewDefinition("test_model")
	})

	It("should keep variables in declaration order", func() {
		def.AddVariable(model.NewVariable("t", "second", "environment",
			model.VariableOfIntegration))
		def.AddVariable(model.NewVariable("v", "dimensionless", "membrane",
			model.State).WithInitialValue(1.0))

		vars := def.Variables()
		Expect(vars).To(HaveLen(2))
		Expect(vars[0].Name).To(Equal("t"))
		Expect(vars[1].Name).To(Equal("v"))
		Expect(vars[1].HasInitialValue).To(BeTrue())
		Expect(vars[1].InitialValue).To(Equal(1.0))
	})

	It("should find variables by name", func() {
		def.AddVariable(model.NewVariable("g", "mS_per_cm2", "leak", model.Constant).
			WithInitialValue(0.3))

		v, found := def.VariableByName("g")
		Expect(found).To(BeTrue())
		Expect(v.Kind).To(Equal(model.Constant))

		_, found = def.VariableByName("missing")
		Expect(found).To(BeFalse())
	})

	It("should panic when a variable is declared twice", func() {
		def.AddVariable(model.NewVariable("v", "mV", "membrane", model.State))

		Expect(func() {
			def.AddVariable(model.NewVariable("v", "mV", "membrane", model.Algebraic))
		}).To(Panic())
	})

	It("should keep equations in declaration order", func() {
		def.AddEquation(model.RateOf("v", model.Var("a")))
		def.AddEquation(model.Assign("x", model.Rate("v")))

		eqs := def.Equations()
		Expect(eqs).To(HaveLen(2))
		Expect(eqs[0].IsRate).To(BeTrue())
		Expect(eqs[0].Target).To(Equal("v"))
		Expect(eqs[1].IsRate).To(BeFalse())
		Expect(eqs[1].Target).To(Equal("x"))
	})

	It("should not leave an initial value on a plain variable", func() {
		v := model.NewVariable("x", "per_s", "eqn", model.Algebraic)
		Expect(v.HasInitialValue).To(BeFalse())
	})
})

var _ = Describe("VariableKind", func() {
	It("should name every kind", func() {
		Expect(model.VariableOfIntegration.String()).
			To(Equal("variable_of_integration"))
		Expect(model.State.String()).To(Equal("state"))
		Expect(model.Constant.String()).To(Equal("constant"))
		Expect(model.ComputedConstant.String()).To(Equal("computed_constant"))
		Expect(model.Algebraic.String()).To(Equal("algebraic"))
	})
})
