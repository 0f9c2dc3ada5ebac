package simulation

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/odegen/analysis"
	"github.com/sarchlab/odegen/compiled"
	"github.com/sarchlab/odegen/datarecording"
	"github.com/sarchlab/odegen/model"
)

func buildDecayModel() *compiled.Model {
	def := model.NewDefinition("exponential_decay")
	def.AddVariable(model.NewVariable("t", "second", "environment",
		model.VariableOfIntegration))
	def.AddVariable(model.NewVariable("v", "dimensionless", "decay",
		model.State).WithInitialValue(1))
	def.AddVariable(model.NewVariable("k", "per_s", "decay",
		model.Constant).WithInitialValue(1))
	def.AddEquation(model.RateOf("v",
		model.Neg(model.Mul(model.Var("k"), model.Var("v")))))

	plan, err := analysis.Analyze(def)
	if err != nil {
		panic(err)
	}

	return compiled.Build(plan)
}

var _ = Describe("Simulation", func() {
	var outputPath string

	BeforeEach(func() {
		outputPath = filepath.Join(GinkgoT().TempDir(), "sim_output")
	})

	It("should build and run with recording", func() {
		s := MakeBuilder().
			WithModel(buildDecayModel()).
			WithRange(0, 0.01).
			WithStepSize(0.001).
			WithOutputFileName(outputPath).
			Build()

		Expect(s.ID()).NotTo(BeEmpty())
		Expect(s.Model()).NotTo(BeNil())
		Expect(s.Driver()).NotTo(BeNil())
		Expect(s.DataRecorder()).NotTo(BeNil())
		Expect(s.Monitor()).To(BeNil())

		result, err := s.Run(context.Background())

		Expect(err).To(BeNil())
		Expect(result.Steps).To(Equal(10))
		// Ten forward Euler steps of decay from 1.0.
		Expect(result.States[0]).To(BeNumerically("~", 0.9900449, 1e-6))
	})

	It("should record samples of the run", func() {
		s := MakeBuilder().
			WithModel(buildDecayModel()).
			WithRange(0, 0.002).
			WithStepSize(0.001).
			WithOutputFileName(outputPath).
			Build()

		_, err := s.Run(context.Background())
		Expect(err).To(BeNil())
		s.DataRecorder().Flush()

		reader := datarecording.NewReader(outputPath + ".sqlite3")
		defer reader.Close()

		reader.MapTable("samples", struct {
			Step    int
			Voi     float64
			Storage string
			Idx     int
			Value   float64
		}{})

		samples, err := reader.Query(context.Background(), "samples",
			datarecording.QueryParams{
				Where: "Storage = ?",
				Args:  []any{"state"},
			})

		Expect(err).To(BeNil())
		Expect(samples).To(HaveLen(3))
	})

	It("should build and run without recording", func() {
		s := MakeBuilder().
			WithModel(buildDecayModel()).
			WithRange(0, 0.001).
			WithStepSize(0.001).
			WithoutRecording().
			Build()

		Expect(s.DataRecorder()).To(BeNil())

		result, err := s.Run(context.Background())

		Expect(err).To(BeNil())
		Expect(result.Steps).To(Equal(1))
	})

	It("should refuse to build without a model", func() {
		Expect(func() {
			MakeBuilder().Build()
		}).To(Panic())
	})

	It("should refuse an output file name when recording is off", func() {
		Expect(func() {
			MakeBuilder().
				WithModel(buildDecayModel()).
				WithoutRecording().
				WithOutputFileName(outputPath).
				Build()
		}).To(Panic())
	})

	It("should refuse a monitor port when monitoring is off", func() {
		Expect(func() {
			MakeBuilder().
				WithModel(buildDecayModel()).
				WithMonitorPort(8080).
				Build()
		}).To(Panic())
	})
})
