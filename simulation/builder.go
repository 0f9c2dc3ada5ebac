package simulation

import (
	"github.com/rs/xid"

	"github.com/sarchlab/odegen/compiled"
	"github.com/sarchlab/odegen/datarecording"
	"github.com/sarchlab/odegen/driver"
	"github.com/sarchlab/odegen/monitoring"
)

// A Builder can be used to build a simulation.
type Builder struct {
	model *compiled.Model

	stepper  driver.Stepper
	from, to float64
	stepSize float64

	recordingOn    bool
	outputFileName string

	monitorOn   bool
	monitorPort int
}

// MakeBuilder creates a new builder with recording on and monitoring
// off.
func MakeBuilder() Builder {
	return Builder{
		recordingOn: true,
		stepSize:    0.001,
	}
}

// WithModel sets the compiled model to simulate.
func (b Builder) WithModel(m *compiled.Model) Builder {
	b.model = m
	return b
}

// WithStepper sets the stepper that advances the states.
func (b Builder) WithStepper(s driver.Stepper) Builder {
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

// WithoutRecording disables the data recorder.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data
// recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithMonitoring enables the monitoring server.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.model == nil {
		panic("no model to simulate")
	}

	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:    xid.New().String(),
		model: b.model,
	}

	driverBuilder := driver.MakeBuilder().
		WithSystem(b.model).
		WithRange(b.from, b.to).
		WithStepSize(b.stepSize)
	if b.stepper != nil {
		driverBuilder = driverBuilder.WithStepper(b.stepper)
	}
	s.driver = driverBuilder.Build()

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "odegen_sim_" + s.id
		}

		s.dataRecorder = datarecording.New(outputPath)
		s.driver.AcceptHook(
			datarecording.NewRunRecorder(s.dataRecorder, b.model, s.id))
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterRun(b.model.Name(), s.driver)
		s.monitor.StartServer()
	}

	return s
}
