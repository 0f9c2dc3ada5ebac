package datarecording

import (
	"fmt"
	"time"

	"github.com/sarchlab/odegen/analysis"
	"github.com/sarchlab/odegen/compiled"
	"github.com/sarchlab/odegen/driver"
)

// A runInfoEntry is one property of a run.
type runInfoEntry struct {
	Property string
	Value    string
}

// A variableEntry describes one storage slot of the recorded model.
type variableEntry struct {
	Storage   string
	Idx       int
	Name      string
	Units     string
	Component string
	Kind      string
}

// A sampleEntry is the value of one storage slot at one step.
type sampleEntry struct {
	Step    int
	Voi     float64
	Storage string
	Idx     int
	Value   float64
}

// A RunRecorder is a driver hook that records a run: the model
// metadata, one sample row per storage slot per accepted step, and the
// run properties.
type RunRecorder struct {
	recorder DataRecorder
	model    *compiled.Model
	runID    string
}

// NewRunRecorder creates a RunRecorder that records the given model
// into recorder. It creates the run_info, model_variables, and samples
// tables immediately.
func NewRunRecorder(
	recorder DataRecorder,
	m *compiled.Model,
	runID string,
) *RunRecorder {
	r := &RunRecorder{
		recorder: recorder,
		model:    m,
		runID:    runID,
	}

	recorder.CreateTable("run_info", runInfoEntry{})
	recorder.CreateTable("model_variables", variableEntry{})
	recorder.CreateTable("samples", sampleEntry{})

	r.recordMetadata()

	return r
}

func (r *RunRecorder) recordMetadata() {
	r.recordInfo("Run ID", r.runID)
	r.recordInfo("Model", r.model.Name())
	r.recordInfo("Generator Version", r.model.Version())
	r.recordInfo("Voi", r.model.Voi().Name)

	r.recordVariable("voi", 0, r.model.Voi())
	for i, s := range r.model.States() {
		r.recordVariable("state", i, s)
	}
	for i, v := range r.model.Variables() {
		r.recordVariable("variable", i, v)
	}
}

func (r *RunRecorder) recordInfo(property, value string) {
	r.recorder.InsertData("run_info", runInfoEntry{
		Property: property,
		Value:    value,
	})
}

func (r *RunRecorder) recordVariable(
	storage string,
	idx int,
	info analysis.VariableInfo,
) {
	r.recorder.InsertData("model_variables", variableEntry{
		Storage:   storage,
		Idx:       idx,
		Name:      info.Name,
		Units:     info.Units,
		Component: info.Component,
		Kind:      info.Kind.String(),
	})
}

// Func records the run as it progresses.
func (r *RunRecorder) Func(ctx driver.HookCtx) {
	switch ctx.Pos {
	case driver.HookPosRunStart:
		r.recordInfo("Start Time",
			time.Now().Format("2006-01-02 15:04:05.000000000"))

	case driver.HookPosStepEnd:
		r.recordStep(ctx.Item.(driver.StepInfo))

	case driver.HookPosRunEnd:
		result := ctx.Item.(*driver.Result)
		r.recordInfo("End Time",
			time.Now().Format("2006-01-02 15:04:05.000000000"))
		r.recordInfo("Steps", fmt.Sprintf("%d", result.Steps))
		r.recorder.Flush()
	}
}

func (r *RunRecorder) recordStep(info driver.StepInfo) {
	for i, v := range info.States {
		r.insertSample(info, "state", i, v)
	}
	for i, v := range info.Rates {
		r.insertSample(info, "rate", i, v)
	}
	for i, v := range info.Variables {
		r.insertSample(info, "variable", i, v)
	}
}

func (r *RunRecorder) insertSample(
	info driver.StepInfo,
	storage string,
	idx int,
	value float64,
) {
	r.recorder.InsertData("samples", sampleEntry{
		Step:    info.Step,
		Voi:     info.Voi,
		Storage: storage,
		Idx:     idx,
		Value:   value,
	})
}
