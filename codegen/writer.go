// Package codegen emits a standalone Go source file from an analyzed
// plan. The emitted file carries the same generated-artifact contract
// as the in-process compiled evaluator: count constants, metadata
// tables, array constructors, and the four phase functions.
package codegen

import (
	_ "embed"
	"io"
	"text/template"

	"github.com/sarchlab/odegen/analysis"
	"github.com/sarchlab/odegen/model"
)

//go:embed modelTemplate.txt
var modelTemplate string

// A GoWriter renders plans as Go source files.
type GoWriter struct {
	packageName string
}

// NewGoWriter creates a GoWriter that emits into the "model" package.
func NewGoWriter() *GoWriter {
	return &GoWriter{packageName: "model"}
}

// WithPackageName sets the package clause of the emitted file.
func (w *GoWriter) WithPackageName(name string) *GoWriter {
	w.packageName = name
	return w
}

type recordData struct {
	Name      string
	Units     string
	Component string
	Kind      string
}

type fileData struct {
	Package string
	Version string

	StateCount    int
	VariableCount int

	Voi       recordData
	States    []recordData
	Variables []recordData

	Init              []string
	ComputedConstants []string
	Rates             []string
	Algebraic         []string

	NeedsMath    bool
	NeedsTernary bool
}

// Write renders the plan into out. The output is complete, compilable
// Go source.
func (w *GoWriter) Write(plan *analysis.Plan, out io.Writer) error {
	tmpl, err := template.New("model").Parse(modelTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(out, w.fileData(plan))
}

func (w *GoWriter) fileData(plan *analysis.Plan) fileData {
	ew := &exprWriter{}

	data := fileData{
		Package:           w.packageName,
		Version:           model.GeneratorVersion,
		StateCount:        plan.StateCount(),
		VariableCount:     plan.VariableCount(),
		Voi:               record(plan.Voi),
		Init:              renderPhase(ew, plan.Init),
		ComputedConstants: renderPhase(ew, plan.ComputedConstants),
		Rates:             renderPhase(ew, plan.Rates),
		Algebraic:         renderPhase(ew, plan.Algebraic),
	}

	for _, s := range plan.States {
		data.States = append(data.States, record(s))
	}
	for _, v := range plan.Variables {
		data.Variables = append(data.Variables, record(v))
	}

	data.NeedsMath = ew.needsMath
	data.NeedsTernary = ew.needsTernary

	return data
}

func renderPhase(ew *exprWriter, instrs []analysis.Instruction) []string {
	var lines []string
	for _, in := range instrs {
		lines = append(lines, ew.renderAssignment(in))
	}
	return lines
}

var kindIdentifiers = map[model.VariableKind]string{
	model.VariableOfIntegration: "VariableOfIntegration",
	model.State:                 "State",
	model.Constant:              "Constant",
	model.ComputedConstant:      "ComputedConstant",
	model.Algebraic:             "Algebraic",
}

func record(info analysis.VariableInfo) recordData {
	return recordData{
		Name:      info.Name,
		Units:     info.Units,
		Component: info.Component,
		Kind:      kindIdentifiers[info.Kind],
	}
}
