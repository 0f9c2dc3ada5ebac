// Package simulation wires a compiled model, a driver, a data recorder,
// and an optional monitor into one ready-to-run simulation.
package simulation

import (
	"context"

	"github.com/sarchlab/odegen/compiled"
	"github.com/sarchlab/odegen/datarecording"
	"github.com/sarchlab/odegen/driver"
	"github.com/sarchlab/odegen/monitoring"
)

// A Simulation is one runnable simulation of one compiled model.
type Simulation struct {
	id    string
	model *compiled.Model

	driver       *driver.Driver
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Model returns the compiled model being simulated.
func (s *Simulation) Model() *compiled.Model {
	return s.model
}

// Driver returns the driver that runs the simulation.
func (s *Simulation) Driver() *driver.Driver {
	return s.driver
}

// DataRecorder returns the data recorder, or nil when recording is
// disabled.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Monitor returns the monitor, or nil when monitoring is disabled.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// Run runs the simulation to completion.
func (s *Simulation) Run(ctx context.Context) (*driver.Result, error) {
	return s.driver.Run(ctx)
}
