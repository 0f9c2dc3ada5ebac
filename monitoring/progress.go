package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/odegen/driver"
)

// A RunProgress tracks how far a simulation run has advanced. It is a
// driver hook; attach it to the run's driver and it keeps itself
// current.
type RunProgress struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// Func updates the progress as the run fires hooks.
func (p *RunProgress) Func(ctx driver.HookCtx) {
	switch ctx.Pos {
	case driver.HookPosRunStart:
		p.Lock()
		p.StartTime = time.Now()
		p.Unlock()

	case driver.HookPosStepEnd:
		p.Lock()
		p.Finished = uint64(ctx.Item.(driver.StepInfo).Step) + 1
		p.Unlock()
	}
}

func (p *RunProgress) snapshot() RunProgress {
	p.Lock()
	defer p.Unlock()

	return RunProgress{
		ID:        p.ID,
		Name:      p.Name,
		StartTime: p.StartTime,
		Total:     p.Total,
		Finished:  p.Finished,
	}
}
