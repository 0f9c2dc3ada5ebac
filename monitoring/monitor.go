// Package monitoring turns running simulations into a small web server
// so their progress and state can be watched from outside the process.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/odegen/driver"
)

// A Monitor serves the progress and state of registered runs over HTTP.
type Monitor struct {
	portNumber  int
	openBrowser bool

	runsLock sync.Mutex
	runs     []*RunProgress
	drivers  map[string]*driver.Driver
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		drivers: make(map[string]*driver.Driver),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowserLaunch makes StartServer open the monitor page in the
// default browser.
func (m *Monitor) WithBrowserLaunch() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterRun registers a driver to be monitored. The returned progress
// tracker is attached to the driver as a hook.
func (m *Monitor) RegisterRun(name string, d *driver.Driver) *RunProgress {
	p := &RunProgress{
		ID:    xid.New().String(),
		Name:  name,
		Total: uint64(d.StepCount()) + 1,
	}
	d.AcceptHook(p)

	m.runsLock.Lock()
	defer m.runsLock.Unlock()

	m.runs = append(m.runs, p)
	m.drivers[p.ID] = d

	return p
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()
	r.HandleFunc("/api/progress", m.listProgress)
	r.HandleFunc("/api/runs/{id}", m.dumpRun)
	r.HandleFunc("/api/resources", m.listResources)

	actualPort := fmt.Sprintf(":%d", m.portNumber)
	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	port := listener.Addr().(*net.TCPAddr).Port
	fmt.Fprintf(os.Stderr,
		"Monitoring simulation with http://localhost:%d\n", port)

	if m.openBrowser {
		_ = browser.OpenURL(fmt.Sprintf("http://localhost:%d/api/progress",
			port))
	}

	go func() {
		dieOnErr(http.Serve(listener, r))
	}()
}

func (m *Monitor) listProgress(w http.ResponseWriter, _ *http.Request) {
	m.runsLock.Lock()
	snapshots := make([]RunProgress, 0, len(m.runs))
	for _, p := range m.runs {
		snapshots = append(snapshots, p.snapshot())
	}
	m.runsLock.Unlock()

	writeJSON(w, snapshots)
}

// dumpRun serializes the full state of one run's driver, hooks
// included, for interactive inspection.
func (m *Monitor) dumpRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	m.runsLock.Lock()
	d, found := m.drivers[id]
	m.runsLock.Unlock()

	if !found {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(d)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

type resourceUsage struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemoryRSS  uint64  `json:"memory_rss"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	dieOnErr(err)

	cpu, err := proc.CPUPercent()
	dieOnErr(err)

	mem, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceUsage{
		CPUPercent: cpu,
		MemoryRSS:  mem.RSS,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(v)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
