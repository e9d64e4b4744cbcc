package scenario

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
	"github.com/neptune-T/OS-Simulation-Platform/internal/memory"
	"github.com/neptune-T/OS-Simulation-Platform/internal/requests"
)

var ErrNotFound = errors.New("scenario not found")

// Scenario is a named workload: a process set for the schedulers, an allocation sequence
// for the memory engine, or both.
type Scenario struct {
	Name        string                   `json:"name" yaml:"name"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty"`
	TimeQuantum int                      `json:"time_quantum,omitempty" yaml:"time_quantum,omitempty"`
	Jobs        []requests.Job           `json:"jobs,omitempty" yaml:"jobs,omitempty"`
	Memory      *requests.MemoryRequests `json:"memory,omitempty" yaml:"memory,omitempty"`
}

type document struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

func (s *Scenario) Processes() ([]*core.Process, error) {
	req := &requests.ScheduleRequests{Jobs: s.Jobs}
	procs, err := req.ToProcesses()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return procs, nil
}

// Requests converts the memory workload, nil when the scenario has none.
func (s *Scenario) Requests() []memory.Request {
	if s.Memory == nil {
		return nil
	}
	return ToMemoryRequests(s.Memory.Operations)
}

func ToMemoryRequests(ops []requests.MemoryOperation) []memory.Request {
	out := make([]memory.Request, 0, len(ops))
	for _, op := range ops {
		out = append(out, memory.Request{
			ProcessID: op.ProcessId,
			Name:      op.Name,
			Size:      op.Size,
			Release:   op.Release,
		})
	}
	return out
}

// Builtin returns a copy of a preset scenario.
func Builtin(name string) (*Scenario, error) {
	s, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.clone(), nil
}

func (s Scenario) clone() *Scenario {
	s.Jobs = append([]requests.Job(nil), s.Jobs...)
	if s.Memory != nil {
		mem := *s.Memory
		mem.Operations = append([]requests.MemoryOperation(nil), s.Memory.Operations...)
		s.Memory = &mem
	}
	return &s
}

func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a YAML scenario file from any location the file service understands.
func Load(ctx context.Context, fs afs.Service, URL string) ([]Scenario, error) {
	exists, err := fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check scenario file %s: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, URL)
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", URL, err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", URL, err)
	}
	for i, s := range doc.Scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("scenario %d in %s has no name", i, URL)
		}
	}
	return doc.Scenarios, nil
}

// Find returns the scenario called name.
func Find(scenarios []Scenario, name string) (*Scenario, error) {
	for i := range scenarios {
		if scenarios[i].Name == name {
			return &scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}
