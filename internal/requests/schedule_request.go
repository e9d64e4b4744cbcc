package requests

import (
	"fmt"

	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
)

type Job struct {
	ProcessId   int    `json:"process_id" yaml:"process_id"`
	Name        string `json:"name" yaml:"name"`
	ArrivalTime int    `json:"arrival_time" yaml:"arrival_time"`
	BurstTime   int    `json:"burst_time" yaml:"burst_time"`
	Priority    int    `json:"priority" yaml:"priority"`
}

type ScheduleRequests struct {
	Jobs        []Job `json:"jobs" yaml:"jobs"`
	TimeQuantum int   `json:"time_quantum,omitempty" yaml:"time_quantum,omitempty"`
}

// ToProcess builds the process for a job. A missing name becomes "Process <pid>" and a
// missing priority becomes normal.
func (j Job) ToProcess() (*core.Process, error) {
	name := j.Name
	if name == "" {
		name = fmt.Sprintf("Process %d", j.ProcessId)
	}
	priority := core.Priority(j.Priority)
	if j.Priority == 0 {
		priority = core.PriorityNormal
	}
	return core.NewProcess(j.ProcessId, name, j.ArrivalTime, j.BurstTime, priority)
}

func (r *ScheduleRequests) ToProcesses() ([]*core.Process, error) {
	procs := make([]*core.Process, 0, len(r.Jobs))
	for i, job := range r.Jobs {
		p, err := job.ToProcess()
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		procs = append(procs, p)
	}
	return procs, nil
}
