package schedulers

import (
	"errors"
	"fmt"
	"sort"

	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
)

var (
	// ErrInvalidInput is returned by Schedule before any simulated time advances.
	ErrInvalidInput = errors.New("invalid scheduling input")
	// ErrInvalidConfig is returned when a policy is built with an unusable configuration.
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)

// Scheduler is a CPU scheduling policy. Schedule never mutates the processes it is
// handed; it runs on private copies and returns them resolved in the Result.
type Scheduler interface {
	Schedule(processes []*core.Process) (*Result, error)
	IsPreemptive() bool
	AlgorithmType() string
	Name() string
	Description() string
}

// Result is a finished timeline plus aggregate statistics.
type Result struct {
	Algorithm             string
	Description           string
	AlgorithmType         string
	Preemptive            bool
	Processes             []*core.Process
	Timeline              []core.Step
	TotalTime             int
	IdleTime              int
	ContextSwitches       int
	AverageWaitingTime    float64
	AverageTurnaroundTime float64
	AverageResponseTime   float64
	CPUUtilization        float64
	Throughput            float64
}

type base struct {
	name        string
	description string
}

func (b base) Name() string {
	return b.name
}

func (b base) Description() string {
	return b.description
}

func validateProcesses(processes []*core.Process) error {
	if len(processes) == 0 {
		return fmt.Errorf("%w: process list is empty", ErrInvalidInput)
	}
	for i, p := range processes {
		if p == nil {
			return fmt.Errorf("%w: process at index %d is nil", ErrInvalidInput, i)
		}
		if p.BurstTime <= 0 {
			return fmt.Errorf("%w: pid %d burst time %d must be positive", ErrInvalidInput, p.PID, p.BurstTime)
		}
		if p.ArrivalTime < 0 {
			return fmt.Errorf("%w: pid %d arrival time %d is negative", ErrInvalidInput, p.PID, p.ArrivalTime)
		}
	}
	return nil
}

// prepare validates the input and returns reset working copies ordered by arrival time,
// ties broken by pid.
func prepare(processes []*core.Process) ([]*core.Process, error) {
	if err := validateProcesses(processes); err != nil {
		return nil, err
	}
	procs := make([]*core.Process, len(processes))
	for i, p := range processes {
		procs[i] = p.Clone()
		procs[i].Reset()
	}
	sort.SliceStable(procs, func(i, j int) bool {
		return compareArrivalTime(procs[i], procs[j])
	})
	return procs, nil
}

func compareArrivalTime(a, b *core.Process) bool {
	if a.ArrivalTime == b.ArrivalTime {
		return a.PID < b.PID
	}
	return a.ArrivalTime < b.ArrivalTime
}
