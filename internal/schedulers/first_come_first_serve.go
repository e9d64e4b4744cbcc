package schedulers

import (
	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
)

type FirstComeFirstServe struct {
	base
}

func NewFirstComeFirstServe() *FirstComeFirstServe {
	return &FirstComeFirstServe{base{
		name:        "First Come First Serve",
		description: "runs processes to completion in order of arrival",
	}}
}

func (s *FirstComeFirstServe) Schedule(processes []*core.Process) (*Result, error) {
	procs, err := prepare(processes)
	if err != nil {
		return nil, err
	}
	cpu := runToCompletion(procs, pickMin(compareArrivalTime), toCompletion)
	return calculateStatistics(s, procs, cpu), nil
}

func (s *FirstComeFirstServe) IsPreemptive() bool {
	return false
}

func (s *FirstComeFirstServe) AlgorithmType() string {
	return "FCFS"
}
