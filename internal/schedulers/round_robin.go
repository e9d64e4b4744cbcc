package schedulers

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
	"github.com/neptune-T/OS-Simulation-Platform/internal/logger"
)

const DefaultTimeQuantum = 2

type RoundRobin struct {
	base
	timeQuantum int
}

func NewRoundRobin(timeQuantum int) (*RoundRobin, error) {
	s := &RoundRobin{base: base{
		name:        "Round Robin",
		description: "cycles through the ready queue giving each process one time quantum",
	}}
	if err := s.SetTimeQuantum(timeQuantum); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *RoundRobin) SetTimeQuantum(timeQuantum int) error {
	if timeQuantum <= 0 {
		return fmt.Errorf("%w: time quantum must be positive, got %d", ErrInvalidConfig, timeQuantum)
	}
	s.timeQuantum = timeQuantum
	return nil
}

func (s *RoundRobin) TimeQuantum() int {
	return s.timeQuantum
}

func (s *RoundRobin) Schedule(processes []*core.Process) (*Result, error) {
	procs, err := prepare(processes)
	if err != nil {
		return nil, err
	}
	logger.GetLogger().WithField("time_quantum", s.timeQuantum).Debug("running round robin")

	cpu := core.NewCPU()
	ready := NewProcessQueue()
	incoming := &arrivals{procs: procs}
	for done := 0; done < len(procs); {
		incoming.admit(cpu.Now(), ready)
		p, ok := ready.RemoveFromTop()
		if !ok {
			cpu.IdleUntil(incoming.peek().ArrivalTime)
			continue
		}
		cpu.Run(p, s.timeQuantum)
		// arrivals during the slice queue up ahead of the process that just ran
		incoming.admit(cpu.Now(), ready)
		if p.IsCompleted() {
			done++
			continue
		}
		logger.GetLogger().WithFields(logrus.Fields{
			"pid":    p.PID,
			"time":   cpu.Now(),
			"remain": p.RemainingTime(),
		}).Debug("quantum expired, requeue")
		ready.AddToEnd(p)
	}
	return calculateStatistics(s, procs, cpu), nil
}

func (s *RoundRobin) IsPreemptive() bool {
	return true
}

func (s *RoundRobin) AlgorithmType() string {
	return "Round Robin"
}
