package schedulers

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
	"github.com/neptune-T/OS-Simulation-Platform/internal/logger"
)

// MultilevelFeedbackQueue keeps one round robin queue per configured quantum and a final
// first come first serve queue. Every process enters the top level; using up a whole
// quantum demotes it one level. The highest non-empty level always runs next.
type MultilevelFeedbackQueue struct {
	base
	levelsTimeQuantum []int
}

func NewMultilevelFeedbackQueue(levelsTimeQuantum []int) (*MultilevelFeedbackQueue, error) {
	if len(levelsTimeQuantum) == 0 {
		return nil, fmt.Errorf("%w: multilevel feedback queue needs at least one level", ErrInvalidConfig)
	}
	for i, q := range levelsTimeQuantum {
		if q <= 0 {
			return nil, fmt.Errorf("%w: level %d time quantum must be positive, got %d", ErrInvalidConfig, i, q)
		}
	}
	levels := make([]int, len(levelsTimeQuantum))
	copy(levels, levelsTimeQuantum)
	return &MultilevelFeedbackQueue{
		base: base{
			name:        "Multilevel Feedback Queue",
			description: "round robin levels with growing quanta over a final first come first serve level",
		},
		levelsTimeQuantum: levels,
	}, nil
}

func (s *MultilevelFeedbackQueue) LevelsTimeQuantum() []int {
	out := make([]int, len(s.levelsTimeQuantum))
	copy(out, s.levelsTimeQuantum)
	return out
}

func (s *MultilevelFeedbackQueue) Schedule(processes []*core.Process) (*Result, error) {
	procs, err := prepare(processes)
	if err != nil {
		return nil, err
	}

	levels := make([]*ProcessQueue, len(s.levelsTimeQuantum)+1)
	for i := range levels {
		levels[i] = NewProcessQueue()
	}
	last := len(levels) - 1

	cpu := core.NewCPU()
	incoming := &arrivals{procs: procs}
	for done := 0; done < len(procs); {
		incoming.admit(cpu.Now(), levels[0])
		level, p := s.next(levels)
		if p == nil {
			cpu.IdleUntil(incoming.peek().ArrivalTime)
			continue
		}
		slice := p.RemainingTime()
		if level < last {
			slice = s.levelsTimeQuantum[level]
		}
		cpu.Run(p, slice)
		incoming.admit(cpu.Now(), levels[0])
		if p.IsCompleted() {
			done++
			continue
		}
		logger.GetLogger().WithFields(logrus.Fields{
			"pid":   p.PID,
			"time":  cpu.Now(),
			"level": level + 1,
		}).Debug("quantum expired, demoting process")
		levels[level+1].AddToEnd(p)
	}
	return calculateStatistics(s, procs, cpu), nil
}

func (s *MultilevelFeedbackQueue) next(levels []*ProcessQueue) (int, *core.Process) {
	for i, q := range levels {
		if p, ok := q.RemoveFromTop(); ok {
			return i, p
		}
	}
	return -1, nil
}

func (s *MultilevelFeedbackQueue) IsPreemptive() bool {
	return true
}

func (s *MultilevelFeedbackQueue) AlgorithmType() string {
	return "MLFQ"
}
