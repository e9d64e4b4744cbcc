package schedulers

import (
	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
)

// PriorityScheduling runs the arrived process with the smallest priority number. The
// preemptive variant gives the CPU up as soon as a strictly more important process arrives.
type PriorityScheduling struct {
	base
	preemptive bool
}

func NewPriorityScheduling(preemptive bool) *PriorityScheduling {
	s := &PriorityScheduling{preemptive: preemptive}
	if preemptive {
		s.base = base{
			name:        "Priority Scheduling (Preemptive)",
			description: "runs the most important process, preempting on higher priority arrivals",
		}
	} else {
		s.base = base{
			name:        "Priority Scheduling (Non-Preemptive)",
			description: "runs the most important available process to completion",
		}
	}
	return s
}

func (s *PriorityScheduling) Schedule(processes []*core.Process) (*Result, error) {
	procs, err := prepare(processes)
	if err != nil {
		return nil, err
	}
	window := toCompletion
	if s.preemptive {
		window = untilHigherPriorityArrival
	}
	cpu := runToCompletion(procs, pickMin(comparePriority), window)
	return calculateStatistics(s, procs, cpu), nil
}

func (s *PriorityScheduling) IsPreemptive() bool {
	return s.preemptive
}

func (s *PriorityScheduling) AlgorithmType() string {
	if s.preemptive {
		return "Priority (Preemptive)"
	}
	return "Priority (Non-Preemptive)"
}

func comparePriority(a, b *core.Process) bool {
	if a.Priority == b.Priority {
		return compareArrivalTime(a, b)
	}
	return a.Priority < b.Priority
}

func untilHigherPriorityArrival(p *core.Process, now int, procs []*core.Process) int {
	rem := p.RemainingTime()
	for _, a := range procs {
		if a.ArrivalTime <= now || a.IsCompleted() {
			continue
		}
		if a.ArrivalTime >= now+rem {
			break
		}
		if a.Priority < p.Priority {
			return a.ArrivalTime - now
		}
	}
	return rem
}
