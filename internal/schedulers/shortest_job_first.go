package schedulers

import (
	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
)

// ShortestJobFirst picks the shortest job among the arrived ones. In preemptive mode it
// becomes Shortest Remaining Time First: the running process is displaced by an arrival
// whose burst is strictly shorter than what it still has left.
type ShortestJobFirst struct {
	base
	preemptive bool
}

func NewShortestJobFirst(preemptive bool) *ShortestJobFirst {
	s := &ShortestJobFirst{preemptive: preemptive}
	if preemptive {
		s.base = base{
			name:        "Shortest Remaining Time First",
			description: "always runs the process with the least remaining time, preempting on shorter arrivals",
		}
	} else {
		s.base = base{
			name:        "Shortest Job First",
			description: "runs the shortest available job to completion",
		}
	}
	return s
}

func (s *ShortestJobFirst) Schedule(processes []*core.Process) (*Result, error) {
	procs, err := prepare(processes)
	if err != nil {
		return nil, err
	}
	var cpu *core.CPU
	if s.preemptive {
		cpu = runToCompletion(procs, pickMin(compareRemainingTime), untilShorterArrival)
	} else {
		cpu = runToCompletion(procs, pickMin(compareBurstTime), toCompletion)
	}
	return calculateStatistics(s, procs, cpu), nil
}

func (s *ShortestJobFirst) IsPreemptive() bool {
	return s.preemptive
}

func (s *ShortestJobFirst) AlgorithmType() string {
	if s.preemptive {
		return "SRTF"
	}
	return "SJF"
}

func compareBurstTime(a, b *core.Process) bool {
	if a.BurstTime == b.BurstTime {
		return compareArrivalTime(a, b)
	}
	return a.BurstTime < b.BurstTime
}

func compareRemainingTime(a, b *core.Process) bool {
	if a.RemainingTime() == b.RemainingTime() {
		return compareArrivalTime(a, b)
	}
	return a.RemainingTime() < b.RemainingTime()
}

// untilShorterArrival runs p until the first later arrival that would have less work left
// than p at the moment it arrives. procs is ordered by arrival, so the first match is also
// the earliest one.
func untilShorterArrival(p *core.Process, now int, procs []*core.Process) int {
	rem := p.RemainingTime()
	for _, a := range procs {
		if a.ArrivalTime <= now || a.IsCompleted() {
			continue
		}
		if a.ArrivalTime >= now+rem {
			break
		}
		if a.BurstTime < rem-(a.ArrivalTime-now) {
			return a.ArrivalTime - now
		}
	}
	return rem
}
