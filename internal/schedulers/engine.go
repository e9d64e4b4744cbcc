package schedulers

import (
	"github.com/sirupsen/logrus"

	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
	"github.com/neptune-T/OS-Simulation-Platform/internal/logger"
	"github.com/neptune-T/OS-Simulation-Platform/internal/util"
)

// selectFunc picks the next process among the arrived, non-terminated ones. running is
// the process that held the CPU in the previous slice if it was preempted, nil otherwise.
type selectFunc func(ready []*core.Process, running *core.Process) *core.Process

// windowFunc returns how long p may run from now before the policy must decide again.
type windowFunc func(p *core.Process, now int, procs []*core.Process) int

func runToCompletion(procs []*core.Process, pick selectFunc, window windowFunc) *core.CPU {
	cpu := core.NewCPU()
	var running *core.Process
	for done := 0; done < len(procs); {
		now := cpu.Now()
		ready := arrived(procs, now)
		if len(ready) == 0 {
			cpu.IdleUntil(nextArrival(procs, now))
			continue
		}
		p := pick(ready, running)
		if running != nil && p != running {
			logger.GetLogger().WithFields(logrus.Fields{
				"pid":    running.PID,
				"by":     p.PID,
				"time":   now,
				"remain": running.RemainingTime(),
			}).Debug("process preempted")
		}
		cpu.Run(p, window(p, now, procs))
		if p.IsCompleted() {
			done++
			running = nil
		} else {
			running = p
		}
	}
	return cpu
}

// arrived returns the processes with arrival_time <= now that still need the CPU,
// admitting any that were still NEW.
func arrived(procs []*core.Process, now int) []*core.Process {
	ready := make([]*core.Process, 0, len(procs))
	for _, p := range procs {
		if p.ArrivalTime <= now && p.RemainingTime() > 0 {
			p.Admit()
			ready = append(ready, p)
		}
	}
	return ready
}

// nextArrival is the smallest arrival time among unfinished processes later than now.
func nextArrival(procs []*core.Process, now int) int {
	pending := make([]*core.Process, 0, len(procs))
	for _, p := range procs {
		if !p.IsCompleted() && p.ArrivalTime > now {
			pending = append(pending, p)
		}
	}
	if i := util.MinBy(pending, compareArrivalTime); i >= 0 {
		return pending[i].ArrivalTime
	}
	return now
}

func toCompletion(p *core.Process, _ int, _ []*core.Process) int {
	return p.RemainingTime()
}

// pickMin selects the minimum under less; the running process wins ties so that a
// preemptive policy only switches on a strictly better candidate.
func pickMin(less func(a, b *core.Process) bool) selectFunc {
	return func(ready []*core.Process, running *core.Process) *core.Process {
		best := ready[util.MinBy(ready, less)]
		if running != nil && !running.IsCompleted() && !less(best, running) {
			return running
		}
		return best
	}
}
