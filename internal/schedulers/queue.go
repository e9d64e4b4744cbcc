package schedulers

import (
	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
)

// ProcessQueue is the FIFO ready queue of the quantum based policies.
type ProcessQueue struct {
	queue []*core.Process
}

func NewProcessQueue() *ProcessQueue {
	return &ProcessQueue{queue: make([]*core.Process, 0)}
}

func (q *ProcessQueue) AddToEnd(p *core.Process) {
	q.queue = append(q.queue, p)
}

func (q *ProcessQueue) RemoveFromTop() (*core.Process, bool) {
	if len(q.queue) == 0 {
		return nil, false
	}
	item := q.queue[0]
	q.queue = q.queue[1:]
	return item, true
}

func (q *ProcessQueue) Len() int {
	return len(q.queue)
}

// arrivals hands out processes in arrival order as the clock passes their arrival time.
type arrivals struct {
	procs []*core.Process
	next  int
}

// admit moves every process with arrival_time <= now into q.
func (a *arrivals) admit(now int, q *ProcessQueue) {
	for a.next < len(a.procs) && a.procs[a.next].ArrivalTime <= now {
		p := a.procs[a.next]
		p.Admit()
		q.AddToEnd(p)
		a.next++
	}
}

func (a *arrivals) pending() bool {
	return a.next < len(a.procs)
}

func (a *arrivals) peek() *core.Process {
	return a.procs[a.next]
}
