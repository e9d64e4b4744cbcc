package core

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a Process is constructed with malformed fields.
var ErrInvalidArgument = errors.New("invalid argument")

type ProcessState int

const (
	New ProcessState = iota
	Ready
	Running
	Waiting
	Terminated
)

func (s ProcessState) String() string {
	switch s {
	case New:
		return "NEW"
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Waiting:
		return "WAITING"
	case Terminated:
		return "TERMINATED"
	}
	return "UNKNOWN"
}

// Priority orders processes for the priority policies. A smaller value is a higher priority.
type Priority int

const (
	PriorityHighest Priority = 1
	PriorityHigh    Priority = 2
	PriorityNormal  Priority = 3
	PriorityLow     Priority = 4
	PriorityLowest  Priority = 5
)

func (p Priority) String() string {
	switch p {
	case PriorityHighest:
		return "highest"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	case PriorityLowest:
		return "lowest"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

func (p Priority) Valid() bool {
	return p >= PriorityHighest && p <= PriorityLowest
}

// Process is the unit of CPU demand. The demand fields are fixed at construction;
// scheduling state only changes through Execute and Reset.
type Process struct {
	PID         int
	Name        string
	ArrivalTime int
	BurstTime   int
	Priority    Priority

	state          ProcessState
	remainingTime  int
	startTime      int
	completionTime int
}

func NewProcess(pid int, name string, arrivalTime, burstTime int, priority Priority) (*Process, error) {
	switch {
	case pid < 0:
		return nil, fmt.Errorf("%w: pid %d is negative", ErrInvalidArgument, pid)
	case name == "":
		return nil, fmt.Errorf("%w: pid %d has an empty name", ErrInvalidArgument, pid)
	case arrivalTime < 0:
		return nil, fmt.Errorf("%w: pid %d arrival time %d is negative", ErrInvalidArgument, pid, arrivalTime)
	case burstTime <= 0:
		return nil, fmt.Errorf("%w: pid %d burst time %d must be positive", ErrInvalidArgument, pid, burstTime)
	case !priority.Valid():
		return nil, fmt.Errorf("%w: pid %d priority %d outside [1,5]", ErrInvalidArgument, pid, int(priority))
	}
	p := &Process{
		PID:         pid,
		Name:        name,
		ArrivalTime: arrivalTime,
		BurstTime:   burstTime,
		Priority:    priority,
	}
	p.Reset()
	return p, nil
}

// Reset returns the process to NEW so it can be scheduled again.
func (p *Process) Reset() {
	p.state = New
	p.remainingTime = p.BurstTime
	p.startTime = -1
	p.completionTime = -1
}

// Clone returns an independent copy including the current scheduling state.
func (p *Process) Clone() *Process {
	c := *p
	return &c
}

// Admit moves a NEW process into the ready state.
func (p *Process) Admit() {
	if p.state == New {
		p.state = Ready
	}
}

// Execute runs the process on the CPU from now for at most slice time units and reports
// the transition it went through. A terminated process or a non-positive slice is a no-op.
func (p *Process) Execute(now, slice int) Step {
	step := Step{PID: p.PID, Start: now, End: now, From: p.state, To: p.state}
	if p.state == Terminated || slice <= 0 {
		return step
	}
	if p.startTime < 0 {
		p.startTime = now
		step.FirstDispatch = true
	}
	p.state = Running
	ran := slice
	if ran > p.remainingTime {
		ran = p.remainingTime
	}
	p.remainingTime -= ran
	step.End = now + ran
	if p.remainingTime == 0 {
		p.state = Terminated
		p.completionTime = step.End
	} else {
		p.state = Ready
	}
	step.To = p.state
	return step
}

func (p *Process) State() ProcessState {
	return p.state
}

func (p *Process) RemainingTime() int {
	return p.remainingTime
}

func (p *Process) IsCompleted() bool {
	return p.state == Terminated
}

// StartTime is the time of the first dispatch, or -1 before it.
func (p *Process) StartTime() int {
	return p.startTime
}

// CompletionTime is the time the process terminated, or -1 before it.
func (p *Process) CompletionTime() int {
	return p.completionTime
}

func (p *Process) TurnaroundTime() int {
	if !p.IsCompleted() {
		return 0
	}
	return p.completionTime - p.ArrivalTime
}

func (p *Process) WaitingTime() int {
	if !p.IsCompleted() {
		return 0
	}
	return p.TurnaroundTime() - p.BurstTime
}

func (p *Process) ResponseTime() int {
	if p.startTime < 0 {
		return 0
	}
	return p.startTime - p.ArrivalTime
}

func (p *Process) String() string {
	return fmt.Sprintf("P%d(%s)", p.PID, p.Name)
}

// Step records one execution slice of a process on the CPU.
type Step struct {
	PID           int
	Start         int
	End           int
	From          ProcessState
	To            ProcessState
	FirstDispatch bool
}

func (s Step) Duration() int {
	return s.End - s.Start
}
