package core

import (
	"github.com/sirupsen/logrus"

	"github.com/neptune-T/OS-Simulation-Platform/internal/logger"
)

type CpuMetric struct {
	TotalTime       int
	UtilizationTime int
	IdleTime        int
}

// CPU is a single simulated core. It owns the integer clock of one scheduling run and
// records every slice it executes.
type CPU struct {
	clock           int
	utilizationTime int
	idleTime        int
	contextSwitches int
	timeline        []Step
}

func NewCPU() *CPU {
	return &CPU{timeline: make([]Step, 0)}
}

func (c *CPU) Now() int {
	return c.clock
}

// IdleUntil advances the clock to t without running anything.
func (c *CPU) IdleUntil(t int) {
	if t <= c.clock {
		return
	}
	logger.GetLogger().WithFields(logrus.Fields{"from": c.clock, "to": t}).Debug("cpu idle, waiting for arrival")
	c.idleTime += t - c.clock
	c.clock = t
}

// Run executes p for at most d time units starting at the current clock.
func (c *CPU) Run(p *Process, d int) Step {
	step := p.Execute(c.clock, d)
	if step.Duration() == 0 {
		return step
	}
	if n := len(c.timeline); n > 0 && c.timeline[n-1].PID != p.PID {
		c.contextSwitches++
	}
	c.timeline = append(c.timeline, step)
	c.utilizationTime += step.Duration()
	c.clock = step.End

	entry := logger.GetLogger().WithFields(logrus.Fields{"pid": p.PID, "start": step.Start, "end": step.End})
	switch {
	case step.To == Terminated:
		entry.Debug("process completed")
	case step.FirstDispatch:
		entry.Debug("process dispatched")
	default:
		entry.Debug("process slice expired")
	}
	return step
}

func (c *CPU) Timeline() []Step {
	out := make([]Step, len(c.timeline))
	copy(out, c.timeline)
	return out
}

func (c *CPU) ContextSwitches() int {
	return c.contextSwitches
}

func (c *CPU) Metric() CpuMetric {
	return CpuMetric{
		TotalTime:       c.clock,
		UtilizationTime: c.utilizationTime,
		IdleTime:        c.idleTime,
	}
}
