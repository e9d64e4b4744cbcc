package requests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
)

func TestJobToProcessDefaults(t *testing.T) {
	p, err := Job{ProcessId: 4, ArrivalTime: 1, BurstTime: 3}.ToProcess()
	require.NoError(t, err)
	assert.Equal(t, "Process 4", p.Name)
	assert.Equal(t, core.PriorityNormal, p.Priority)
	assert.Equal(t, core.New, p.State())
}

func TestScheduleRequestsToProcesses(t *testing.T) {
	req := &ScheduleRequests{Jobs: []Job{
		{ProcessId: 1, Name: "editor", ArrivalTime: 0, BurstTime: 5, Priority: 1},
		{ProcessId: 2, Name: "bad", ArrivalTime: 0, BurstTime: 0, Priority: 3},
	}}
	_, err := req.ToProcesses()
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	req.Jobs = req.Jobs[:1]
	procs, err := req.ToProcesses()
	require.NoError(t, err)
	require.Len(t, procs, 1)
	assert.Equal(t, core.PriorityHighest, procs[0].Priority)

	_, err = Job{ProcessId: 3, BurstTime: 2, Priority: 9}.ToProcess()
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
