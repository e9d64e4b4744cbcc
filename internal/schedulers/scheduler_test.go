package schedulers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
)

type job struct {
	pid, arrival, burst int
	priority            core.Priority
}

func newProcesses(t *testing.T, jobs ...job) []*core.Process {
	t.Helper()
	procs := make([]*core.Process, 0, len(jobs))
	for _, j := range jobs {
		prio := j.priority
		if prio == 0 {
			prio = core.PriorityNormal
		}
		p, err := core.NewProcess(j.pid, "job", j.arrival, j.burst, prio)
		require.NoError(t, err)
		procs = append(procs, p)
	}
	return procs
}

func byPID(result *Result) map[int]*core.Process {
	out := make(map[int]*core.Process, len(result.Processes))
	for _, p := range result.Processes {
		out[p.PID] = p
	}
	return out
}

func TestFirstComeFirstServe(t *testing.T) {
	procs := newProcesses(t, job{pid: 1, arrival: 0, burst: 5}, job{pid: 2, arrival: 1, burst: 3}, job{pid: 3, arrival: 2, burst: 8})

	result, err := NewFirstComeFirstServe().Schedule(procs)
	require.NoError(t, err)

	assert.Equal(t, 16, result.TotalTime)
	assert.InDelta(t, 10.0/3.0, result.AverageWaitingTime, 1e-9)
	assert.Equal(t, []int{1, 2, 3}, result.CompletionOrder())
	assert.Equal(t, 0, result.IdleTime)
	assert.Equal(t, 2, result.ContextSwitches)
	assert.InDelta(t, 100.0, result.CPUUtilization, 1e-9)
	assert.InDelta(t, 3.0/16.0, result.Throughput, 1e-9)
	assert.Equal(t, "FCFS", result.AlgorithmType)
	assert.False(t, result.Preemptive)
}

func TestFirstComeFirstServeIdle(t *testing.T) {
	procs := newProcesses(t, job{pid: 1, arrival: 0, burst: 2}, job{pid: 2, arrival: 5, burst: 3})

	result, err := NewFirstComeFirstServe().Schedule(procs)
	require.NoError(t, err)

	assert.Equal(t, 8, result.TotalTime)
	assert.Equal(t, 3, result.IdleTime)
	assert.InDelta(t, 62.5, result.CPUUtilization, 1e-9)
	require.Len(t, result.Timeline, 2)
	assert.Equal(t, 5, result.Timeline[1].Start)
	assert.Equal(t, 0, byPID(result)[2].WaitingTime())
}

func TestFirstComeFirstServeTieBreaksOnPID(t *testing.T) {
	procs := newProcesses(t, job{pid: 7, arrival: 0, burst: 2}, job{pid: 3, arrival: 0, burst: 2})

	result, err := NewFirstComeFirstServe().Schedule(procs)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, result.CompletionOrder())
}

func TestShortestJobFirstVersusRemainingTime(t *testing.T) {
	procs := newProcesses(t,
		job{pid: 1, arrival: 0, burst: 8},
		job{pid: 2, arrival: 1, burst: 4},
		job{pid: 3, arrival: 2, burst: 9},
		job{pid: 4, arrival: 3, burst: 5},
	)

	sjf, err := NewShortestJobFirst(false).Schedule(procs)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 3}, sjf.CompletionOrder())
	assert.Equal(t, 31, sjf.TotalWaitingTime())

	srtf, err := NewShortestJobFirst(true).Schedule(procs)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 1, 3}, srtf.CompletionOrder())
	assert.Equal(t, 26, srtf.TotalWaitingTime())
	assert.Equal(t, 26, srtf.TotalTime)
	assert.Equal(t, 4, srtf.ContextSwitches)
	assert.Less(t, srtf.TotalWaitingTime(), sjf.TotalWaitingTime())

	p1 := byPID(srtf)[1]
	assert.Equal(t, 0, p1.StartTime(), "first dispatch fixes the start time")
	assert.Equal(t, 0, p1.ResponseTime())
	assert.Equal(t, 17, p1.CompletionTime())
	assert.Equal(t, 9, p1.WaitingTime())
}

func TestShortestRemainingTimeKeepsRunningOnEqualWork(t *testing.T) {
	// P2 arrives with exactly the work P1 still has left
	procs := newProcesses(t, job{pid: 1, arrival: 0, burst: 4}, job{pid: 2, arrival: 1, burst: 3})

	result, err := NewShortestJobFirst(true).Schedule(procs)
	require.NoError(t, err)
	require.Len(t, result.Timeline, 2)
	assert.Equal(t, []int{1, 2}, result.CompletionOrder())
	assert.Equal(t, 0, result.Timeline[0].Start)
	assert.Equal(t, 4, result.Timeline[0].End)
}

func TestPriorityScheduling(t *testing.T) {
	procs := newProcesses(t,
		job{pid: 1, arrival: 0, burst: 5, priority: core.PriorityNormal},
		job{pid: 2, arrival: 1, burst: 3, priority: core.PriorityHigh},
		job{pid: 3, arrival: 2, burst: 8, priority: core.PriorityLow},
		job{pid: 4, arrival: 3, burst: 6, priority: core.PriorityNormal},
	)

	nonPreemptive, err := NewPriorityScheduling(false).Schedule(procs)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 3}, nonPreemptive.CompletionOrder())
	assert.Equal(t, 22, nonPreemptive.TotalTime)

	preemptive, err := NewPriorityScheduling(true).Schedule(procs)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 4, 3}, preemptive.CompletionOrder())
	got := byPID(preemptive)
	assert.Equal(t, 4, got[2].CompletionTime())
	assert.Equal(t, 8, got[1].CompletionTime())
	assert.Equal(t, 0, got[1].ResponseTime())
	assert.Equal(t, 0, got[2].ResponseTime())
	require.NotEmpty(t, preemptive.Timeline)
	assert.Equal(t, 1, preemptive.Timeline[0].End)
}

func TestPrioritySchedulingSelectsLowestPriority(t *testing.T) {
	procs := newProcesses(t,
		job{pid: 1, arrival: 0, burst: 3, priority: core.PriorityLowest},
		job{pid: 2, arrival: 1, burst: 2, priority: core.PriorityHighest},
	)

	result, err := NewPriorityScheduling(false).Schedule(procs)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, result.CompletionOrder())
	assert.Equal(t, 5, result.TotalTime)
}

func TestRoundRobin(t *testing.T) {
	procs := newProcesses(t, job{pid: 1, arrival: 0, burst: 5}, job{pid: 2, arrival: 1, burst: 3}, job{pid: 3, arrival: 2, burst: 8})

	rr, err := NewRoundRobin(2)
	require.NoError(t, err)
	result, err := rr.Schedule(procs)
	require.NoError(t, err)

	pids := make([]int, 0, len(result.Timeline))
	for _, step := range result.Timeline {
		pids = append(pids, step.PID)
	}
	// P2 and P3 arrive during P1's first slice and queue ahead of it
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3, 1, 3, 3}, pids)
	assert.Equal(t, []int{2, 1, 3}, result.CompletionOrder())
	assert.Equal(t, 16, result.TotalTime)
	assert.Equal(t, 7, result.ContextSwitches)

	got := byPID(result)
	assert.Equal(t, 7, got[1].WaitingTime())
	assert.Equal(t, 5, got[2].WaitingTime())
	assert.Equal(t, 6, got[3].WaitingTime())
	assert.Equal(t, 1, got[2].ResponseTime())
	assert.Equal(t, 2, got[3].ResponseTime())
}

func TestRoundRobinLargeQuantumMatchesFCFS(t *testing.T) {
	procs := newProcesses(t, job{pid: 1, arrival: 0, burst: 5}, job{pid: 2, arrival: 1, burst: 3}, job{pid: 3, arrival: 2, burst: 8})

	rr, err := NewRoundRobin(8)
	require.NoError(t, err)
	result, err := rr.Schedule(procs)
	require.NoError(t, err)

	fcfs, err := NewFirstComeFirstServe().Schedule(procs)
	require.NoError(t, err)

	assert.Equal(t, fcfs.CompletionOrder(), result.CompletionOrder())
	assert.Equal(t, fcfs.TotalWaitingTime(), result.TotalWaitingTime())
}

func TestRoundRobinTimeQuantum(t *testing.T) {
	_, err := NewRoundRobin(0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	rr, err := NewRoundRobin(DefaultTimeQuantum)
	require.NoError(t, err)
	assert.ErrorIs(t, rr.SetTimeQuantum(-1), ErrInvalidConfig)
	assert.Equal(t, DefaultTimeQuantum, rr.TimeQuantum())
	assert.NoError(t, rr.SetTimeQuantum(4))
	assert.Equal(t, 4, rr.TimeQuantum())
}

func TestMultilevelFeedbackQueue(t *testing.T) {
	procs := newProcesses(t, job{pid: 1, arrival: 0, burst: 10}, job{pid: 2, arrival: 1, burst: 3})

	mlfq, err := NewMultilevelFeedbackQueue([]int{2, 4})
	require.NoError(t, err)
	result, err := mlfq.Schedule(procs)
	require.NoError(t, err)

	assert.Equal(t, 13, result.TotalTime)
	assert.Equal(t, []int{2, 1}, result.CompletionOrder())
	got := byPID(result)
	assert.Equal(t, 5, got[2].WaitingTime())
	assert.Equal(t, 3, got[1].WaitingTime())

	_, err = NewMultilevelFeedbackQueue(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewMultilevelFeedbackQueue([]int{2, 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestScheduleRejectsInvalidInput(t *testing.T) {
	for _, kind := range Kinds {
		s, err := New(kind, DefaultOptions())
		require.NoError(t, err)

		_, err = s.Schedule(nil)
		assert.ErrorIs(t, err, ErrInvalidInput, kind)

		_, err = s.Schedule([]*core.Process{{PID: 1, Name: "broken", BurstTime: 0}})
		assert.ErrorIs(t, err, ErrInvalidInput, kind)

		_, err = s.Schedule([]*core.Process{{PID: 1, Name: "early", ArrivalTime: -1, BurstTime: 3}})
		assert.ErrorIs(t, err, ErrInvalidInput, kind)
	}
}

func TestScheduleInvariants(t *testing.T) {
	procs := newProcesses(t,
		job{pid: 1, arrival: 0, burst: 10, priority: core.PriorityLow},
		job{pid: 2, arrival: 2, burst: 4, priority: core.PriorityHighest},
		job{pid: 3, arrival: 4, burst: 6, priority: core.PriorityNormal},
		job{pid: 4, arrival: 5, burst: 3, priority: core.PriorityHigh},
		job{pid: 5, arrival: 7, burst: 8, priority: core.PriorityLow},
		job{pid: 6, arrival: 40, burst: 1, priority: core.PriorityLowest},
	)

	results, err := CompareAll(procs, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, len(Kinds))

	for _, result := range results {
		require.Len(t, result.Processes, len(procs), result.Algorithm)
		busy := 0
		for i, step := range result.Timeline {
			assert.Positive(t, step.Duration(), result.Algorithm)
			if i > 0 {
				assert.GreaterOrEqual(t, step.Start, result.Timeline[i-1].End, result.Algorithm)
			}
			busy += step.Duration()
		}
		assert.Equal(t, 32, busy, result.Algorithm)
		assert.Equal(t, result.TotalTime, busy+result.IdleTime, result.Algorithm)
		assert.Equal(t, 41, result.TotalTime, result.Algorithm)

		for _, p := range result.Processes {
			assert.Equal(t, core.Terminated, p.State(), result.Algorithm)
			assert.Zero(t, p.RemainingTime(), result.Algorithm)
			assert.GreaterOrEqual(t, p.WaitingTime(), 0, result.Algorithm)
			assert.Equal(t, p.WaitingTime()+p.BurstTime, p.TurnaroundTime(), result.Algorithm)
			assert.LessOrEqual(t, p.ResponseTime(), p.WaitingTime(), result.Algorithm)
			if !result.Preemptive {
				assert.Equal(t, p.ResponseTime(), p.WaitingTime(), result.Algorithm)
			}
		}
	}
}

func TestScheduleLeavesInputUntouched(t *testing.T) {
	procs := newProcesses(t, job{pid: 2, arrival: 3, burst: 4}, job{pid: 1, arrival: 0, burst: 6})

	for _, kind := range Kinds {
		s, err := New(kind, DefaultOptions())
		require.NoError(t, err)

		first, err := s.Schedule(procs)
		require.NoError(t, err)
		second, err := s.Schedule(procs)
		require.NoError(t, err)

		assert.Equal(t, first.Timeline, second.Timeline, kind)
		assert.Equal(t, first.AverageWaitingTime, second.AverageWaitingTime, kind)
		for _, p := range procs {
			assert.Equal(t, core.New, p.State(), kind)
			assert.Equal(t, p.BurstTime, p.RemainingTime(), kind)
		}
		assert.Equal(t, 1, first.Processes[0].PID, "results are ordered by arrival")
		assert.NotSame(t, procs[1], first.Processes[0])
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"fcfs", KindFCFS},
		{"SJF", KindSJF},
		{"srtf", KindSRTF},
		{"priority", KindPriority},
		{"priority-preemptive", KindPriorityPreemptive},
		{"priority_preemptive", KindPriorityPreemptive},
		{"rr", KindRoundRobin},
		{" round_robin ", KindRoundRobin},
		{"mlfq", KindMLFQ},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseKind("lottery")
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = New(Kind("lottery"), DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = New(KindRoundRobin, Options{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateResponse(t *testing.T) {
	procs := newProcesses(t, job{pid: 1, arrival: 0, burst: 5}, job{pid: 2, arrival: 1, burst: 3})

	result, err := NewFirstComeFirstServe().Schedule(procs)
	require.NoError(t, err)
	response := GenerateResponse(result)

	assert.Equal(t, "First Come First Serve", response.Algorithm)
	assert.Equal(t, 8, response.TotalTime)
	require.Len(t, response.Details, 2)
	assert.Equal(t, "TERMINATED", response.Details[1].State)
	assert.Equal(t, 4, response.Details[1].WaitingTime)
	assert.Equal(t, 8, response.Details[1].CompletionTime)
	require.Len(t, response.Timeline, 2)
	assert.True(t, response.Timeline[1].Completed)
}
