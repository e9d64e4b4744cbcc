package schedulers

import (
	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
	"github.com/neptune-T/OS-Simulation-Platform/internal/responses"
	"github.com/neptune-T/OS-Simulation-Platform/internal/util"
)

func calculateStatistics(s Scheduler, procs []*core.Process, cpu *core.CPU) *Result {
	metric := cpu.Metric()
	waiting := make([]int, len(procs))
	turnaround := make([]int, len(procs))
	response := make([]int, len(procs))
	burst := make([]int, len(procs))
	for i, p := range procs {
		waiting[i] = p.WaitingTime()
		turnaround[i] = p.TurnaroundTime()
		response[i] = p.ResponseTime()
		burst[i] = p.BurstTime
	}

	result := &Result{
		Algorithm:             s.Name(),
		Description:           s.Description(),
		AlgorithmType:         s.AlgorithmType(),
		Preemptive:            s.IsPreemptive(),
		Processes:             procs,
		Timeline:              cpu.Timeline(),
		TotalTime:             metric.TotalTime,
		IdleTime:              metric.IdleTime,
		ContextSwitches:       cpu.ContextSwitches(),
		AverageWaitingTime:    util.Average(waiting),
		AverageTurnaroundTime: util.Average(turnaround),
		AverageResponseTime:   util.Average(response),
		CPUUtilization:        util.Percent(util.Sum(burst), float64(metric.TotalTime)),
	}
	if metric.TotalTime > 0 {
		result.Throughput = float64(len(procs)) / float64(metric.TotalTime)
	}
	return result
}

// TotalWaitingTime is the sum of waiting times over every process in the run.
func (r *Result) TotalWaitingTime() int {
	total := 0
	for _, p := range r.Processes {
		total += p.WaitingTime()
	}
	return total
}

// CompletionOrder lists pids in the order their final slice ended.
func (r *Result) CompletionOrder() []int {
	order := make([]int, 0, len(r.Processes))
	for _, step := range r.Timeline {
		if step.To == core.Terminated {
			order = append(order, step.PID)
		}
	}
	return order
}

func generateProcessDetails(p *core.Process) responses.ProcessResponse {
	return responses.ProcessResponse{
		ProcessId:      p.PID,
		Name:           p.Name,
		ArrivalTime:    p.ArrivalTime,
		BurstTime:      p.BurstTime,
		Priority:       int(p.Priority),
		State:          p.State().String(),
		StartTime:      p.StartTime(),
		CompletionTime: p.CompletionTime(),
		ResponseTime:   p.ResponseTime(),
		TurnAroundTime: p.TurnaroundTime(),
		WaitingTime:    p.WaitingTime(),
	}
}

// GenerateResponse converts a finished run into its JSON representation.
func GenerateResponse(result *Result) responses.ScheduleResponse {
	details := make([]responses.ProcessResponse, 0, len(result.Processes))
	for _, p := range result.Processes {
		details = append(details, generateProcessDetails(p))
	}
	timeline := make([]responses.SliceResponse, 0, len(result.Timeline))
	for _, step := range result.Timeline {
		timeline = append(timeline, responses.SliceResponse{
			ProcessId: step.PID,
			Start:     step.Start,
			End:       step.End,
			Completed: step.To == core.Terminated,
		})
	}
	return responses.ScheduleResponse{
		Algorithm:             result.Algorithm,
		Description:           result.Description,
		AlgorithmType:         result.AlgorithmType,
		Preemptive:            result.Preemptive,
		TotalTime:             result.TotalTime,
		IdleTime:              result.IdleTime,
		ContextSwitches:       result.ContextSwitches,
		AverageWaitingTime:    result.AverageWaitingTime,
		AverageResponseTime:   result.AverageResponseTime,
		AverageTurnAroundTime: result.AverageTurnaroundTime,
		CpuUtilization:        result.CPUUtilization,
		CpuThroughput:         result.Throughput,
		Timeline:              timeline,
		Details:               details,
	}
}
