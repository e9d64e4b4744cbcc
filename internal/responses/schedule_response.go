package responses

type ProcessResponse struct {
	ProcessId      int    `json:"process_id"`
	Name           string `json:"name"`
	ArrivalTime    int    `json:"arrival_time"`
	BurstTime      int    `json:"burst_time"`
	Priority       int    `json:"priority"`
	State          string `json:"state"`
	StartTime      int    `json:"start_time"`
	CompletionTime int    `json:"completion_time"`
	ResponseTime   int    `json:"response_time"`
	TurnAroundTime int    `json:"turn_around_time"`
	WaitingTime    int    `json:"waiting_time"`
}

type SliceResponse struct {
	ProcessId int  `json:"process_id"`
	Start     int  `json:"start"`
	End       int  `json:"end"`
	Completed bool `json:"completed"`
}

type ScheduleResponse struct {
	Algorithm             string            `json:"algorithm"`
	Description           string            `json:"description"`
	AlgorithmType         string            `json:"algorithm_type"`
	Preemptive            bool              `json:"preemptive"`
	TotalTime             int               `json:"total_time"`
	IdleTime              int               `json:"idle_time"`
	ContextSwitches       int               `json:"context_switches"`
	AverageWaitingTime    float64           `json:"average_waiting_time"`
	AverageResponseTime   float64           `json:"average_response_time"`
	AverageTurnAroundTime float64           `json:"average_turn_around_time"`
	CpuUtilization        float64           `json:"cpu_utilization"`
	CpuThroughput         float64           `json:"cpu_throughput"`
	Timeline              []SliceResponse   `json:"timeline"`
	Details               []ProcessResponse `json:"details"`
	ReportURL             string            `json:"report_url,omitempty"`
}

type CompareResponse struct {
	Results   []ScheduleResponse `json:"results"`
	ReportURL string             `json:"report_url,omitempty"`
}

// ScenarioRunResponse carries whichever comparisons the scenario has a workload for.
type ScenarioRunResponse struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Schedule    *CompareResponse       `json:"schedule,omitempty"`
	Memory      *MemoryCompareResponse `json:"memory,omitempty"`
	ReportURL   string                 `json:"report_url,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
