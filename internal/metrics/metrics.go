package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/neptune-T/OS-Simulation-Platform/internal/memory"
	"github.com/neptune-T/OS-Simulation-Platform/internal/schedulers"
)

// PrometheusMetrics collects simulation metrics on its own registry
type PrometheusMetrics struct {
	registry *prometheus.Registry

	// scheduling
	scheduleRuns      *prometheus.CounterVec
	scheduleFailures  *prometheus.CounterVec
	scheduledProcs    *prometheus.CounterVec
	averageWaiting    *prometheus.GaugeVec
	averageTurnaround *prometheus.GaugeVec
	cpuUtilization    *prometheus.GaugeVec
	contextSwitches   *prometheus.HistogramVec

	// memory
	allocations   *prometheus.CounterVec
	releases      *prometheus.CounterVec
	utilization   *prometheus.GaugeVec
	fragmentation *prometheus.GaugeVec

	// http
	responseTime *prometheus.HistogramVec

	startTime time.Time
}

// NewPrometheusMetrics creates the collectors and registers them on a fresh registry
func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		registry: reg,
		scheduleRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ossim_schedule_runs_total",
			Help: "Total number of completed scheduling runs",
		}, []string{"algorithm"}),
		scheduleFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ossim_schedule_failures_total",
			Help: "Total number of rejected scheduling runs",
		}, []string{"algorithm"}),
		scheduledProcs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ossim_scheduled_processes_total",
			Help: "Total number of processes run to completion",
		}, []string{"algorithm"}),
		averageWaiting: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ossim_schedule_average_waiting_time",
			Help: "Average waiting time of the last run in time units",
		}, []string{"algorithm"}),
		averageTurnaround: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ossim_schedule_average_turnaround_time",
			Help: "Average turnaround time of the last run in time units",
		}, []string{"algorithm"}),
		cpuUtilization: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ossim_schedule_cpu_utilization_percent",
			Help: "CPU utilization of the last run",
		}, []string{"algorithm"}),
		contextSwitches: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ossim_schedule_context_switches",
			Help:    "Context switches per scheduling run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{"algorithm"}),
		allocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ossim_memory_allocations_total",
			Help: "Total number of allocation requests",
		}, []string{"strategy", "result"}),
		releases: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ossim_memory_releases_total",
			Help: "Total number of release requests",
		}, []string{"strategy", "result"}),
		utilization: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ossim_memory_utilization_percent",
			Help: "Memory utilization at the end of the last replay",
		}, []string{"strategy"}),
		fragmentation: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ossim_memory_fragmentation_percent",
			Help: "External fragmentation at the end of the last replay",
		}, []string{"strategy"}),
		responseTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ossim_http_response_time_seconds",
			Help:    "Response time of API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		startTime: time.Now(),
	}
}

func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordSchedule records a finished scheduling run
func (m *PrometheusMetrics) RecordSchedule(kind schedulers.Kind, result *schedulers.Result) {
	label := string(kind)
	m.scheduleRuns.WithLabelValues(label).Inc()
	m.scheduledProcs.WithLabelValues(label).Add(float64(len(result.Processes)))
	m.averageWaiting.WithLabelValues(label).Set(result.AverageWaitingTime)
	m.averageTurnaround.WithLabelValues(label).Set(result.AverageTurnaroundTime)
	m.cpuUtilization.WithLabelValues(label).Set(result.CPUUtilization)
	m.contextSwitches.WithLabelValues(label).Observe(float64(result.ContextSwitches))
}

// RecordScheduleFailure records a run rejected during validation
func (m *PrometheusMetrics) RecordScheduleFailure(kind schedulers.Kind) {
	m.scheduleFailures.WithLabelValues(string(kind)).Inc()
}

// RecordReplay records every request of a memory replay and the final ledger state
func (m *PrometheusMetrics) RecordReplay(result memory.ReplayResult) {
	strategy := result.Final.Strategy.String()
	for _, o := range result.Outcomes {
		counter := m.allocations
		if o.Request.Release {
			counter = m.releases
		}
		counter.WithLabelValues(strategy, outcomeLabel(o.OK)).Inc()
	}
	m.utilization.WithLabelValues(strategy).Set(result.Final.Utilization)
	m.fragmentation.WithLabelValues(strategy).Set(result.Final.Fragmentation)
}

// RecordResponseTime records the duration of one API request
func (m *PrometheusMetrics) RecordResponseTime(route string, status int, duration time.Duration) {
	m.responseTime.WithLabelValues(route, statusClass(status)).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}

func outcomeLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	}
	return "2xx"
}
