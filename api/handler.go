package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/neptune-T/OS-Simulation-Platform/config"
	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
	"github.com/neptune-T/OS-Simulation-Platform/internal/logger"
	"github.com/neptune-T/OS-Simulation-Platform/internal/metrics"
	"github.com/neptune-T/OS-Simulation-Platform/internal/report"
	"github.com/neptune-T/OS-Simulation-Platform/internal/requests"
	"github.com/neptune-T/OS-Simulation-Platform/internal/responses"
	"github.com/neptune-T/OS-Simulation-Platform/internal/scenario"
	"github.com/neptune-T/OS-Simulation-Platform/internal/schedulers"
	"github.com/neptune-T/OS-Simulation-Platform/internal/tracing"
)

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	ShortestRemainingTimeFirst(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	PriorityPreemptive(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	MultilevelFeedbackQueue(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	SimulateMemory(ctx *fiber.Ctx) error
	CompareMemory(ctx *fiber.Ctx) error
	Scenarios(ctx *fiber.Ctx) error
	Scenario(ctx *fiber.Ctx) error
	RunScenario(ctx *fiber.Ctx) error
	Report(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	mu        sync.RWMutex
	config    *config.SchedulerConfig
	scenarios *scenario.Catalog
	metrics   *metrics.PrometheusMetrics
	exporter  *report.Exporter
}

var _ SchedulerHandler = (*SchedulerHandlerImpl)(nil)

// NewSchedulerHandlerImpl builds the handlers serving the preset scenarios. exporter may be
// nil, in which case results are not persisted.
func NewSchedulerHandlerImpl(config *config.SchedulerConfig, metrics *metrics.PrometheusMetrics, exporter *report.Exporter) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{
		config:    config,
		scenarios: scenario.NewCatalog(),
		metrics:   metrics,
		exporter:  exporter,
	}
}

// Register mounts every route on router.
func (s *SchedulerHandlerImpl) Register(router fiber.Router) {
	router.Use(s.observe)

	router.Post("/fcfs", s.FirstComeFirstServe)
	router.Post("/sjf", s.ShortestJobFirst)
	router.Post("/srtf", s.ShortestRemainingTimeFirst)
	router.Post("/priority", s.Priority)
	router.Post("/priority-preemptive", s.PriorityPreemptive)
	router.Post("/rr", s.RoundRobin)
	router.Post("/mlfq", s.MultilevelFeedbackQueue)
	router.Post("/all", s.AllAlgorithms)

	router.Post("/memory/simulate", s.SimulateMemory)
	router.Post("/memory/compare", s.CompareMemory)

	router.Get("/scenarios", s.Scenarios)
	router.Get("/scenarios/:name", s.Scenario)
	router.Post("/scenarios/:name/run", s.RunScenario)

	router.Get("/reports/:id", s.Report)
}

// SetConfig swaps the configuration used by subsequent requests.
func (s *SchedulerHandlerImpl) SetConfig(cfg *config.SchedulerConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

func (s *SchedulerHandlerImpl) currentConfig() *config.SchedulerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetScenarios replaces the catalog behind the scenario routes.
func (s *SchedulerHandlerImpl) SetScenarios(catalog *scenario.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios = catalog
}

func (s *SchedulerHandlerImpl) catalog() *scenario.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scenarios
}

func (s *SchedulerHandlerImpl) observe(ctx *fiber.Ctx) error {
	start := time.Now()
	err := ctx.Next()
	status := ctx.Response().StatusCode()
	if e, ok := err.(*fiber.Error); ok {
		status = e.Code
	}
	s.metrics.RecordResponseTime(ctx.Route().Path, status, time.Since(start))
	return err
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.KindFCFS)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.KindSJF)
}

func (s *SchedulerHandlerImpl) ShortestRemainingTimeFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.KindSRTF)
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.KindPriority)
}

func (s *SchedulerHandlerImpl) PriorityPreemptive(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.KindPriorityPreemptive)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.KindRoundRobin)
}

func (s *SchedulerHandlerImpl) MultilevelFeedbackQueue(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.KindMLFQ)
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	request, procs, err := parseJobs(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	spanCtx, span := tracing.StartSpan(ctx.Context(), "schedule.all", "SERVER")
	span.WithInt("processes", len(procs))
	response, err := s.compareSchedules(procs, s.options(request.TimeQuantum))
	tracing.EndSpan(span, err)
	if err != nil {
		return badRequest(ctx, err)
	}
	response.ReportURL = s.export(spanCtx, "comparison", response)
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) compareSchedules(procs []*core.Process, opts schedulers.Options) (responses.CompareResponse, error) {
	results, err := schedulers.CompareAll(procs, opts)
	if err != nil {
		return responses.CompareResponse{}, err
	}
	response := responses.CompareResponse{Results: make([]responses.ScheduleResponse, 0, len(results))}
	for i, result := range results {
		s.metrics.RecordSchedule(schedulers.Kinds[i], result)
		response.Results = append(response.Results, schedulers.GenerateResponse(result))
	}
	return response, nil
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, kind schedulers.Kind) error {
	request, procs, err := parseJobs(ctx)
	if err != nil {
		s.metrics.RecordScheduleFailure(kind)
		return badRequest(ctx, err)
	}

	scheduler, err := schedulers.New(kind, s.options(request.TimeQuantum))
	if err != nil {
		s.metrics.RecordScheduleFailure(kind)
		return badRequest(ctx, err)
	}

	spanCtx, span := tracing.StartSpan(ctx.Context(), "schedule."+string(kind), "SERVER")
	span.WithAttributes(map[string]string{"algorithm": scheduler.Name()}).WithInt("processes", len(procs))
	result, err := scheduler.Schedule(procs)
	if err == nil {
		span.WithFloat("average_waiting_time", result.AverageWaitingTime).WithInt("total_time", result.TotalTime)
	}
	tracing.EndSpan(span, err)
	if err != nil {
		s.metrics.RecordScheduleFailure(kind)
		return badRequest(ctx, err)
	}
	s.metrics.RecordSchedule(kind, result)

	logger.GetLogger().WithFields(logrus.Fields{
		"algorithm":            result.AlgorithmType,
		"processes":            len(result.Processes),
		"total_time":           result.TotalTime,
		"average_waiting_time": result.AverageWaitingTime,
	}).Info("schedule completed")

	response := schedulers.GenerateResponse(result)
	response.ReportURL = s.export(spanCtx, string(kind), response)
	return ctx.JSON(response)
}

// options resolves the time quantum of a request against the configured defaults.
func (s *SchedulerHandlerImpl) options(timeQuantum int) schedulers.Options {
	cfg := s.currentConfig()
	opts := schedulers.Options{
		TimeQuantum: cfg.RoundRobinTimeQuantum,
		LevelQuanta: cfg.MultilevelFeedbackQueueLevelsTimeQuantum,
	}
	if timeQuantum != 0 {
		opts.TimeQuantum = timeQuantum
	}
	return opts
}

func (s *SchedulerHandlerImpl) Scenarios(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"scenarios": s.catalog().Names()})
}

func (s *SchedulerHandlerImpl) Scenario(ctx *fiber.Ctx) error {
	sc, err := s.catalog().Get(ctx.Params("name"))
	if err != nil {
		return notFound(ctx, err)
	}
	return ctx.JSON(sc)
}

// RunScenario feeds a scenario's process set to every scheduler and its allocation
// sequence to every fit strategy.
func (s *SchedulerHandlerImpl) RunScenario(ctx *fiber.Ctx) error {
	sc, err := s.catalog().Get(ctx.Params("name"))
	if err != nil {
		return notFound(ctx, err)
	}

	spanCtx, span := tracing.StartSpan(ctx.Context(), "scenario.run", "SERVER")
	span.WithAttributes(map[string]string{"scenario": sc.Name})
	response, err := s.runScenario(sc)
	tracing.EndSpan(span, err)
	if err != nil {
		return badRequest(ctx, err)
	}

	logger.GetLogger().WithFields(logrus.Fields{
		"scenario": sc.Name,
		"schedule": response.Schedule != nil,
		"memory":   response.Memory != nil,
	}).Info("scenario completed")

	response.ReportURL = s.export(spanCtx, "scenario", response)
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) runScenario(sc *scenario.Scenario) (responses.ScenarioRunResponse, error) {
	response := responses.ScenarioRunResponse{Name: sc.Name, Description: sc.Description}
	if len(sc.Jobs) > 0 {
		procs, err := sc.Processes()
		if err != nil {
			return response, err
		}
		schedule, err := s.compareSchedules(procs, s.options(sc.TimeQuantum))
		if err != nil {
			return response, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		response.Schedule = &schedule
	}
	if reqs := sc.Requests(); len(reqs) > 0 {
		total := sc.Memory.TotalSize
		if total == 0 {
			total = s.currentConfig().Memory.TotalSize
		}
		mem, err := s.compareMemory(total, reqs)
		if err != nil {
			return response, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		response.Memory = &mem
	}
	if response.Schedule == nil && response.Memory == nil {
		return response, fmt.Errorf("scenario %s has no workload", sc.Name)
	}
	return response, nil
}

// Report returns a previously exported result document.
func (s *SchedulerHandlerImpl) Report(ctx *fiber.Ctx) error {
	if s.exporter == nil {
		return notFound(ctx, errReportsDisabled)
	}
	doc, err := s.exporter.Load(ctx.Context(), ctx.Params("id"))
	if errors.Is(err, report.ErrNotFound) {
		return notFound(ctx, err)
	}
	if err != nil {
		logger.GetLogger().WithError(err).Error("failed to load report")
		return ctx.Status(fiber.StatusInternalServerError).JSON(responses.ErrorResponse{Error: err.Error()})
	}
	return ctx.JSON(doc)
}

// export stores v when an exporter is configured and returns its URL. Export failures are
// logged and never fail the request.
func (s *SchedulerHandlerImpl) export(ctx context.Context, kind string, v interface{}) string {
	if s.exporter == nil {
		return ""
	}
	URL, err := s.exporter.Export(ctx, kind, v)
	if err != nil {
		logger.GetLogger().WithError(err).WithField("kind", kind).Warn("failed to export report")
		return ""
	}
	return URL
}

func parseJobs(ctx *fiber.Ctx) (*requests.ScheduleRequests, []*core.Process, error) {
	request := new(requests.ScheduleRequests)
	if err := ctx.BodyParser(request); err != nil {
		return nil, nil, errInvalidFormat
	}
	procs, err := request.ToProcesses()
	if err != nil {
		return nil, nil, err
	}
	return request, procs, nil
}

var (
	errInvalidFormat   = errors.New("invalid request format")
	errReportsDisabled = errors.New("report export is disabled")
)

func notFound(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusNotFound).JSON(responses.ErrorResponse{Error: err.Error()})
}

func badRequest(ctx *fiber.Ctx, err error) error {
	logger.GetLogger().WithError(err).WithField("path", ctx.Path()).Warn("request rejected")
	return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: err.Error()})
}
