package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/neptune-T/OS-Simulation-Platform/internal/logger"
	"github.com/neptune-T/OS-Simulation-Platform/internal/memory"
	"github.com/neptune-T/OS-Simulation-Platform/internal/requests"
	"github.com/neptune-T/OS-Simulation-Platform/internal/responses"
	"github.com/neptune-T/OS-Simulation-Platform/internal/scenario"
	"github.com/neptune-T/OS-Simulation-Platform/internal/tracing"
)

func (s *SchedulerHandlerImpl) SimulateMemory(ctx *fiber.Ctx) error {
	request, err := s.parseMemory(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	strategy, err := memory.ParseStrategy(request.Strategy)
	if err != nil {
		return badRequest(ctx, err)
	}
	allocator, err := memory.NewContiguousAllocator(request.TotalSize, strategy)
	if err != nil {
		return badRequest(ctx, err)
	}

	spanCtx, span := tracing.StartSpan(ctx.Context(), "memory.simulate", "SERVER")
	span.WithAttributes(map[string]string{"strategy": strategy.String()}).WithInt("requests", len(request.Operations))
	result := memory.Replay(allocator, scenario.ToMemoryRequests(request.Operations))
	if request.Compact {
		allocator.Compact()
		result.Final = allocator.Snapshot()
	}
	err = allocator.Validate()
	span.WithFloat("fragmentation", result.Final.Fragmentation)
	tracing.EndSpan(span, err)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(responses.ErrorResponse{Error: err.Error()})
	}
	s.metrics.RecordReplay(result)

	logger.GetLogger().WithFields(logrus.Fields{
		"strategy":      strategy.String(),
		"failures":      result.Failures,
		"utilization":   result.Final.Utilization,
		"fragmentation": result.Final.Fragmentation,
	}).Info("memory simulation completed")

	response := memoryResponse(result, request.Compact)
	response.ReportURL = s.export(spanCtx, "memory", response)
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) CompareMemory(ctx *fiber.Ctx) error {
	request, err := s.parseMemory(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	spanCtx, span := tracing.StartSpan(ctx.Context(), "memory.compare", "SERVER")
	response, err := s.compareMemory(request.TotalSize, scenario.ToMemoryRequests(request.Operations))
	tracing.EndSpan(span, err)
	if err != nil {
		return badRequest(ctx, err)
	}
	response.ReportURL = s.export(spanCtx, "memory-comparison", response)
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) compareMemory(total int, reqs []memory.Request) (responses.MemoryCompareResponse, error) {
	comparisons, err := memory.CompareStrategies(total, reqs)
	if err != nil {
		return responses.MemoryCompareResponse{}, err
	}
	response := responses.MemoryCompareResponse{
		TotalSize: total,
		Results:   make([]responses.MemoryComparisonRow, 0, len(comparisons)),
	}
	for _, c := range comparisons {
		s.metrics.RecordReplay(c.Result)
		response.Results = append(response.Results, responses.MemoryComparisonRow{
			Strategy:         c.Strategy.String(),
			Name:             c.Strategy.DisplayName(),
			Utilization:      c.Result.Final.Utilization,
			Fragmentation:    c.Result.Final.Fragmentation,
			LargestFreeBlock: c.Result.Final.LargestFreeBlock,
			FreeBlockCount:   c.Result.Final.FreeBlockCount,
			Failures:         c.Result.Failures,
		})
	}
	return response, nil
}

// parseMemory reads a memory request, filling total size and strategy from the
// configuration when they are absent.
func (s *SchedulerHandlerImpl) parseMemory(ctx *fiber.Ctx) (*requests.MemoryRequests, error) {
	request := new(requests.MemoryRequests)
	if err := ctx.BodyParser(request); err != nil {
		return nil, errInvalidFormat
	}
	cfg := s.currentConfig()
	if request.TotalSize == 0 {
		request.TotalSize = cfg.Memory.TotalSize
	}
	if request.Strategy == "" {
		request.Strategy = cfg.Memory.Strategy
	}
	if len(request.Operations) == 0 {
		return nil, fmt.Errorf("memory request needs at least one operation")
	}
	return request, nil
}

func memoryResponse(result memory.ReplayResult, compacted bool) responses.MemoryResponse {
	final := result.Final
	response := responses.MemoryResponse{
		Strategy:         final.Strategy.String(),
		TotalSize:        final.TotalSize,
		UsedSize:         final.UsedSize,
		FreeSize:         final.FreeSize,
		Utilization:      final.Utilization,
		Fragmentation:    final.Fragmentation,
		LargestFreeBlock: final.LargestFreeBlock,
		FreeBlockCount:   final.FreeBlockCount,
		Failures:         result.Failures,
		Compacted:        compacted,
		Steps:            make([]responses.MemoryStepResponse, 0, len(result.Outcomes)),
		Blocks:           make([]responses.BlockResponse, 0, len(final.Blocks)),
	}
	for _, o := range result.Outcomes {
		response.Steps = append(response.Steps, responses.MemoryStepResponse{
			ProcessId: o.Request.ProcessID,
			Size:      o.Request.Size,
			Release:   o.Request.Release,
			Address:   o.Address,
			Success:   o.OK,
		})
	}
	for _, b := range final.Blocks {
		response.Blocks = append(response.Blocks, responses.BlockResponse{
			StartAddress: b.StartAddress,
			EndAddress:   b.EndAddress(),
			Size:         b.Size,
			Free:         b.Free,
			ProcessId:    b.ProcessID,
			Name:         b.Name,
		})
	}
	return response
}
