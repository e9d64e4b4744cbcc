package memory

import (
	"errors"
	"fmt"

	"github.com/markphelps/optional"
	"github.com/sirupsen/logrus"

	"github.com/neptune-T/OS-Simulation-Platform/internal/logger"
)

var ErrInvalidSize = errors.New("invalid memory size")

// Allocator hands out contiguous address ranges to owners.
type Allocator interface {
	AllocateMemory(size, pid int, name optional.String) int
	DeallocateMemory(pid int) bool
	Compact()
	Snapshot() Snapshot
}

// Snapshot is a read-only view of an allocator's ledger and derived metrics.
type Snapshot struct {
	Strategy         Strategy
	TotalSize        int
	UsedSize         int
	FreeSize         int
	Utilization      float64
	Fragmentation    float64
	LargestFreeBlock int
	FreeBlockCount   int
	Blocks           []Block
}

// ContiguousAllocator manages one address space with a fit strategy. It is not safe for
// concurrent use.
type ContiguousAllocator struct {
	ledger   *Ledger
	strategy Strategy
	cursor   int
}

func NewContiguousAllocator(totalSize int, strategy Strategy) (*ContiguousAllocator, error) {
	if totalSize <= 0 {
		return nil, fmt.Errorf("%w: total size must be positive, got %d", ErrInvalidSize, totalSize)
	}
	a := &ContiguousAllocator{ledger: NewLedger(totalSize)}
	if err := a.SetStrategy(strategy); err != nil {
		return nil, err
	}
	return a, nil
}

// SetStrategy switches the fit strategy. Selecting next fit restarts its search at the
// lowest address.
func (a *ContiguousAllocator) SetStrategy(s Strategy) error {
	switch s {
	case FirstFit, BestFit, WorstFit, NextFit:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	a.strategy = s
	if s == NextFit {
		a.cursor = 0
	}
	return nil
}

func (a *ContiguousAllocator) Strategy() Strategy {
	return a.strategy
}

func (a *ContiguousAllocator) findFreeBlock(size int) int {
	switch a.strategy {
	case BestFit:
		return findBySize(a.ledger, size, smaller)
	case WorstFit:
		return findBySize(a.ledger, size, larger)
	case NextFit:
		return findFirst(a.ledger, size, a.cursor)
	}
	return findFirst(a.ledger, size, 0)
}

// AllocateMemory places size units for pid and returns the start address, or -1 when size
// is not positive or no free block is large enough. An absent name becomes "Process <pid>".
func (a *ContiguousAllocator) AllocateMemory(size, pid int, name optional.String) int {
	log := logger.GetLogger().WithFields(logrus.Fields{
		"pid":      pid,
		"size":     size,
		"strategy": a.strategy.String(),
	})
	if size <= 0 {
		log.Warn("allocation rejected, size must be positive")
		return -1
	}
	idx := a.findFreeBlock(size)
	if idx < 0 {
		log.WithFields(logrus.Fields{
			"free":    a.ledger.FreeSize(),
			"largest": a.ledger.LargestFreeBlock(),
		}).Warn("allocation failed, no free block large enough")
		return -1
	}
	a.ledger.Split(idx, size)
	block := &a.ledger.blocks[idx]
	block.Free = false
	block.ProcessID = pid
	block.Name = name.OrElse(fmt.Sprintf("Process %d", pid))
	if a.strategy == NextFit {
		a.cursor = idx + 1
	}
	log.WithField("address", block.StartAddress).Debug("memory allocated")
	return block.StartAddress
}

// DeallocateMemory frees every block owned by pid and coalesces free neighbours. It reports
// false when pid owns nothing.
func (a *ContiguousAllocator) DeallocateMemory(pid int) bool {
	if !a.ledger.Release(pid) {
		logger.GetLogger().WithField("pid", pid).Warn("deallocation failed, pid owns no memory")
		return false
	}
	logger.GetLogger().WithField("pid", pid).Debug("memory released")
	return true
}

func (a *ContiguousAllocator) Compact() {
	before := a.ledger.FreeBlockCount()
	a.ledger.Compact()
	logger.GetLogger().WithFields(logrus.Fields{
		"free_blocks_before": before,
		"free_blocks_after":  a.ledger.FreeBlockCount(),
	}).Info("memory compacted")
}

func (a *ContiguousAllocator) Validate() error {
	return a.ledger.Validate()
}

func (a *ContiguousAllocator) Snapshot() Snapshot {
	l := a.ledger
	return Snapshot{
		Strategy:         a.strategy,
		TotalSize:        l.TotalSize(),
		UsedSize:         l.UsedSize(),
		FreeSize:         l.FreeSize(),
		Utilization:      l.Utilization(),
		Fragmentation:    l.Fragmentation(),
		LargestFreeBlock: l.LargestFreeBlock(),
		FreeBlockCount:   l.FreeBlockCount(),
		Blocks:           l.Blocks(),
	}
}
