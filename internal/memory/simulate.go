package memory

import (
	"fmt"

	"github.com/markphelps/optional"
)

// Request is one step of an allocation workload: either an allocation of Size units for
// ProcessID, or the release of everything ProcessID holds.
type Request struct {
	ProcessID int
	Name      string
	Size      int
	Release   bool
}

func (r Request) String() string {
	if r.Release {
		return fmt.Sprintf("release pid %d", r.ProcessID)
	}
	return fmt.Sprintf("allocate %d for pid %d", r.Size, r.ProcessID)
}

// Outcome records what one request did. Address is -1 for releases and failed allocations.
type Outcome struct {
	Request Request
	Address int
	OK      bool
}

type ReplayResult struct {
	Outcomes []Outcome
	Failures int
	Final    Snapshot
}

// Replay applies requests in order. Failed requests are counted and the replay continues.
func Replay(a Allocator, reqs []Request) ReplayResult {
	result := ReplayResult{Outcomes: make([]Outcome, 0, len(reqs))}
	for _, r := range reqs {
		outcome := Outcome{Request: r, Address: -1}
		if r.Release {
			outcome.OK = a.DeallocateMemory(r.ProcessID)
		} else {
			name := optional.String{}
			if r.Name != "" {
				name = optional.NewString(r.Name)
			}
			outcome.Address = a.AllocateMemory(r.Size, r.ProcessID, name)
			outcome.OK = outcome.Address >= 0
		}
		if !outcome.OK {
			result.Failures++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	result.Final = a.Snapshot()
	return result
}

type StrategyComparison struct {
	Strategy Strategy
	Result   ReplayResult
}

// CompareStrategies replays the same workload on a fresh allocator per strategy.
func CompareStrategies(totalSize int, reqs []Request) ([]StrategyComparison, error) {
	out := make([]StrategyComparison, 0, len(Strategies))
	for _, s := range Strategies {
		a, err := NewContiguousAllocator(totalSize, s)
		if err != nil {
			return nil, err
		}
		out = append(out, StrategyComparison{Strategy: s, Result: Replay(a, reqs)})
	}
	return out, nil
}
