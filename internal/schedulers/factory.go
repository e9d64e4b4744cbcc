package schedulers

import (
	"fmt"
	"strings"

	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
)

type Kind string

const (
	KindFCFS               Kind = "fcfs"
	KindSJF                Kind = "sjf"
	KindSRTF               Kind = "srtf"
	KindPriority           Kind = "priority"
	KindPriorityPreemptive Kind = "priority_preemptive"
	KindRoundRobin         Kind = "round_robin"
	KindMLFQ               Kind = "mlfq"
)

// Kinds lists every policy in the order CompareAll reports them.
var Kinds = []Kind{KindFCFS, KindSJF, KindSRTF, KindPriority, KindPriorityPreemptive, KindRoundRobin, KindMLFQ}

var kindAliases = map[string]Kind{
	"rr":                  KindRoundRobin,
	"priority-preemptive": KindPriorityPreemptive,
}

func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := kindAliases[n]; ok {
		return k, nil
	}
	for _, k := range Kinds {
		if string(k) == n {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown scheduling algorithm %q", ErrInvalidConfig, name)
}

type Options struct {
	TimeQuantum int
	LevelQuanta []int
}

// DefaultOptions matches the defaults of the configuration file.
func DefaultOptions() Options {
	return Options{TimeQuantum: DefaultTimeQuantum, LevelQuanta: []int{2, 4}}
}

func New(kind Kind, opts Options) (Scheduler, error) {
	switch kind {
	case KindFCFS:
		return NewFirstComeFirstServe(), nil
	case KindSJF:
		return NewShortestJobFirst(false), nil
	case KindSRTF:
		return NewShortestJobFirst(true), nil
	case KindPriority:
		return NewPriorityScheduling(false), nil
	case KindPriorityPreemptive:
		return NewPriorityScheduling(true), nil
	case KindRoundRobin:
		return NewRoundRobin(opts.TimeQuantum)
	case KindMLFQ:
		return NewMultilevelFeedbackQueue(opts.LevelQuanta)
	}
	return nil, fmt.Errorf("%w: unknown scheduling algorithm %q", ErrInvalidConfig, kind)
}

// CompareAll runs every policy over the same processes. The input is left untouched.
func CompareAll(processes []*core.Process, opts Options) ([]*Result, error) {
	if err := validateProcesses(processes); err != nil {
		return nil, err
	}
	results := make([]*Result, 0, len(Kinds))
	for _, kind := range Kinds {
		s, err := New(kind, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s scheduler: %w", kind, err)
		}
		result, err := s.Schedule(processes)
		if err != nil {
			return nil, fmt.Errorf("%s run failed: %w", kind, err)
		}
		results = append(results, result)
	}
	return results, nil
}
