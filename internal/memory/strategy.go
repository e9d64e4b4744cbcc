package memory

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStrategy = errors.New("unknown allocation strategy")

type Strategy int

const (
	FirstFit Strategy = iota
	BestFit
	WorstFit
	NextFit
)

// Strategies lists every strategy in comparison order.
var Strategies = []Strategy{FirstFit, BestFit, WorstFit, NextFit}

func (s Strategy) String() string {
	switch s {
	case FirstFit:
		return "first_fit"
	case BestFit:
		return "best_fit"
	case WorstFit:
		return "worst_fit"
	case NextFit:
		return "next_fit"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// DisplayName is the human readable strategy name.
func (s Strategy) DisplayName() string {
	switch s {
	case FirstFit:
		return "First Fit"
	case BestFit:
		return "Best Fit"
	case WorstFit:
		return "Worst Fit"
	case NextFit:
		return "Next Fit"
	}
	return s.String()
}

func ParseStrategy(name string) (Strategy, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for _, s := range Strategies {
		if s.String() == n {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// findFirst returns the first free block of at least size at or after index from,
// wrapping around the ledger once.
func findFirst(l *Ledger, size, from int) int {
	n := l.Len()
	for i := 0; i < n; i++ {
		idx := (from + i) % n
		if b := l.Block(idx); b.Free && b.Size >= size {
			return idx
		}
	}
	return -1
}

// findBySize returns the first free block of at least size whose size wins under better.
func findBySize(l *Ledger, size int, better func(candidate, best int) bool) int {
	found := -1
	for i := 0; i < l.Len(); i++ {
		b := l.Block(i)
		if !b.Free || b.Size < size {
			continue
		}
		if found < 0 || better(b.Size, l.Block(found).Size) {
			found = i
		}
	}
	return found
}

func smaller(candidate, best int) bool {
	return candidate < best
}

func larger(candidate, best int) bool {
	return candidate > best
}
