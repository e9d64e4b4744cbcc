package memory

import (
	"fmt"
)

const (
	FreeName = "free"
	NoOwner  = -1
)

// Block is a contiguous address range [StartAddress, StartAddress+Size).
type Block struct {
	StartAddress int
	Size         int
	Free         bool
	ProcessID    int
	Name         string
}

func freeBlock(start, size int) Block {
	return Block{StartAddress: start, Size: size, Free: true, ProcessID: NoOwner, Name: FreeName}
}

// EndAddress is the first address past the block.
func (b Block) EndAddress() int {
	return b.StartAddress + b.Size
}

func (b Block) String() string {
	if b.Free {
		return fmt.Sprintf("[%d,%d) free", b.StartAddress, b.EndAddress())
	}
	return fmt.Sprintf("[%d,%d) pid %d (%s)", b.StartAddress, b.EndAddress(), b.ProcessID, b.Name)
}

// Ledger partitions [0, total) into blocks ordered by address. Blocks are addressed by
// index; split and merge shift indices but never leave stale references behind.
type Ledger struct {
	total  int
	blocks []Block
}

func NewLedger(total int) *Ledger {
	return &Ledger{total: total, blocks: []Block{freeBlock(0, total)}}
}

func (l *Ledger) TotalSize() int {
	return l.total
}

func (l *Ledger) Len() int {
	return len(l.blocks)
}

func (l *Ledger) Block(i int) Block {
	return l.blocks[i]
}

// Blocks returns a copy of the ledger.
func (l *Ledger) Blocks() []Block {
	out := make([]Block, len(l.blocks))
	copy(out, l.blocks)
	return out
}

// Split carves an owned-size prefix out of the free block at index i. The remainder, if
// any, is inserted right after it as a new free block. It reports false when the block is
// not free or too small.
func (l *Ledger) Split(i, size int) bool {
	if i < 0 || i >= len(l.blocks) {
		return false
	}
	b := l.blocks[i]
	if !b.Free || b.Size < size {
		return false
	}
	if b.Size == size {
		return true
	}
	rest := freeBlock(b.StartAddress+size, b.Size-size)
	l.blocks[i].Size = size
	l.blocks = append(l.blocks, Block{})
	copy(l.blocks[i+2:], l.blocks[i+1:])
	l.blocks[i+1] = rest
	return true
}

// Merge coalesces every run of adjacent free blocks into one.
func (l *Ledger) Merge() {
	merged := l.blocks[:1]
	for _, b := range l.blocks[1:] {
		last := &merged[len(merged)-1]
		if last.Free && b.Free && last.EndAddress() == b.StartAddress {
			last.Size += b.Size
			continue
		}
		merged = append(merged, b)
	}
	l.blocks = merged
}

// Compact moves every owned block to the front in their current order and leaves a single
// trailing free block.
func (l *Ledger) Compact() {
	compacted := make([]Block, 0, len(l.blocks))
	addr := 0
	for _, b := range l.blocks {
		if b.Free {
			continue
		}
		b.StartAddress = addr
		addr += b.Size
		compacted = append(compacted, b)
	}
	if addr < l.total {
		compacted = append(compacted, freeBlock(addr, l.total-addr))
	}
	l.blocks = compacted
}

// Release frees every block owned by pid and merges. It reports whether any block was
// found.
func (l *Ledger) Release(pid int) bool {
	found := false
	for i := range l.blocks {
		if !l.blocks[i].Free && l.blocks[i].ProcessID == pid {
			l.blocks[i] = freeBlock(l.blocks[i].StartAddress, l.blocks[i].Size)
			found = true
		}
	}
	if found {
		l.Merge()
	}
	return found
}

func (l *Ledger) UsedSize() int {
	used := 0
	for _, b := range l.blocks {
		if !b.Free {
			used += b.Size
		}
	}
	return used
}

func (l *Ledger) FreeSize() int {
	return l.total - l.UsedSize()
}

func (l *Ledger) LargestFreeBlock() int {
	largest := 0
	for _, b := range l.blocks {
		if b.Free && b.Size > largest {
			largest = b.Size
		}
	}
	return largest
}

func (l *Ledger) FreeBlockCount() int {
	n := 0
	for _, b := range l.blocks {
		if b.Free {
			n++
		}
	}
	return n
}

// Utilization is the owned share of the address space in percent.
func (l *Ledger) Utilization() float64 {
	return float64(l.UsedSize()) / float64(l.total) * 100
}

// Fragmentation is the external fragmentation in percent: the share of free memory that
// lies outside the largest free block.
func (l *Ledger) Fragmentation() float64 {
	free := l.FreeSize()
	if free == 0 {
		return 0
	}
	largest := l.LargestFreeBlock()
	if largest >= free {
		return 0
	}
	return float64(free-largest) / float64(free) * 100
}

// Validate checks that the blocks cover [0, total) exactly, in order, with no two free
// neighbours.
func (l *Ledger) Validate() error {
	if len(l.blocks) == 0 {
		return fmt.Errorf("ledger is empty")
	}
	addr := 0
	for i, b := range l.blocks {
		if b.Size <= 0 {
			return fmt.Errorf("block %d has size %d", i, b.Size)
		}
		if b.StartAddress != addr {
			return fmt.Errorf("block %d starts at %d, expected %d", i, b.StartAddress, addr)
		}
		if b.Free && b.ProcessID != NoOwner {
			return fmt.Errorf("free block %d is owned by pid %d", i, b.ProcessID)
		}
		if i > 0 && b.Free && l.blocks[i-1].Free {
			return fmt.Errorf("blocks %d and %d are adjacent free blocks", i-1, i)
		}
		addr = b.EndAddress()
	}
	if addr != l.total {
		return fmt.Errorf("blocks end at %d, expected %d", addr, l.total)
	}
	return nil
}
