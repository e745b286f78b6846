// Package pool provides arena allocation used to keep the item index's
// composite-key interning out of the hot path.
package pool

import (
	"sync"
)

// ArenaPool provides arena-style allocation for bulk memory management,
// pre-allocating large chunks and serving smaller allocations from them.
// The item index uses this to hold millions of interned composite-key
// strings without a heap allocation per entry.
type ArenaPool struct {
	mu        sync.Mutex
	arenas    []*Arena
	chunkSize int
	maxArenas int
}

// Arena is a single pre-allocated chunk served by an ArenaPool.
type Arena struct {
	data   []byte
	offset int
}

// NewArenaPool creates an arena pool with the given chunk size and a cap on
// the number of arenas it will create before falling back to direct
// allocation.
func NewArenaPool(chunkSize, maxArenas int) *ArenaPool {
	return &ArenaPool{
		chunkSize: chunkSize,
		maxArenas: maxArenas,
		arenas:    make([]*Arena, 0, maxArenas),
	}
}

// Alloc allocates size bytes from the arena pool, creating a new arena if
// none of the existing ones have room. Allocations larger than chunkSize
// bypass the arena and allocate directly.
//
// Memory handed out by Alloc cannot be freed individually; call Reset to
// reclaim an arena's memory in bulk once its allocations are no longer
// needed.
func (p *ArenaPool) Alloc(size int) []byte {
	if size > p.chunkSize {
		return make([]byte, size)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, arena := range p.arenas {
		if arena.offset+size <= len(arena.data) {
			start := arena.offset
			arena.offset += size
			return arena.data[start:arena.offset]
		}
	}

	if len(p.arenas) < p.maxArenas {
		arena := &Arena{data: make([]byte, p.chunkSize)}
		p.arenas = append(p.arenas, arena)
		arena.offset = size
		return arena.data[0:size]
	}

	return make([]byte, size)
}

// Reset reclaims all arenas' memory for reuse. Previously allocated slices
// from this pool must not be used after Reset.
func (p *ArenaPool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, arena := range p.arenas {
		arena.offset = 0
	}
}

