package memscan

import (
	"bytes"
	"runtime"
	"sort"
	"sync"
)

// dedupPool is a process-wide (or, for tests, per-instance) store that makes
// byte-identical region snapshots share storage. Entries are conceptually
// weak: Go has no Weak[T], so each RegionSnapshot instead holds a strong
// reference plus a manual refcount, and a runtime cleanup decrements the
// count when the RegionSnapshot is collected. Reaching zero removes the
// entry from the pool at once (see release).
type dedupPool struct {
	mu      sync.Mutex
	entries []*sharedBytes
}

type sharedBytes struct {
	data []byte
	refs int32 // guarded by the owning pool's mu
}

// newDedupPool returns a fresh, empty pool. Tests that need isolation from
// the process-wide default should create their own.
func newDedupPool() *dedupPool {
	return &dedupPool{}
}

// defaultPool is the process-wide singleton used when no pool is supplied
// explicitly.
var defaultPool = newDedupPool()

// acquire adopts an existing entry with byte-identical contents, or installs
// buf as a new entry at the correct sorted position. Either way the caller
// receives a strong reference with refs already incremented.
func (p *dedupPool) acquire(buf []byte) *sharedBytes {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := sort.Search(len(p.entries), func(i int) bool {
		return bytes.Compare(p.entries[i].data, buf) >= 0
	})

	if i < len(p.entries) && bytes.Equal(p.entries[i].data, buf) {
		p.entries[i].refs++
		return p.entries[i]
	}

	sb := &sharedBytes{data: buf, refs: 1}
	p.entries = append(p.entries, nil)
	copy(p.entries[i+1:], p.entries[i:])
	p.entries[i] = sb

	return sb
}

// release drops one strong reference, compacting the dead entry out of the
// pool once its refcount reaches zero.
func (p *dedupPool) release(sb *sharedBytes) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sb.refs--
	if sb.refs > 0 {
		return
	}

	i := sort.Search(len(p.entries), func(i int) bool {
		return bytes.Compare(p.entries[i].data, sb.data) >= 0
	})

	if i < len(p.entries) && p.entries[i] == sb {
		p.entries = append(p.entries[:i], p.entries[i+1:]...)
	}
}

// wrap reads a fresh buffer through the pool, returning a RegionSnapshot
// that shares storage with any byte-identical snapshot still live.
func (p *dedupPool) wrap(buf []byte) *RegionSnapshot {
	sb := p.acquire(buf)
	rs := &RegionSnapshot{sb: sb}

	runtime.AddCleanup(rs, releaseOnCleanup, cleanupArg{pool: p, sb: sb})

	return rs
}

type cleanupArg struct {
	pool *dedupPool
	sb   *sharedBytes
}

func releaseOnCleanup(arg cleanupArg) {
	arg.pool.release(arg.sb)
}
