package memscan

import (
	"fmt"
	"sort"
)

// RegionSnapshot is a shared, immutable byte sequence captured from one
// region at one instant. Two RegionSnapshots with byte-identical contents
// always share the same underlying storage (see dedup.go).
type RegionSnapshot struct {
	sb *sharedBytes
}

// Data returns the captured bytes. The returned slice must not be mutated;
// it may be shared with other RegionSnapshots.
func (rs *RegionSnapshot) Data() []byte {
	return rs.sb.data
}

// snapshotRegion reads region's full byte range through h and canonicalizes
// the result through pool, so that byte-identical region contents across
// snapshots share storage.
func snapshotRegion(pool *dedupPool, h Handle, region Region) (*RegionSnapshot, error) {
	buf := make([]byte, region.Size())

	if err := h.Read(buf, region.Start); err != nil {
		return nil, err
	}

	return pool.wrap(buf), nil
}

// RegionEntry is one (Region, snapshot-or-error) pair within a
// ProcessSnapshot, in enumeration order.
type RegionEntry struct {
	Region   Region
	Snapshot *RegionSnapshot // nil when Err is set
	Err      error
}

// ProcessSnapshot is an ordered, immutable collection of region snapshots
// for one target process, filtered by a caller-supplied region predicate.
type ProcessSnapshot struct {
	entries []RegionEntry
}

// NewProcessSnapshot enumerates h's regions, keeps those for which predicate
// returns true, and snapshots each. A region enumeration error aborts the
// whole operation; a per-region read failure is recorded on that entry
// instead of aborting.
func NewProcessSnapshot(h Handle, predicate func(Region) bool) (*ProcessSnapshot, error) {
	return newProcessSnapshot(defaultPool, h, predicate)
}

// newProcessSnapshot is NewProcessSnapshot with an explicit dedup
// pool, for tests that need isolation from the process-wide default.
func newProcessSnapshot(pool *dedupPool, h Handle, predicate func(Region) bool) (*ProcessSnapshot, error) {
	results, err := h.Regions()
	if err != nil {
		return nil, fmt.Errorf("enumerate regions: %w", err)
	}

	entries := make([]RegionEntry, 0, len(results))

	for _, rr := range results {
		if rr.Err != nil {
			return nil, fmt.Errorf("enumerate regions: %w", rr.Err)
		}

		region := rr.Region
		if !predicate(region) {
			continue
		}

		snap, err := snapshotRegion(pool, h, region)
		if err != nil {
			entries = append(entries, RegionEntry{Region: region, Err: err})
			continue
		}

		entries = append(entries, RegionEntry{Region: region, Snapshot: snap})
	}

	return &ProcessSnapshot{entries: entries}, nil
}

// Entries returns the snapshot's (Region, snapshot-or-error) pairs in
// enumeration order.
func (p *ProcessSnapshot) Entries() []RegionEntry {
	return p.entries
}

// View returns a transient cursor over p for address-indexed lookup. The
// view must not outlive p.
func (p *ProcessSnapshot) View() *View {
	return &View{snap: p}
}

// View is a read-only, address-indexed window onto a ProcessSnapshot. It
// caches the last region hit, since comparison drivers stream addresses
// monotonically within a region.
type View struct {
	snap    *ProcessSnapshot
	lastIdx int
}

// Lookup returns the slice of snapshot bytes starting at addr within its
// containing region, or nil on a miss (no containing region, a failed
// region snapshot, or addr out of range).
func (v *View) Lookup(addr Address) []byte {
	entries := v.snap.entries

	if v.lastIdx < len(entries) {
		if e := entries[v.lastIdx]; e.Region.Contains(addr) {
			return dataAt(e, addr)
		}
	}

	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].Region.End > addr
	})

	if i >= len(entries) || !entries[i].Region.Contains(addr) {
		return nil
	}

	v.lastIdx = i
	return dataAt(entries[i], addr)
}

func dataAt(e RegionEntry, addr Address) []byte {
	if e.Err != nil || e.Snapshot == nil {
		return nil
	}

	off := uint64(addr - e.Region.Start)
	data := e.Snapshot.Data()

	if off > uint64(len(data)) {
		return nil
	}

	return data[off:]
}
