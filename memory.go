package memscan

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RegionResult pairs an enumerated Region with an error, when the platform
// adapter failed to decode that particular entry (e.g. a malformed
// /proc/<pid>/maps line). A non-nil Err here aborts the whole enumeration;
// see Handle.Regions.
type RegionResult struct {
	Region Region
	Err    error
}

// Adapter is the platform memory-access collaborator: it enumerates target
// processes and opens handles to them. Implementations live in
// memory_linux.go and memory_windows.go, gated by build tag.
type Adapter interface {
	// List returns every process id visible to the caller.
	List() ([]uint32, error)

	// Open acquires a handle to pid with the requested access rights.
	// Denied operations on the resulting handle return ErrPermission.
	Open(pid uint32, read, write bool) (Handle, error)
}

// Handle is an open, access-scoped reference to one target process.
type Handle interface {
	// Regions enumerates the process's mapped virtual memory ranges in
	// non-decreasing start order. An error return aborts enumeration
	// entirely; a per-item RegionResult.Err marks one malformed entry
	// without necessarily aborting the rest (platform-dependent), but
	// callers building a ProcessSnapshot MUST treat any non-nil item
	// error as an abort per the region-snapshot contract.
	Regions() ([]RegionResult, error)

	// Read fills buf completely starting at addr, or returns an error.
	// Partial transfers are never reported as success.
	Read(buf []byte, addr Address) error

	// Write writes buf completely starting at addr, or returns an error.
	Write(buf []byte, addr Address) error

	// Path returns the path to the handle's main executable image.
	Path() (string, error)

	// Close releases the handle. Safe to call more than once.
	Close() error
}

// ListByName resolves every process id whose main executable's base name
// matches name (case-insensitively), generalizing the teacher's
// Windows-only Toolhelp32Snapshot name search to any Adapter.
func ListByName(a Adapter, name string) ([]uint32, error) {
	ids, err := a.List()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	var matches []uint32

	for _, id := range ids {
		h, err := a.Open(id, false, false)
		if err != nil {
			continue
		}

		path, err := h.Path()
		h.Close()

		if err != nil {
			continue
		}

		if strings.EqualFold(filepath.Base(path), name) {
			matches = append(matches, id)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: process %q", ErrNotFound, name)
	}

	return matches, nil
}

// WritableRegion is the default region predicate used throughout the CLI:
// a region is in scope for scanning/dumping iff it is writable.
func WritableRegion(r Region) bool {
	return r.Write
}
