//go:build windows

package memscan

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// windowsAdapter ports the teacher's own scanner.go/process.go Windows
// syscall sequence (OpenProcess/VirtualQueryEx/Read|WriteProcessMemory,
// Toolhelp32Snapshot) from a single pattern-scan routine into a full
// region-enumeration adapter.
type windowsAdapter struct{}

// NewAdapter returns the platform adapter for the current OS.
func NewAdapter() Adapter {
	return windowsAdapter{}
}

func (windowsAdapter) List() ([]uint32, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: create process snapshot: %v", ErrIO, err)
	}
	defer windows.CloseHandle(snapshot)

	var pe32 windows.ProcessEntry32
	pe32.Size = uint32(unsafe.Sizeof(pe32))

	if err := windows.Process32First(snapshot, &pe32); err != nil {
		return nil, fmt.Errorf("%w: enumerate processes: %v", ErrIO, err)
	}

	var ids []uint32
	for {
		ids = append(ids, pe32.ProcessID)

		if err := windows.Process32Next(snapshot, &pe32); err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				break
			}
			return nil, fmt.Errorf("%w: enumerate processes: %v", ErrIO, err)
		}
	}

	return ids, nil
}

func (windowsAdapter) Open(pid uint32, read, write bool) (Handle, error) {
	var access uint32 = windows.PROCESS_QUERY_INFORMATION

	if read {
		access |= windows.PROCESS_VM_READ
	}
	if write {
		access |= windows.PROCESS_VM_WRITE | windows.PROCESS_VM_OPERATION
	}

	h, err := windows.OpenProcess(access, false, pid)
	if err != nil {
		if err == windows.ERROR_ACCESS_DENIED {
			return nil, fmt.Errorf("%w: process %d", ErrPermission, pid)
		}
		return nil, fmt.Errorf("%w: open process %d: %v", ErrIO, pid, err)
	}

	return &windowsHandle{pid: pid, handle: h, read: read, write: write}, nil
}

type windowsHandle struct {
	pid         uint32
	handle      windows.Handle
	read, write bool
}

// permission bit groups, lifted from
// fraud-motor-core/src/sys/windows/process.rs's Permissions constants;
// every execute protection, plain PAGE_EXECUTE included, counts as readable.
const (
	pageExecWrite = windows.PAGE_EXECUTE_READWRITE | windows.PAGE_EXECUTE_WRITECOPY
	pageExecRead  = windows.PAGE_EXECUTE_READ | pageExecWrite
	pageExec      = windows.PAGE_EXECUTE | pageExecRead
	pageWrite     = windows.PAGE_READWRITE | windows.PAGE_WRITECOPY | pageExecWrite
	pageRead      = windows.PAGE_READONLY | pageWrite | pageExec
)

func (h *windowsHandle) Regions() ([]RegionResult, error) {
	var results []RegionResult
	var addr uintptr

	for {
		var mbi windows.MemoryBasicInformation

		err := windows.VirtualQueryEx(h.handle, addr, &mbi, unsafe.Sizeof(mbi))
		if err != nil {
			if err == windows.ERROR_INVALID_PARAMETER {
				break
			}
			return nil, fmt.Errorf("%w: VirtualQueryEx: %v", ErrIO, err)
		}

		base := uint64(mbi.BaseAddress)
		size := uint64(mbi.RegionSize)

		if mbi.State == windows.MEM_COMMIT {
			results = append(results, RegionResult{Region: h.regionFromInfo(&mbi, base, size)})
		}

		next := base + size
		if next <= base {
			break
		}
		addr = uintptr(next)
	}

	return results, nil
}

func (h *windowsHandle) regionFromInfo(mbi *windows.MemoryBasicInformation, base, size uint64) Region {
	region := Region{
		Start: Address(base),
		End:   Address(base + size),
		Read:  mbi.Protect&pageRead != 0,
		Write: mbi.Protect&pageWrite != 0,
		Exec:  mbi.Protect&pageExec != 0,
	}

	if mbi.Type == windows.MEM_IMAGE || mbi.Type == windows.MEM_MAPPED {
		if path, err := getMappedFileName(h.handle, mbi.BaseAddress); err == nil {
			region.Path = path
		}
	}

	return region
}

// psapi holds the two image-path queries the teacher's process.go never
// needed (it only ever reads its own pattern match, not a path) but that
// spec.md's adapter contract requires: K32GetMappedFileNameW to label
// image/file-mapped regions, and K32GetProcessImageFileNameW for a handle's
// own executable. Resolved lazily via the documented kernel32 forwarders,
// the same LazyDLL mechanism golang.org/x/sys/windows itself is built on.
var (
	modkernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procGetMappedFileNameW       = modkernel32.NewProc("K32GetMappedFileNameW")
	procGetProcessImageFileNameW = modkernel32.NewProc("K32GetProcessImageFileNameW")
)

func getMappedFileName(handle windows.Handle, base uintptr) (string, error) {
	buf := make([]uint16, windows.MAX_PATH)

	r, _, err := procGetMappedFileNameW.Call(
		uintptr(handle),
		base,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if r == 0 {
		return "", err
	}

	return windows.UTF16ToString(buf[:r]), nil
}

func getProcessImageFileName(handle windows.Handle) (string, error) {
	buf := make([]uint16, windows.MAX_PATH)

	r, _, err := procGetProcessImageFileNameW.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if r == 0 {
		return "", err
	}

	return windows.UTF16ToString(buf[:r]), nil
}

func (h *windowsHandle) Read(buf []byte, addr Address) error {
	if !h.read {
		return fmt.Errorf("%w: read not permitted", ErrPermission)
	}

	var n uintptr
	err := windows.ReadProcessMemory(h.handle, uintptr(addr), &buf[0], uintptr(len(buf)), &n)
	if err != nil || n != uintptr(len(buf)) {
		return fmt.Errorf("%w: short read at %s: %v", ErrIO, addr, err)
	}

	return nil
}

func (h *windowsHandle) Write(buf []byte, addr Address) error {
	if !h.write {
		return fmt.Errorf("%w: write not permitted", ErrPermission)
	}

	var n uintptr
	err := windows.WriteProcessMemory(h.handle, uintptr(addr), &buf[0], uintptr(len(buf)), &n)
	if err != nil || n != uintptr(len(buf)) {
		return fmt.Errorf("%w: short write at %s: %v", ErrIO, addr, err)
	}

	return nil
}

func (h *windowsHandle) Path() (string, error) {
	path, err := getProcessImageFileName(h.handle)
	if err != nil {
		return "", fmt.Errorf("%w: GetProcessImageFileName: %v", ErrIO, err)
	}

	return strings.TrimPrefix(path, `\Device\`), nil
}

func (h *windowsHandle) Close() error {
	return windows.CloseHandle(h.handle)
}
