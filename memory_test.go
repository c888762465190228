package memscan

import (
	"errors"
	"testing"
)

type fakeAdapter struct {
	pids  []uint32
	paths map[uint32]string
	open  map[uint32]error
}

func (a *fakeAdapter) List() ([]uint32, error) {
	return a.pids, nil
}

func (a *fakeAdapter) Open(pid uint32, read, write bool) (Handle, error) {
	if err, ok := a.open[pid]; ok {
		return nil, err
	}
	return &fakeHandle{contents: map[Address][]byte{}, pathOverride: a.paths[pid]}, nil
}

func TestListByNameMatchesBaseNameCaseInsensitively(t *testing.T) {
	a := &fakeAdapter{
		pids: []uint32{1, 2, 3},
		paths: map[uint32]string{
			1: "/usr/bin/target",
			2: "/usr/bin/other",
			3: "/opt/Target",
		},
	}

	got, err := ListByName(a, "TARGET")
	if err != nil {
		t.Fatalf("ListByName: %v", err)
	}

	want := map[uint32]bool{1: true, 3: true}
	if len(got) != len(want) {
		t.Fatalf("ListByName = %v, want pids %v", got, want)
	}
	for _, pid := range got {
		if !want[pid] {
			t.Errorf("unexpected pid %d in result", pid)
		}
	}
}

func TestListByNameNoMatchReturnsNotFound(t *testing.T) {
	a := &fakeAdapter{pids: []uint32{1}, paths: map[uint32]string{1: "/usr/bin/other"}}

	_, err := ListByName(a, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListByNameSkipsProcessesThatFailToOpen(t *testing.T) {
	a := &fakeAdapter{
		pids:  []uint32{1, 2},
		paths: map[uint32]string{2: "/usr/bin/target"},
		open:  map[uint32]error{1: ErrPermission},
	}

	got, err := ListByName(a, "target")
	if err != nil {
		t.Fatalf("ListByName: %v", err)
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("ListByName = %v, want [2]", got)
	}
}

func TestWritableRegion(t *testing.T) {
	if !WritableRegion(Region{Write: true}) {
		t.Error("WritableRegion should be true for a writable region")
	}
	if WritableRegion(Region{Write: false}) {
		t.Error("WritableRegion should be false for a read-only region")
	}
}
