package main

import (
	"github.com/sirupsen/logrus"
	"github.com/zhuweiyou/memscan"
)

// state is the REPL session's mutable world: one open handle to the target
// process plus every named dump and scan slot the user has created so far.
// Mirrors the original CLI's own State struct (memory/proc/dumps/scans),
// generalized from a single HashMap pair to this module's dump/scan types.
type state struct {
	adapter memscan.Adapter
	handle  memscan.Handle
	pid     uint32

	dumps map[string]*memscan.ProcessSnapshot
	scans map[string]*memscan.ScanGroup

	log *logrus.Logger
}

func newState(adapter memscan.Adapter, handle memscan.Handle, pid uint32, log *logrus.Logger) *state {
	return &state{
		adapter: adapter,
		handle:  handle,
		pid:     pid,
		dumps:   make(map[string]*memscan.ProcessSnapshot),
		scans:   make(map[string]*memscan.ScanGroup),
		log:     log,
	}
}
