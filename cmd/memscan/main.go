// Command memscan is an interactive REPL for searching and editing a
// target process's memory: snapshot regions into named dumps, narrow named
// scans against dumped or live memory with typed comparison filters, and
// write values back. Run "memscan <pid>" to attach.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/zhuweiyou/memscan"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <pid>\n", os.Args[0])
		return 1
	}

	pid64, err := strconv.ParseUint(os.Args[1], 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: invalid pid %q: %v\n", os.Args[0], os.Args[1], err)
		return 1
	}
	pid := uint32(pid64)

	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)

	adapter := memscan.NewAdapter()
	handle, err := adapter.Open(pid, true, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: open process %d: %v\n", os.Args[0], pid, err)
		return 1
	}
	defer handle.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Infoln("received", sig, "exiting")
		os.Exit(0)
	}()

	st := newState(adapter, handle, pid, log)

	if err := runRepl(st); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		return 1
	}

	return 0
}
