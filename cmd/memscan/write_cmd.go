package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zhuweiyou/memscan"
)

func newWriteCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "write <addr> <type> <value>",
		Short: "Write a typed literal to an address in the target process",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := strconv.ParseUint(args[0], 0, 64)
			if err != nil {
				return fmt.Errorf("%w: address %q", memscan.ErrBadInput, args[0])
			}

			tag, ok := memscan.ParseTypeTag(args[1])
			if !ok {
				return fmt.Errorf("%w: type %q", memscan.ErrBadInput, args[1])
			}

			data, ok := memscan.EncodeValue(tag, args[2])
			if !ok {
				return fmt.Errorf("%w: value %q for type %s", memscan.ErrBadInput, args[2], tag)
			}

			if err := st.handle.Write(data, memscan.Address(addr)); err != nil {
				return fmt.Errorf("write %s %s: %w", args[0], tag, err)
			}

			st.log.WithField("addr", args[0]).Infoln("wrote", tag, args[2])
			return nil
		},
	}
}
