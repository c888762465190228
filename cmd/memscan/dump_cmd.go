package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhuweiyou/memscan"
)

func newDumpCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Manage named process memory snapshots",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "new <name>",
			Short: "Snapshot every writable region into a named dump",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := args[0]

				snap, err := memscan.NewProcessSnapshot(st.handle, memscan.WritableRegion)
				if err != nil {
					return fmt.Errorf("dump new %s: %w", name, err)
				}

				st.dumps[name] = snap
				st.log.WithField("dump", name).Infoln("captured", len(snap.Entries()), "regions")
				return nil
			},
		},
		&cobra.Command{
			Use:   "drop <name>",
			Short: "Discard a named dump",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				delete(st.dumps, args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "info [name]",
			Short: "List dumps, or describe one dump's regions",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) == 0 {
					for name := range st.dumps {
						fmt.Fprintln(cmd.OutOrStdout(), name)
					}
					return nil
				}

				name := args[0]
				dump, ok := st.dumps[name]
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: dump not found\n", name)
					return nil
				}

				for _, e := range dump.Entries() {
					status := "ok "
					if e.Err != nil {
						status = "err"
					}

					line := fmt.Sprintf("%s %016x-%016x %s", status, uint64(e.Region.Start), uint64(e.Region.End), e.Region.Perms())
					if e.Region.Path != "" {
						line += " " + e.Region.Path
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}

				return nil
			},
		},
	)

	return cmd
}
