package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhuweiyou/memscan"
)

func newScanCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Manage named candidate-address scans",
	}

	cmd.AddCommand(newScanNewCmd(st), newScanDropCmd(st), newScanInfoCmd(st), newScanNextCmd(st))
	return cmd
}

func newScanNewCmd(st *state) *cobra.Command {
	var types [10]bool // indexed by TypeTag
	var align uint64

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Start a scan over every writable region, at the given types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			var tags []memscan.TypeTag
			for i, on := range types {
				if on {
					tags = append(tags, memscan.TypeTag(i))
				}
			}
			// No explicit --uN/--iN/--fN flag means "track every type",
			// matching the original's `all` fallback.

			group := memscan.NewScanGroup(tags, align)

			h := st.handle
			results, err := h.Regions()
			if err != nil {
				return fmt.Errorf("scan new %s: %w", name, err)
			}

			for _, rr := range results {
				if rr.Err != nil {
					return fmt.Errorf("scan new %s: %w", name, rr.Err)
				}
				if memscan.WritableRegion(rr.Region) {
					group.Insert(rr.Region.Start, rr.Region.End)
				}
			}

			st.scans[name] = group
			st.log.WithField("scan", name).Infoln("tracking", len(group.Active()), "types")
			return nil
		},
	}

	flags := cmd.Flags()
	for _, tag := range memscan.AllTypeTags {
		flags.BoolVar(&types[tag], tag.String(), false, "track "+tag.String()+" candidates")
	}
	flags.Uint64Var(&align, "align", 0, "candidate address stride (default: each type's width)")

	return cmd
}

func newScanDropCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <name>",
		Short: "Discard a named scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delete(st.scans, args[0])
			return nil
		},
	}
}

func newScanInfoCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "info [name]",
		Short: "List scans, or dump one scan's live addresses and current values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for name, group := range st.scans {
					for _, tag := range group.Active() {
						fmt.Fprintf(out, "%s:%s %d\n", name, tag, group.Set(tag).Len())
					}
				}
				return nil
			}

			name := args[0]
			group, ok := st.scans[name]
			if !ok {
				fmt.Fprintf(out, "%s: scan not found\n", name)
				return nil
			}

			buf := make([]byte, 8)
			for _, tag := range group.Active() {
				for addr := range group.Set(tag).All() {
					fmt.Fprintf(out, "%s:%s", tag, addr)

					if err := st.handle.Read(buf[:tag.Width()], addr); err == nil {
						fmt.Fprintf(out, " %s\n", memscan.FormatValue(tag, buf[:tag.Width()]))
					} else {
						fmt.Fprintln(out)
					}
				}
			}

			return nil
		},
	}
}

func newScanNextCmd(st *state) *cobra.Command {
	var filters memscan.Filters

	cmd := &cobra.Command{
		Use:   "next <name> [dump]",
		Short: "Narrow a scan's candidates against current or dumped memory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			group, ok := st.scans[name]
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: scan not found\n", name)
				return nil
			}

			var view *memscan.View

			if len(args) == 2 {
				dumpName := args[1]
				dump, ok := st.dumps[dumpName]
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: dump not found\n", dumpName)
					return nil
				}
				view = dump.View()
			} else {
				snap, err := memscan.NewProcessSnapshot(st.handle, memscan.WritableRegion)
				if err != nil {
					return fmt.Errorf("scan next %s: %w", name, err)
				}
				view = snap.View()
			}

			memscan.ApplyFilters(group, view, filters)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&filters.Eq, "eq", nil, "retain candidates equal to this literal")
	flags.StringArrayVar(&filters.Ne, "ne", nil, "retain candidates not equal to this literal")
	flags.StringArrayVar(&filters.Gt, "gt", nil, "retain candidates greater than this literal")
	flags.StringArrayVar(&filters.Ge, "ge", nil, "retain candidates greater than or equal to this literal")
	flags.StringArrayVar(&filters.Lt, "lt", nil, "retain candidates less than this literal")
	flags.StringArrayVar(&filters.Le, "le", nil, "retain candidates less than or equal to this literal")

	return cmd
}
