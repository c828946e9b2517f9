// ID commands: allocate and classify local IDs.
package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/patchmaker/internal/localid"
	"github.com/mesh-intelligence/patchmaker/internal/logging"
)

func (a *app) allocator() *localid.Allocator {
	return localid.New(
		localid.WithRange(localid.Range{Start: a.cfg.LocalIDStart, End: a.cfg.LocalIDEnd}),
		localid.WithLogger(logging.Component(a.log, "localid")),
	)
}

func newNewIDCmd(a *app) *cobra.Command {
	var (
		count  int
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "new-id",
		Short: "Allocate local IDs for new rows",
		Long: `New-id prints fresh IDs from the reserved local range, one per line.
A --prefix marks the ID as derived for a particular table:

  70 card unique info    73 active skill set    76 growth type
  71 passive skill set   74 special set
  72 leader skill set    75 growth row

Example:
  patchmaker new-id --count 3
  patchmaker new-id --prefix 71`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return userError("--count must be at least 1")
			}
			if prefix != "" && !slices.Contains(localid.Prefixes, prefix) {
				return userError("unknown prefix %q (want one of %s)", prefix, strings.Join(localid.Prefixes, ", "))
			}
			alloc := a.allocator()
			if r := alloc.Range(); int64(count) > r.End-r.Start+1 {
				return userError("--count %d exceeds the local range %d-%d", count, r.Start, r.End)
			}
			for range count {
				fmt.Fprintln(cmd.OutOrStdout(), alloc.NextPrefixed(prefix))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of IDs to allocate")
	cmd.Flags().StringVar(&prefix, "prefix", "", "derived-ID prefix (70-76)")
	return cmd
}

func newCheckIDCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-id <id>...",
		Short: "Report whether IDs were allocated locally",
		Long: `Check-id reports, for each ID, whether it falls in the local range,
either directly or after a 70-76 prefix.

Example:
  patchmaker check-id 1070000 711070005 999`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alloc := a.allocator()
			for _, id := range args {
				kind := "game"
				if alloc.IsLocal(id) {
					kind = "local"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, kind)
			}
			return nil
		},
	}
}
