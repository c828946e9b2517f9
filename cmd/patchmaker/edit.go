// Edit commands: scaffold and rename card forms inside a state document.
package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/patchmaker/internal/statefile"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// readState loads the state document at path. With missingOK a missing file
// yields an empty state.
func readState(path string, missingOK bool) (*types.PatchState, error) {
	state, err := statefile.Read(path)
	switch {
	case err == nil:
		return state, nil
	case errors.Is(err, fs.ErrNotExist) && missingOK:
		return types.NewPatchState(), nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, userError("state file %q not found", path)
	default:
		return nil, userError("read state: %w", err)
	}
}

func newScaffoldCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "scaffold <state-file>",
		Short: "Add new card forms with their own skill sets",
		Long: `Scaffold adds card forms to a state document, creating the file if it
does not exist. Each new card gets a local ID, a unique info, empty passive,
leader, active and special sets whose IDs are the card ID behind the 70-74
prefixes, and a 12 ki special row. The new card IDs are printed one per line.

Example:
  patchmaker scaffold custom.yaml
  patchmaker scaffold custom.json -n 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return userError("--count must be at least 1")
			}
			state, err := readState(args[0], true)
			if err != nil {
				return err
			}
			alloc := a.allocator()
			added := make([]string, 0, count)
			for range count {
				added = append(added, state.ScaffoldCardForm(alloc).ID)
			}
			if err := statefile.Write(args[0], state); err != nil {
				return sysError("write state: %w", err)
			}
			a.log.Info("card forms scaffolded", zap.String("path", args[0]), zap.Strings("card_ids", added))
			for _, id := range added {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of card forms to add")
	return cmd
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <state-file> <old-id> <new-id>",
		Short: "Change a card form's ID and move the rows keyed on it",
		Long: `Rename changes the ID of one card form in a state document. Its special
rows always follow it. When the old ID is local, the unique info, skill sets
and growth rows derived from it are re-keyed to the new ID too.

Example:
  patchmaker rename custom.yaml 1070000 1070010`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, oldID, newID := args[0], args[1], args[2]
			state, err := readState(path, false)
			if err != nil {
				return err
			}
			switch err := state.RenameCardForm(oldID, newID, a.allocator()); {
			case errors.Is(err, types.ErrNotFound):
				return userError("card %q not found in %s", oldID, path)
			case errors.Is(err, types.ErrInvalidID):
				return userError("card ID %q is empty or already used", newID)
			case err != nil:
				return sysError("rename: %w", err)
			}
			if err := statefile.Write(path, state); err != nil {
				return sysError("write state: %w", err)
			}
			a.log.Info("card form renamed", zap.String("from", oldID), zap.String("to", newID))
			return nil
		},
	}
}
