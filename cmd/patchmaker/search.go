// Search command: find cards by name or ID prefix.
package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		element  int
		rarity   int
		kind     string
		jsonMode bool
	)
	cmd := &cobra.Command{
		Use:   "search <db-file> <query>",
		Short: "Search cards by name or ID prefix",
		Long: `Search lists up to 50 characters whose card name contains the query or
whose ID starts with it. Both forms of a character collapse into one hit.

A neutral --element (0-4) also matches its Super (+10) and Extreme (+20)
variants.

Example:
  patchmaker search game.db Goku
  patchmaker search game.db Goku --element 2 --rarity 5 --kind base --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := types.SearchFilter{Kind: types.IDKind(kind)}
			switch filter.Kind {
			case types.IDKindAll, types.IDKindBase, types.IDKindTransformed:
			default:
				return userError("invalid --kind %q (want all, base or transformed)", kind)
			}
			if cmd.Flags().Changed("element") {
				filter.Element = &element
			}
			if cmd.Flags().Changed("rarity") {
				filter.Rarity = &rarity
			}

			db, err := a.openDatabase(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			hits, err := db.SearchCharactersByName(args[1], filter)
			if err != nil {
				return classify("search", err)
			}

			if jsonMode {
				data, err := json.MarshalIndent(hits, "", "  ")
				if err != nil {
					return sysError("marshal JSON: %w", err)
				}
				return a.writeOutput(cmd, "", append(data, '\n'))
			}
			printHits(cmd, hits)
			return nil
		},
	}
	cmd.Flags().IntVar(&element, "element", 0, "element filter (neutral 0-4 also matches Super and Extreme)")
	cmd.Flags().IntVar(&rarity, "rarity", 0, "exact rarity filter (3 SSR, 4 UR, 5 LR)")
	cmd.Flags().StringVar(&kind, "kind", string(types.IDKindAll), "ID kind: all, base or transformed")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output in JSON format")
	return cmd
}

// printHits prints search hits as an aligned table.
func printHits(cmd *cobra.Command, hits []types.CardBasicInfo) {
	if len(hits) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cards found")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tRARITY\tELEMENT")
	for _, h := range hits {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", h.ID, h.Name, label(types.RarityName(h.Rarity), h.Rarity), label(types.ElementName(h.Element), h.Element))
	}
	w.Flush()
}

func label(name string, value int) string {
	if name == "" {
		return fmt.Sprint(value)
	}
	return name
}
