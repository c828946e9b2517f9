// Import command: fetch a character and write its patch directly.
package main

import (
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		out     string
		patchID bool
	)
	cmd := &cobra.Command{
		Use:   "import <db-file> <card-id>",
		Short: "Write the SQL patch that recreates a character",
		Long: `Import fetches a character like "patchmaker fetch" and writes the patch
for it without an intermediate state document.

Example:
  patchmaker import game.db 1062320 --out goku.sql`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.fetchCharacter(args[0], args[1])
			if err != nil {
				return err
			}
			sql, err := a.generate(state, patchID)
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, out, []byte(sql))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the patch to FILE instead of stdout")
	cmd.Flags().BoolVar(&patchID, "patch-id", false, "write a UUID v7 patch ID into the header")
	return cmd
}
