// Generate command: state document to SQL patch.
package main

import "github.com/spf13/cobra"

func newGenerateCmd(a *app) *cobra.Command {
	var (
		out     string
		patchID bool
	)
	cmd := &cobra.Command{
		Use:   "generate <state-file>",
		Short: "Write the SQL patch for a state document",
		Long: `Generate reads a PatchState document (.json, .yaml or .yml) and writes
the SQL patch for it.

Example:
  patchmaker generate goku.yaml
  patchmaker generate goku.json --out goku.sql --patch-id`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := readState(args[0], false)
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
