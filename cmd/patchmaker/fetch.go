// Fetch command: read a character into a state document.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/patchmaker/internal/statefile"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		out    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "fetch <db-file> <card-id>",
		Short: "Write a character's editable state",
		Long: `Fetch reads both forms of the character that card-id belongs to,
together with every skill set they reference, and writes the merged state as
JSON or YAML. Edit the document and feed it to "patchmaker generate".

Without --format the format follows the --out extension, then the
output_format config key.

Example:
  patchmaker fetch game.db 1062320 --out goku.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.OutputFormat
				if out != "" && out != "-" {
					if f, err := statefile.FormatFor(out); err == nil {
						format = f
					}
				}
			}

			state, err := a.fetchCharacter(args[0], args[1])
			if err != nil {
				return err
			}
			data, err := statefile.Encode(state, format)
			if err != nil {
				return userError("encode state: %w", err)
			}
			return a.writeOutput(cmd, out, data)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the state to FILE instead of stdout")
	cmd.Flags().StringVar(&format, "format", "", "output format: json or yaml")
	return cmd
}
