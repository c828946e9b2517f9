// Version command for the patchmaker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/patchmaker/pkg/patchmaker"
)

const modulePath = "github.com/mesh-intelligence/patchmaker"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the patchmaker version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "patchmaker v%s\nmodule: %s\n", patchmaker.Version, modulePath)
			return nil
		},
	}
}
