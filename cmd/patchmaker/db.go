// Database file commands: create an empty database and apply patches.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/patchmaker/internal/logging"
	"github.com/mesh-intelligence/patchmaker/internal/schema"
	"github.com/mesh-intelligence/patchmaker/internal/sqlite"
)

func newInitDBCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-db <db-file>",
		Short: "Create an empty database with every known table",
		Long: `Init-db creates a database file holding every table patchmaker knows,
with no rows. It is useful as a scratch target for "patchmaker apply".

Example:
  patchmaker init-db scratch.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return userError("%s already exists (use --force to replace it)", path)
			}

			store, err := sqlite.New(sqlite.WithLogger(logging.Component(a.log, "sqlite")))
			if err != nil {
				return classify("create database", err)
			}
			defer store.Close()

			if err := store.CreateTables(schema.Default()); err != nil {
				return classify("create tables", err)
			}
			if err := store.SaveAs(path); err != nil {
				return classify("save database", err)
			}
			a.log.Info("database created", zap.String("path", path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing file")
	return cmd
}

func newApplyCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "apply <db-file> <patch.sql>",
		Short: "Apply a SQL patch to a database file",
		Long: `Apply runs every statement of the patch in one transaction against a
copy of the database and saves the result. On failure the file is left
untouched.

Example:
  patchmaker apply game.db goku.sql
  patchmaker apply game.db goku.sql --out patched.db`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, patchPath := args[0], args[1]
			if out == "" {
				out = dbPath
			}

			script, err := os.ReadFile(patchPath)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return userError("patch %q not found", patchPath)
				}
				return sysError("read patch: %w", err)
			}
			if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
				return userError("database %q not found", dbPath)
			}

			store, err := sqlite.LoadFile(dbPath, sqlite.WithLogger(logging.Component(a.log, "sqlite")))
			if err != nil {
				return classify("open database", err)
			}
			defer store.Close()

			if err := store.Apply(string(script)); err != nil {
				return classify("apply patch", err)
			}
			if err := store.SaveAs(out); err != nil {
				return classify("save database", err)
			}
			a.log.Info("patch applied", zap.String("patch", patchPath), zap.String("out", out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the patched database to FILE instead of replacing db-file")
	return cmd
}
