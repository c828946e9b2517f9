// Shared helpers for patchmaker CLI commands.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/patchmaker/internal/statefile"
	"github.com/mesh-intelligence/patchmaker/pkg/patchmaker"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// openDatabase reads the database file at path into a private copy.
func (a *app) openDatabase(path string) (*patchmaker.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, userError("database %q not found", path)
		}
		return nil, sysError("read database: %w", err)
	}
	db, err := patchmaker.LoadDatabase(data, patchmaker.WithLogger(a.log))
	if err != nil {
		return nil, classify("open database", err)
	}
	return db, nil
}

// fetchCharacter loads the merged state of the character cardID belongs to.
func (a *app) fetchCharacter(dbPath, cardID string) (*types.PatchState, error) {
	db, err := a.openDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	state, err := db.GetCharacterDetails(cardID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, userError("card %q not found", cardID)
		}
		return nil, classify("fetch character", err)
	}
	a.log.Info("character fetched", zap.String("card_id", cardID), zap.Int("forms", len(state.CardForms)))
	return state, nil
}

// generate renders state with the configured timestamp policy. When
// withPatchID is set a fresh UUID v7 is written into the header.
func (a *app) generate(state *types.PatchState, withPatchID bool) (string, error) {
	opts := []patchmaker.Option{
		patchmaker.WithLogger(a.log),
		patchmaker.WithTimestampPolicy(a.cfg.TimestampPolicy),
	}
	if withPatchID {
		id, err := uuid.NewV7()
		if err != nil {
			return "", sysError("patch ID: %w", err)
		}
		opts = append(opts, patchmaker.WithPatchID(id.String()))
	}
	return patchmaker.GenerateSQLPatch(state, opts...), nil
}

// writeOutput writes data to path atomically, or to stdout when path is
// empty or "-".
func (a *app) writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return sysError("write output: %w", err)
		}
		return nil
	}
	if err := statefile.WriteAtomic(path, data); err != nil {
		return sysError("write %s: %w", path, err)
	}
	a.log.Info("output written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
