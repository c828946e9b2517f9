// Root command for the patchmaker CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/patchmaker/internal/logging"
	"github.com/mesh-intelligence/patchmaker/internal/paths"
	"github.com/mesh-intelligence/patchmaker/pkg/patchmaker"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// cliError carries the exit code for an error returned by a command.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &cliError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &cliError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// classify wraps a library error with the exit code its kind calls for:
// store and query failures are system errors, everything else is the
// user's to fix.
func classify(op string, err error) error {
	if types.IsHardError(err) {
		return sysError("%s: %w", op, err)
	}
	return userError("%s: %w", op, err)
}

// exitCode returns the process exit code for err. Errors raised by cobra
// itself, such as a wrong argument count, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// app holds the state shared by all subcommands of one invocation.
type app struct {
	flagConfigDir string
	flagEnvFile   string
	flagLogLevel  string

	configDir string
	cfg       types.Config
	log       *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: types.DefaultConfig(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "patchmaker",
		Short: "Build SQL patches that add or edit cards in a game database",
		Long: `patchmaker reads cards out of a game database, keeps the editable
state in JSON or YAML documents, and writes that state back as a SQL patch
of INSERT OR REPLACE statements.`,
		Version:           patchmaker.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flagEnvFile, "env-file", "", "dotenv file to load before reading config (default: .env)")
	root.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newGenerateCmd(a),
		newSearchCmd(a),
		newFetchCmd(a),
		newImportCmd(a),
		newNewIDCmd(a),
		newCheckIDCmd(a),
		newScaffoldCmd(a),
		newRenameCmd(a),
		newInitDBCmd(a),
		newApplyCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup resolves the config directory, loads .env and config.yaml, and
// builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	if err := loadEnvFile(a.flagEnvFile); err != nil {
		return userError("load env file: %w", err)
	}

	dir, err := paths.ResolveConfigDir(a.flagConfigDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	a.configDir = dir

	v, err := loadConfig(dir)
	if err != nil {
		return sysError("%w", err)
	}
	if a.flagLogLevel != "" {
		v.Set(cfgKeyLogLevel, a.flagLogLevel)
	}

	cfg, err := decodeConfig(v)
	if err != nil {
		return userError("config: %w", err)
	}
	a.cfg = cfg

	log, err := logging.New(v.GetString(cfgKeyLogLevel), cmd.ErrOrStderr())
	if err != nil {
		return userError("config: %w", err)
	}
	a.log = log
	a.log.Debug("config loaded", append([]zap.Field{zap.String("dir", dir)},
		logging.Fields(v.AllSettings())...)...)
	return nil
}
