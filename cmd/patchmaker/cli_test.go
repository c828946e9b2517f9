package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/patchmaker/internal/statefile"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// run executes the CLI in-process with an isolated config directory and
// returns stdout and the exit code.
func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config-dir", filepath.Join(t.TempDir(), "config")}, args...))
	err := root.Execute()
	if err != nil {
		t.Logf("stderr: %s\nerror: %v", stderr.String(), err)
	}
	return stdout.String(), exitCode(err)
}

// writeState writes a two-form character as a YAML state document.
func writeState(t *testing.T, dir string) string {
	t.Helper()
	s := types.NewPatchState()
	for _, id := range []string{"1062320", "1062321"} {
		f := types.NewCardForm(id)
		f.Name = "Goku"
		f.Element = types.ElementSTR + types.ElementSuperOffset
		f.CardUniqueInfoID = "4016891"
		f.LeaderSkillSetID = "300"
		f.CategoryIDs = []string{"42"}
		require.NoError(t, s.AddCardForm(f))
	}
	s.CardUniqueInfos = []types.CardUniqueInfo{{ID: "4016891", Name: "Goku"}}
	s.LeaderSkillSets = []types.LeaderSkillSet{{
		ID: "300", Name: "Saiyan", Skills: []types.LeaderSkill{types.NewLeaderSkill("301", "300")},
	}}
	path := filepath.Join(dir, "goku.yaml")
	require.NoError(t, statefile.Write(path, s))
	return path
}

// seededDatabase creates a database and applies the patch of writeState.
func seededDatabase(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("builds database files")
	}
	dir := t.TempDir()
	db := filepath.Join(dir, "game.db")
	patch := filepath.Join(dir, "goku.sql")

	_, code := run(t, "init-db", db)
	require.Equal(t, exitSuccess, code)
	_, code = run(t, "generate", writeState(t, dir), "--out", patch)
	require.Equal(t, exitSuccess, code)
	_, code = run(t, "apply", db, patch)
	require.Equal(t, exitSuccess, code)
	return db
}

func TestVersion(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "patchmaker v")
	assert.Contains(t, out, "module: github.com/mesh-intelligence/patchmaker")
}

func TestFirstRunWritesDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config-dir", dir, "new-id"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "timestamp_policy: zero")
}

func TestGenerateWritesPatch(t *testing.T) {
	dir := t.TempDir()
	state := writeState(t, dir)

	out, code := run(t, "generate", state, "--patch-id")
	require.Equal(t, exitSuccess, code)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "-- Dokkan Battle Patch Generated --", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "-- Patch ID: "))
	id, err := uuid.Parse(strings.TrimPrefix(lines[1], "-- Patch ID: "))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Contains(t, out, `INSERT OR REPLACE INTO "main"."cards"`)
	assert.True(t, strings.HasSuffix(out, "-- End of Patch --\n"))
}

func TestSearchFetchImport(t *testing.T) {
	db := seededDatabase(t)

	t.Run("search table", func(t *testing.T) {
		out, code := run(t, "search", db, "Goku", "--element", "3")
		require.Equal(t, exitSuccess, code)
		assert.Contains(t, out, "1062321")
		assert.NotContains(t, out, "1062320")
		assert.Contains(t, out, "Super STR")
	})

	t.Run("search json", func(t *testing.T) {
		out, code := run(t, "search", db, "Goku", "--json", "--kind", "transformed")
		require.Equal(t, exitSuccess, code)
		assert.JSONEq(t, "[]", out)
	})

	t.Run("fetch yaml", func(t *testing.T) {
		out, code := run(t, "fetch", db, "1062321", "--format", "yaml")
		require.Equal(t, exitSuccess, code)
		got, err := statefile.Decode([]byte(out), types.FormatYAML)
		require.NoError(t, err)
		require.Len(t, got.CardForms, 2)
		assert.Equal(t, []string{"42"}, got.CardForms[0].CategoryIDs)
		assert.Len(t, got.LeaderSkillSets, 1)
	})

	t.Run("fetch to file follows extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "goku.json")
		_, code := run(t, "fetch", db, "1062320", "--out", path)
		require.Equal(t, exitSuccess, code)
		got, err := statefile.Read(path)
		require.NoError(t, err)
		assert.Equal(t, "4016891", got.CardUniqueInfos[0].ID)
	})

	t.Run("import", func(t *testing.T) {
		out, code := run(t, "import", db, "1062320")
		require.Equal(t, exitSuccess, code)
		assert.Equal(t, 2, strings.Count(out, `INSERT OR REPLACE INTO "main"."cards"`))
		assert.Equal(t, 1, strings.Count(out, `INSERT OR REPLACE INTO "main"."leader_skill_sets"`))
	})
}

func TestExitCodes(t *testing.T) {
	db := seededDatabase(t)
	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	require.NoError(t, os.WriteFile(corrupt, bytes.Repeat([]byte("junk"), 512), 0o644))
	badPatch := filepath.Join(t.TempDir(), "bad.sql")
	require.NoError(t, os.WriteFile(badPatch, []byte(`INSERT INTO "gashas" ("id") VALUES (1);`), 0o644))

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown card", []string{"fetch", db, "5555550"}, exitUserError},
		{"missing database", []string{"search", filepath.Join(t.TempDir(), "none.db"), "Goku"}, exitUserError},
		{"missing state file", []string{"generate", "nope.json"}, exitUserError},
		{"unsupported state extension", []string{"generate", "state.toml"}, exitUserError},
		{"wrong arg count", []string{"search", db}, exitUserError},
		{"bad kind", []string{"search", db, "Goku", "--kind", "legendary"}, exitUserError},
		{"bad log level", []string{"--log-level", "loud", "new-id"}, exitUserError},
		{"corrupt database", []string{"search", corrupt, "Goku"}, exitSysError},
		{"patch against missing table", []string{"apply", db, badPatch}, exitSysError},
		{"init-db refuses to overwrite", []string{"init-db", db}, exitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code := run(t, tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestApplyFailureLeavesDatabaseUntouched(t *testing.T) {
	db := seededDatabase(t)
	before, err := os.ReadFile(db)
	require.NoError(t, err)

	badPatch := filepath.Join(t.TempDir(), "bad.sql")
	require.NoError(t, os.WriteFile(badPatch, []byte("DELETE FROM cards;\nINSERT INTO nowhere VALUES (1);"), 0o644))
	_, code := run(t, "apply", db, badPatch)
	require.Equal(t, exitSysError, code)

	after, err := os.ReadFile(db)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestNewID(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
		code int
	}{
		{"default", []string{"new-id"}, "1070000\n", exitSuccess},
		{"count", []string{"new-id", "-n", "3"}, "1070000\n1070001\n1070002\n", exitSuccess},
		{"prefix", []string{"new-id", "--prefix", "71"}, "711070000\n", exitSuccess},
		{"unknown prefix", []string{"new-id", "--prefix", "99"}, "", exitUserError},
		{"zero count", []string{"new-id", "--count", "0"}, "", exitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := run(t, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCheckID(t *testing.T) {
	out, code := run(t, "check-id", "1070000", "999", "711070005")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "1070000\tlocal\n999\tgame\n711070005\tlocal\n", out)
}

func TestScaffoldAndRename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")

	out, code := run(t, "scaffold", path, "-n", "2")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "1070000\n1070002\n", out)

	s, err := statefile.Read(path)
	require.NoError(t, err)
	require.Len(t, s.CardForms, 2)
	require.Len(t, s.SpecialSets, 2)
	assert.Equal(t, "741070002", s.CardSpecialsFor("1070002")[0].SpecialSetID)

	_, code = run(t, "rename", path, "1070000", "1070100")
	require.Equal(t, exitSuccess, code)

	s, err = statefile.Read(path)
	require.NoError(t, err)
	f, ok := s.CardForm("1070100")
	require.True(t, ok)
	assert.Equal(t, "701070100", f.CardUniqueInfoID)
	assert.Equal(t, "721070100", f.LeaderSkillSetID)
	assert.Empty(t, s.CardSpecialsFor("1070000"))
	rows := s.CardSpecialsFor("1070100")
	require.Len(t, rows, 1)
	assert.Equal(t, "741070100", rows[0].SpecialSetID)

	out, code = run(t, "scaffold", path)
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "1070000\n", out, "the renamed card freed its old ID")
	s, err = statefile.Read(path)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, cs := range s.CardSpecials {
		assert.False(t, seen[cs.ID], "duplicate card special row %s", cs.ID)
		seen[cs.ID] = true
	}

	tests := []struct {
		name string
		args []string
	}{
		{"unknown card", []string{"rename", path, "42", "43"}},
		{"taken ID", []string{"rename", path, "1070100", "1070002"}},
		{"missing file", []string{"rename", filepath.Join(t.TempDir(), "none.yaml"), "1", "2"}},
		{"zero count", []string{"scaffold", path, "-n", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code := run(t, tt.args...)
			assert.Equal(t, exitUserError, code)
		})
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("PATCHMAKER_LOCAL_ID_START", "2000000")
	out, code := run(t, "new-id")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "2000000\n", out)

	t.Setenv("PATCHMAKER_LOCAL_ID_END", "2000001")
	out, code = run(t, "new-id", "-n", "2")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "2000000\n2000001\n", out)
	_, code = run(t, "new-id", "-n", "3")
	assert.Equal(t, exitUserError, code, "more IDs than the range holds")

	t.Setenv("PATCHMAKER_TIMESTAMP_POLICY", "later")
	_, code = run(t, "new-id")
	assert.Equal(t, exitUserError, code)
}

func TestConfigFromEnvFile(t *testing.T) {
	const key = "PATCHMAKER_LOCAL_ID_END"
	if _, ok := os.LookupEnv(key); ok {
		t.Skipf("%s set in the environment", key)
	}
	t.Cleanup(func() { os.Unsetenv(key) })

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(key+"=5\n"), 0o644))

	_, code := run(t, "--env-file", filepath.Join(t.TempDir(), "missing.env"), "new-id")
	assert.Equal(t, exitUserError, code, "a named env file must exist")

	_, code = run(t, "--env-file", envFile, "new-id")
	assert.Equal(t, exitUserError, code, "end below start is rejected")
}
