package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRunCommand(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "run",
		"--ledger", filepath.Join("..", "..", "testdata", "r2d_ledger.csv"),
		"--bank", filepath.Join("..", "..", "testdata", "chase_statement.csv"),
		"--out", outDir,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Reports written to")
	assert.Contains(t, out, "Debits matched (count)")

	for _, name := range []string{"debit_matches.csv", "per_claim_revenue.csv", "summary.csv"} {
		_, statErr := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, statErr, name)
	}
}

func TestRunCommand_MissingLedgerFlag(t *testing.T) {
	_, err := execute(t, "run", "--bank", "x.csv")
	assert.Error(t, err)
}

func TestRunCommand_BadCutoff(t *testing.T) {
	_, err := execute(t, "run",
		"--ledger", filepath.Join("..", "..", "testdata", "r2d_ledger.csv"),
		"--bank", filepath.Join("..", "..", "testdata", "chase_statement.csv"),
		"--out", t.TempDir(),
		"--ignore-debits-before", "01/01/2025",
	)
	assert.Error(t, err)
}

func TestRunCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "init", dir)
	require.NoError(t, err)

	out, err := execute(t, "run",
		"--ledger", filepath.Join("..", "..", "testdata", "r2d_ledger.csv"),
		"--bank", filepath.Join("..", "..", "testdata", "chase_statement.csv"),
		"--out", filepath.Join(dir, "out"),
		"--config", filepath.Join(dir, "r2drecon.yaml"),
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Reports written to")
}
