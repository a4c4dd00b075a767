package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/cognet-graph/internal/app/cognet"
)

func TestRootCommand_HasPhaseSubcommands(t *testing.T) {
	root := newRootCommand(&bytes.Buffer{})

	for _, phase := range append(cognet.Phases(), "run", "migrate", "version") {
		cmd, _, err := root.Find([]string{phase})
		require.NoError(t, err, phase)
		assert.Equal(t, phase, cmd.Name())
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "cognet dev")
}

func TestRunCommand_DryRun(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_URL", "postgres://unused@localhost:1/cognet")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("COGNET_CORPUS_PATH", filepath.Join(dir, "corpus.tsv"))
	t.Setenv("COGNET_ENTRIES_PATH", filepath.Join(dir, "cognates.csv"))
	t.Setenv("COGNET_SNAPSHOT_PATH", filepath.Join(dir, "db_cognates.csv"))
	t.Setenv("COGNET_EDGES_PATH", filepath.Join(dir, "edges.csv"))

	corpus := "header\nC001\tspa\tcasa\tita\tcasa\t\t\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "corpus.tsv"), []byte(corpus), 0o644))
	snapshot := "concept_id,language,word,uid\nC001,spa,casa,17\nC001,ita,casa,42\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_cognates.csv"), []byte(snapshot), 0o644))

	var out bytes.Buffer
	root := newRootCommand(&out)
	root.SetArgs([]string{"run", "--dry-run"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "cognet: completed 6 phase(s)")

	edges, err := os.ReadFile(filepath.Join(dir, "edges.csv"))
	require.NoError(t, err)
	assert.Equal(t, "word1_id,word2_id\n17,42\n", string(edges))
}

func TestRunCommand_UnknownPhase(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_URL", "postgres://unused@localhost:1/cognet")
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCommand(&bytes.Buffer{})
	root.SetArgs([]string{"run", "--dry-run", "--phase", "normalize,bogus"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown phase")
}
