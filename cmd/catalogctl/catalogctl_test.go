package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/movie-catalog/internal/core/ports"
	"github.com/reelhouse/movie-catalog/internal/core/service"
)

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs(strings.NewReader("329865\n\n# classics\n27205  # Inception\n  603\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{329865, 27205, 603}, ids)
}

func TestParseIDs_RejectsGarbage(t *testing.T) {
	for _, in := range []string{"12\nabc\n", "-4\n", "0\n"} {
		_, err := parseIDs(strings.NewReader(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestSummarize(t *testing.T) {
	s := summarize([]ports.ImportResult{
		{Outcome: ports.ImportCreated},
		{Outcome: ports.ImportCreated},
		{Outcome: ports.ImportSkipped},
		{Outcome: ports.ImportFailed, Err: errors.New("boom")},
	})
	assert.Equal(t, importSummary{imported: 2, skipped: 1, failed: 1}, s)
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &service.BackReferenceReport{
		MoviesScanned: 3,
		Drift: []service.BackReferenceDrift{
			{Collection: "genres", RecordID: "g1", MovieID: "m2", Kind: service.DriftMissing},
		},
		Repaired: 1,
	}, true)

	out := buf.String()
	assert.Contains(t, out, "missing   genres     g1 movie=m2")
	assert.Contains(t, out, "movies scanned: 3  drift: 1  repaired: 1")
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"import", "check-backrefs"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	importCmd, _, _ := root.Find([]string{"import"})
	assert.NotNil(t, importCmd.Flags().Lookup("rps"))
	assert.NotNil(t, importCmd.Flags().Lookup("workers"))
}

func TestImportCmd_RequiresIDs(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"import"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ids given")
}
