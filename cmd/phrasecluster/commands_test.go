package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	docs := map[string][]string{
		"pets": {
			"The black cat chased the small mouse around the garden.",
			"A black cat chased a mouse into the garden shed.",
			"Our black cat chased every mouse in the garden.",
		},
		"markets": {
			"Stock markets fell sharply after the interest rate decision.",
			"Global stock markets fell sharply on rate fears.",
			"Stock markets fell sharply as the interest rate rose.",
		},
	}
	for class, texts := range docs {
		for i, text := range texts {
			writeFile(t, filepath.Join(root, class, string(rune('a'+i))+".txt"), text)
		}
	}
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPhrasesCommand(t *testing.T) {
	out, logs, err := execute(t, "phrases", testCorpus(t), "--top-k", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PHRASE")
	assert.Contains(t, out, "black cat")
	assert.Contains(t, out, "stock market fell")
	assert.Contains(t, logs, "corpus loaded")
}

func TestClusterCommand(t *testing.T) {
	out, _, err := execute(t, "cluster", testCorpus(t), "--log-level", "warn", "--top-k", "5")
	require.NoError(t, err)

	for _, name := range []string{"STC", "STC-5", "GHAC (phrase)", "GHAC (word)", "KNN (phrase)"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "Fmeasure = ")
}

func TestClusterCommandHalfPrecisionCorrelation(t *testing.T) {
	out, _, err := execute(t, "cluster", testCorpus(t),
		"--log-level", "error",
		"--similarity", "correlation",
		"--precision", "float16")
	require.NoError(t, err)
	assert.Contains(t, out, "KNN (phrase)")
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing input", args: []string{"phrases"}},
		{name: "bad log level", args: []string{"phrases", t.TempDir(), "--log-level", "loud"}},
		{name: "bad similarity", args: []string{"cluster", t.TempDir(), "--similarity", "jaccard"}},
		{name: "empty corpus", args: []string{"cluster", t.TempDir()}},
		{name: "missing config", args: []string{"cluster", t.TempDir(), "--config", "/nonexistent/config.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
