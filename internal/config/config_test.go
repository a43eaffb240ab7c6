package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "textbetti.yaml")
	content := `
debug: true
analysis:
  split_mode: sentence
  delta: 0.25
  b1_formula: standard
  workers: 4
normalizer:
  type: snowball
  language: english
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "sentence", cfg.Analysis.SplitMode)
	assert.Equal(t, 0.25, cfg.Analysis.Delta)
	assert.Equal(t, 5, cfg.Analysis.Steps)
	assert.Equal(t, "standard", cfg.Analysis.B1Formula)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, "english", cfg.Normalizer.Language)
	assert.Equal(t, "count", cfg.Embedder.Type)
	assert.Equal(t, "table", cfg.Output.Format)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "paragraph", cfg.Analysis.SplitMode)
	assert.Equal(t, 0.5, cfg.Analysis.Delta)
	assert.Equal(t, "russian", cfg.Normalizer.Language)
	assert.Equal(t, 4_000_000, cfg.Analysis.MaxMatrixCells)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"negative delta": "analysis:\n  delta: -1\n",
		"negative steps": "analysis:\n  steps: -3\n",
		"split mode":     "analysis:\n  split_mode: chapter\n",
		"formula":        "analysis:\n  b1_formula: exotic\n",
		"normalizer":     "normalizer:\n  type: morph\n",
		"embedder":       "embedder:\n  type: openai\n",
		"output format":  "output:\n  format: xml\n",
		"malformed yaml": "analysis: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Analysis.Delta = 0.1
	cfg.Output.Plot = true
	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
