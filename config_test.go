package dimuplot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30000, cfg.Bins)
	assert.Equal(t, 0.25, cfg.Low)
	assert.Equal(t, 300.0, cfg.High)
	assert.Equal(t, "Events", cfg.Tree)
	assert.Equal(t, "dimuonSpectrumAll1.pdf", cfg.Output)
	assert.Len(t, cfg.Plot.Labels, 7)
	assert.Equal(t, Label{X: 91.0, Y: 1.5e4, Text: "Z"}, cfg.Plot.Labels[6])
	assert.Len(t, cfg.Plot.Headers, 2)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(strings.NewReader(`
threads: 8
bins: 300
low: 1
output: spectrum.png
plot:
  labels:
    - {x: 3.1, y: 1000, text: "J/ψ"}
  headers:
    - {x: 0.5, y: 0.95, text: "test", align: center}
`))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Threads)
	assert.Equal(t, 300, cfg.Bins)
	assert.Equal(t, 1.0, cfg.Low)
	assert.Equal(t, 300.0, cfg.High)
	assert.Equal(t, "spectrum.png", cfg.Output)
	assert.Equal(t, []Label{{X: 3.1, Y: 1000, Text: "J/ψ"}}, cfg.Plot.Labels)
	assert.Equal(t, "center", cfg.Plot.Headers[0].Align)
	assert.Equal(t, DefaultConfig().Plot.XTitle, cfg.Plot.XTitle)
}

func TestReadConfigEmpty(t *testing.T) {
	cfg, err := ReadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Bins, cfg.Bins)
}

func TestReadConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
	}{
		{"unknown field", "nbins: 10\n"},
		{"bad bins", "bins: -1\n"},
		{"zero low", "low: 0\n"},
		{"inverted range", "low: 10\nhigh: 5\n"},
		{"bad y min", "plot:\n  y_min: 0\n"},
		{"bad align", "plot:\n  headers:\n    - {x: 0, y: 0, text: a, align: top}\n"},
		{"bad yaml", "bins: [\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadConfig(strings.NewReader(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(fname, []byte("tree: Muons\n"), 0o644))

	cfg, err := LoadConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, "Muons", cfg.Tree)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
