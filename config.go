package dimuplot

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Label is a text annotation drawn at (X, Y).
//
// For plot labels X and Y are data coordinates. For header labels they are
// fractions of the canvas width and height, and Align selects which end of
// the text sits at X ("left", "center" or "right").
type Label struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Text  string  `yaml:"text"`
	Align string  `yaml:"align,omitempty"`
}

// PlotConfig describes the rendered spectrum.
type PlotConfig struct {
	// Width and Height of the canvas in points.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	XTitle string  `yaml:"x_title"`
	YTitle string  `yaml:"y_title"`
	YMin   float64 `yaml:"y_min"`

	Labels  []Label `yaml:"labels"`
	Headers []Label `yaml:"headers"`
}

// Config holds everything the analysis needs beyond its input file.
type Config struct {
	// Threads is the number of workers. Zero or less uses one per CPU.
	Threads int `yaml:"threads"`

	Bins int     `yaml:"bins"`
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`

	// Tree is the name of the NanoAOD tree in ROOT inputs.
	Tree string `yaml:"tree"`
	// ProioTag selects the particle collection in proio inputs.
	ProioTag string `yaml:"proio_tag"`

	Output string     `yaml:"output"`
	Plot   PlotConfig `yaml:"plot"`

	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the configuration of the CMS open data dimuon
// spectrum.
func DefaultConfig() Config {
	return Config{
		Bins:     30000,
		Low:      0.25,
		High:     300.0,
		Tree:     "Events",
		ProioTag: "GenStable",
		Output:   "dimuonSpectrumAll1.pdf",
		Plot: PlotConfig{
			Width:  600,
			Height: 525,
			XTitle: "m_μμ (GeV)",
			YTitle: "N_Events",
			YMin:   1,
			Labels: []Label{
				{X: 0.55, Y: 3.0e4, Text: "η"},
				{X: 0.77, Y: 7.0e4, Text: "ρ,ω"},
				{X: 1.20, Y: 4.0e4, Text: "φ"},
				{X: 4.40, Y: 1.0e5, Text: "J/ψ"},
				{X: 4.60, Y: 1.0e4, Text: "ψ'"},
				{X: 12.0, Y: 2.0e4, Text: "Υ(1,2,3S)"},
				{X: 91.0, Y: 1.5e4, Text: "Z"},
			},
			Headers: []Label{
				{X: 0.10, Y: 0.92, Text: "CMS Open Data", Align: "left"},
				{X: 0.90, Y: 0.92, Text: "√s = 8 TeV, L_int = 11.6 fb^-1", Align: "right"},
			},
		},
	}
}

// LoadConfig reads YAML overrides of the default configuration from fname.
func LoadConfig(fname string) (Config, error) {
	f, err := os.Open(fname)
	if err != nil {
		return Config{}, fmt.Errorf("could not open config %q: %w", fname, err)
	}
	defer f.Close()

	cfg, err := ReadConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("could not load config %q: %w", fname, err)
	}
	return cfg, nil
}

// ReadConfig decodes YAML overrides of the default configuration from r.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports binning or plot settings that cannot be used.
func (cfg Config) Validate() error {
	switch {
	case cfg.Bins <= 0:
		return fmt.Errorf("invalid number of bins %d", cfg.Bins)
	case cfg.Low <= 0 || cfg.High <= cfg.Low:
		return fmt.Errorf("invalid histogram range [%g, %g) for a log axis", cfg.Low, cfg.High)
	case cfg.Plot.Width <= 0 || cfg.Plot.Height <= 0:
		return fmt.Errorf("invalid canvas size %gx%g", cfg.Plot.Width, cfg.Plot.Height)
	case cfg.Plot.YMin <= 0:
		return fmt.Errorf("invalid y minimum %g for a log axis", cfg.Plot.YMin)
	}
	for _, l := range cfg.Plot.Headers {
		switch l.Align {
		case "", "left", "center", "right":
		default:
			return fmt.Errorf("invalid alignment %q for header %q", l.Align, l.Text)
		}
	}
	return nil
}

func (cfg Config) logger() *slog.Logger {
	if cfg.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg.Logger
}
