package dimuplot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Render draws the mass spectrum on log-log axes with the configured
// resonance labels and headers, and writes it to fname. The image format
// follows the file extension.
func Render(fname string, hist *Accumulator, cfg Config) error {
	p := hplot.New()
	p.X.Label.Text = cfg.Plot.XTitle
	p.Y.Label.Text = cfg.Plot.YTitle
	p.X.Scale = LogScale{Floor: cfg.Low}
	p.X.Tick.Marker = LogTicks{Floor: cfg.Low}
	p.Y.Scale = LogScale{Floor: cfg.Plot.YMin}
	p.Y.Tick.Marker = LogTicks{Floor: cfg.Plot.YMin}

	h := hplot.NewH1D(hist.Hist)
	h.FillColor = nil
	h.Infos.Style = hplot.HInfoNone
	p.Add(h)

	ymax := hist.Max()
	if len(cfg.Plot.Labels) > 0 {
		labels, err := newLabels(cfg.Plot.Labels)
		if err != nil {
			return err
		}
		p.Add(labels)
		for _, l := range cfg.Plot.Labels {
			ymax = math.Max(ymax, l.Y)
		}
	}

	p.X.Min = cfg.Low
	p.X.Max = cfg.High
	p.Y.Min = cfg.Plot.YMin
	p.Y.Max = math.Max(2*ymax, 10*cfg.Plot.YMin)

	return save(p, fname, cfg.Plot)
}

// RenderWindow draws the part of the spectrum within win on linear axes.
func RenderWindow(fname string, hist *Accumulator, win Window, cfg Config) error {
	sub, err := hist.Slice(win.Low, win.High)
	if err != nil {
		return err
	}

	p := hplot.New()
	p.X.Label.Text = cfg.Plot.XTitle
	p.Y.Label.Text = cfg.Plot.YTitle
	p.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}

	h := hplot.NewH1D(sub)
	h.FillColor = nil
	h.Infos.Style = hplot.HInfoNone
	p.Add(h)

	p.X.Min = sub.XMin()
	p.X.Max = sub.XMax()
	p.Y.Min = 0

	return save(p, fname, cfg.Plot)
}

// WindowName returns the file name of the zoomed plot of win, next to the
// main output.
func WindowName(output string, win Window) string {
	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	return fmt.Sprintf("%s_%g-%g%s", base, win.Low, win.High, ext)
}

func newLabels(ls []Label) (*plotter.Labels, error) {
	xyl := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(ls)),
		Labels: make([]string, len(ls)),
	}
	for i, l := range ls {
		xyl.XYs[i].X = l.X
		xyl.XYs[i].Y = l.Y
		xyl.Labels[i] = l.Text
	}

	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, fmt.Errorf("could not create plot labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	return labels, nil
}

func save(p *hplot.Plot, fname string, cfg PlotConfig) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(fname)), ".")
	if format == "" {
		return fmt.Errorf("no image format in output file name %q", fname)
	}

	c, err := draw.NewFormattedCanvas(vg.Length(cfg.Width), vg.Length(cfg.Height), format)
	if err != nil {
		return fmt.Errorf("could not create %s canvas: %w", format, err)
	}

	dc := draw.New(c)
	p.Draw(dc)
	drawHeaders(dc, p.Title.TextStyle, cfg.Headers)

	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	defer f.Close()

	if _, err = c.WriteTo(f); err != nil {
		return fmt.Errorf("could not write %q: %w", fname, err)
	}
	return f.Close()
}

// drawHeaders writes labels placed in fractions of the canvas size.
func drawHeaders(dc draw.Canvas, sty text.Style, headers []Label) {
	w := dc.Max.X - dc.Min.X
	h := dc.Max.Y - dc.Min.Y
	for _, l := range headers {
		s := sty
		s.YAlign = text.YBottom
		switch l.Align {
		case "left":
			s.XAlign = text.XLeft
		case "right":
			s.XAlign = text.XRight
		default:
			s.XAlign = text.XCenter
		}
		pt := vg.Point{
			X: dc.Min.X + vg.Length(l.X)*w,
			Y: dc.Min.Y + vg.Length(l.Y)*h,
		}
		dc.FillText(s, pt, l.Text)
	}
}

// Max returns the largest bin content.
func (a *Accumulator) Max() float64 {
	var top float64
	for i := range a.Hist.Binning.Bins {
		top = math.Max(top, a.Count(i))
	}
	return top
}

// Slice returns a histogram of the bins overlapping [low, high), keeping
// the original bin edges.
func (a *Accumulator) Slice(low, high float64) (*hbook.H1D, error) {
	if high <= a.low || low >= a.high || high <= low {
		return nil, fmt.Errorf("window [%g, %g) outside histogram range [%g, %g)", low, high, a.low, a.high)
	}

	var (
		n     = a.Hist.Len()
		width = (a.high - a.low) / float64(n)
		i0    = a.Bin(math.Max(low, a.low))
		i1    = a.Bin(math.Min(high, a.high) - width/2)
	)
	if i1 < i0 {
		i1 = i0
	}

	sub := hbook.NewH1D(i1-i0+1, a.low+float64(i0)*width, a.low+float64(i1+1)*width)
	for i := i0; i <= i1; i++ {
		if w := a.Count(i); w != 0 {
			sub.Fill(a.low+(float64(i)+0.5)*width, w)
		}
	}
	return sub, nil
}
