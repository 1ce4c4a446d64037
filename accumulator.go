package dimuplot

import (
	"math"

	"go-hep.org/x/hep/hbook"
)

// Tally counts fills by where they landed relative to the histogram range.
type Tally struct {
	Underflow int64
	InRange   int64
	Overflow  int64
}

// Total returns the number of fills.
func (t Tally) Total() int64 {
	return t.Underflow + t.InRange + t.Overflow
}

func (t *Tally) add(o Tally) {
	t.Underflow += o.Underflow
	t.InRange += o.InRange
	t.Overflow += o.Overflow
}

// Accumulator fills a fixed-binning mass histogram. It is not safe for
// concurrent use: each worker owns one and the results are merged after
// the workers are done.
type Accumulator struct {
	Hist  *hbook.H1D
	Tally Tally

	low, high float64
}

func NewAccumulator(bins int, low, high float64) *Accumulator {
	return &Accumulator{
		Hist: hbook.NewH1D(bins, low, high),
		low:  low,
		high: high,
	}
}

// Fill adds one entry at x. Values outside [low, high) land in the
// underflow or overflow, NaN in the overflow as hbook does.
func (a *Accumulator) Fill(x float64) {
	switch {
	case x < a.low:
		a.Tally.Underflow++
	case x >= a.high || math.IsNaN(x):
		a.Tally.Overflow++
	default:
		a.Tally.InRange++
	}
	a.Hist.Fill(x, 1)
}

// Merge adds the contents of o, which must share the binning of a.
func (a *Accumulator) Merge(o *Accumulator) {
	a.Hist = hbook.AddH1D(a.Hist, o.Hist)
	a.Tally.add(o.Tally)
}

// Bin returns the index of the bin holding x, or -1 if x is out of range.
func (a *Accumulator) Bin(x float64) int {
	if !(x >= a.low && x < a.high) {
		return -1
	}
	i := hbook.Bin1Ds(a.Hist.Binning.Bins).IndexOf(x)
	if i < 0 || i >= len(a.Hist.Binning.Bins) {
		return -1
	}
	return i
}

// Count returns the content of bin i.
func (a *Accumulator) Count(i int) float64 {
	return a.Hist.Binning.Bins[i].SumW()
}
