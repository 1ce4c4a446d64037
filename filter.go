package dimuplot

import (
	"fmt"
	"io"
)

// Filter is a named event selection.
type Filter struct {
	Name string
	Pass func(ev *Event) bool
}

// MinMuons selects events with at least n muons.
func MinMuons(n uint32) Filter {
	name := fmt.Sprintf("Events with %d or more muons", n)
	if n == 2 {
		name = "Events with two or more muons"
	}
	return Filter{
		Name: name,
		Pass: func(ev *Event) bool { return ev.NMuon >= n },
	}
}

// Cut counts the events entering and passing one filter stage.
type Cut struct {
	Name string
	All  int64
	Pass int64
}

// CutFlow is an ordered chain of filters with their counters. An event is
// only presented to a stage if it passed every previous one.
type CutFlow struct {
	filters []Filter
	Cuts    []Cut
}

func NewCutFlow(filters ...Filter) *CutFlow {
	cf := &CutFlow{
		filters: filters,
		Cuts:    make([]Cut, len(filters)),
	}
	for i, f := range filters {
		cf.Cuts[i].Name = f.Name
	}
	return cf
}

// Apply runs ev through the chain and reports whether it passed all stages.
func (cf *CutFlow) Apply(ev *Event) bool {
	for i, f := range cf.filters {
		cf.Cuts[i].All++
		if !f.Pass(ev) {
			return false
		}
		cf.Cuts[i].Pass++
	}
	return true
}

// Add accumulates the counters of o, which must have the same stages.
func (cf *CutFlow) Add(o *CutFlow) {
	if len(o.Cuts) != len(cf.Cuts) {
		panic("dimuplot: cut-flows with different stages")
	}
	for i := range cf.Cuts {
		cf.Cuts[i].All += o.Cuts[i].All
		cf.Cuts[i].Pass += o.Cuts[i].Pass
	}
}

// clone returns a cut-flow with the same filters and zeroed counters.
func (cf *CutFlow) clone() *CutFlow {
	return NewCutFlow(cf.filters...)
}

// Report prints one line per stage with its efficiency and the cumulative
// efficiency relative to the events entering the first stage.
func (cf *CutFlow) Report(w io.Writer) error {
	if len(cf.Cuts) == 0 {
		return nil
	}
	first := cf.Cuts[0].All
	for _, c := range cf.Cuts {
		_, err := fmt.Fprintf(w, "%-30s: pass=%-10d all=%-10d -- eff=%3.2f %% cumulative eff=%3.2f %%\n",
			c.Name, c.Pass, c.All, percent(c.Pass, c.All), percent(c.Pass, first),
		)
		if err != nil {
			return fmt.Errorf("could not write cut-flow report: %w", err)
		}
	}
	return nil
}

func percent(n, d int64) float64 {
	if d == 0 {
		return 0
	}
	return 100 * float64(n) / float64(d)
}
