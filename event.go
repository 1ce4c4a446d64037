package dimuplot

import (
	"errors"
	"fmt"

	"go-hep.org/x/hep/fmom"
)

var (
	// ErrMalformedEvent is returned when a muon attribute array is shorter
	// than the declared muon count.
	ErrMalformedEvent = errors.New("dimuplot: malformed event")
	// ErrNoEvents is returned when an input source holds no rows.
	ErrNoEvents = errors.New("dimuplot: no events in input")
)

// Event is one row of the muon columns of a NanoAOD tree. Arrays are
// parallel: index i in every array describes muon i.
type Event struct {
	NMuon  uint32
	Pt     []float32
	Eta    []float32
	Phi    []float32
	Mass   []float32
	Charge []int32
}

// Validate checks that every attribute array holds at least NMuon values.
func (ev *Event) Validate() error {
	n := int(ev.NMuon)
	cols := []struct {
		name string
		len  int
	}{
		{"Muon_pt", len(ev.Pt)},
		{"Muon_eta", len(ev.Eta)},
		{"Muon_phi", len(ev.Phi)},
		{"Muon_mass", len(ev.Mass)},
		{"Muon_charge", len(ev.Charge)},
	}
	for _, col := range cols {
		if col.len < n {
			return fmt.Errorf("%w: nMuon=%d but %s has %d entries", ErrMalformedEvent, n, col.name, col.len)
		}
	}
	return nil
}

// Muon returns the four-momentum and charge of muon i.
func (ev *Event) Muon(i int) (fmom.PtEtaPhiM, int32) {
	p4 := fmom.NewPtEtaPhiM(
		float64(ev.Pt[i]),
		float64(ev.Eta[i]),
		float64(ev.Phi[i]),
		float64(ev.Mass[i]),
	)
	return p4, ev.Charge[i]
}

// Clone returns a deep copy of ev, truncated to NMuon muons.
func (ev *Event) Clone() Event {
	n := int(ev.NMuon)
	return Event{
		NMuon:  ev.NMuon,
		Pt:     append([]float32(nil), ev.Pt[:n]...),
		Eta:    append([]float32(nil), ev.Eta[:n]...),
		Phi:    append([]float32(nil), ev.Phi[:n]...),
		Mass:   append([]float32(nil), ev.Mass[:n]...),
		Charge: append([]int32(nil), ev.Charge[:n]...),
	}
}
