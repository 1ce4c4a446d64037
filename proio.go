package dimuplot

import (
	"fmt"
	"math"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"
)

const muonPDG = 13

// OpenProio loads the muons of every event in a proio stream into memory.
// Particles carrying tag with |PDG| = 13 are taken as muons.
func OpenProio(fname, tag string) (Table, error) {
	reader, err := proio.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open proio file %q: %w", fname, err)
	}
	defer reader.Close()

	var table Table
	for event := range reader.ScanEvents() {
		var ev Event
		for _, id := range event.TaggedEntries(tag) {
			part, ok := event.GetEntry(id).(*eic.Particle)
			if !ok || part.GetP() == nil {
				continue
			}
			if part.GetPdg() != muonPDG && part.GetPdg() != -muonPDG {
				continue
			}

			px := float64(part.GetP().GetX())
			py := float64(part.GetP().GetY())
			pz := float64(part.GetP().GetZ())
			appendMuon(&ev, px, py, pz, float64(part.GetMass()), int32(math.Round(float64(part.GetCharge()))))
		}
		table = append(table, ev)
	}

	return table, nil
}

// appendMuon adds a muon given by its three-momentum to ev. Muons without
// transverse momentum have no finite pseudorapidity and are skipped.
func appendMuon(ev *Event, px, py, pz, mass float64, charge int32) {
	pT := math.Hypot(px, py)
	if pT == 0 {
		return
	}
	eta := math.Asinh(pz / pT)
	if math.IsInf(eta, 0) || math.IsNaN(eta) {
		return
	}

	ev.NMuon++
	ev.Pt = append(ev.Pt, float32(pT))
	ev.Eta = append(ev.Eta, float32(eta))
	ev.Phi = append(ev.Phi, float32(math.Atan2(py, px)))
	ev.Mass = append(ev.Mass, float32(mass))
	ev.Charge = append(ev.Charge, charge)
}
