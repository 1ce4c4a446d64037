package dimuplot

import (
	"go-hep.org/x/hep/fmom"
)

// PairMasses returns the invariant mass of every opposite-charge muon pair
// of ev, ordered by (i, j) with i < j.
func PairMasses(ev *Event) []float64 {
	n := int(ev.NMuon)
	return AppendPairMasses(make([]float64, 0, n*(n-1)/2), ev)
}

// AppendPairMasses appends the opposite-charge pair masses of ev to dst.
// The event must hold at least two muons; otherwise dst is returned as is.
func AppendPairMasses(dst []float64, ev *Event) []float64 {
	if ev.NMuon < 2 {
		return dst
	}

	n := int(ev.NMuon)
	for i := 0; i <= n-2; i++ {
		mi, qi := ev.Muon(i)
		for j := i + 1; j <= n-1; j++ {
			mj, qj := ev.Muon(j)
			if qi == qj {
				continue
			}
			dst = append(dst, fmom.Add(&mi, &mj).M())
		}
	}
	return dst
}
