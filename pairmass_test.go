package dimuplot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refMass computes the invariant mass of two muons from their Cartesian
// four-momenta.
func refMass(ev *Event, i, j int) float64 {
	var e, px, py, pz float64
	for _, k := range []int{i, j} {
		pt := float64(ev.Pt[k])
		eta := float64(ev.Eta[k])
		phi := float64(ev.Phi[k])
		m := float64(ev.Mass[k])

		x := pt * math.Cos(phi)
		y := pt * math.Sin(phi)
		z := pt * math.Sinh(eta)
		px += x
		py += y
		pz += z
		e += math.Sqrt(x*x + y*y + z*z + m*m)
	}
	return math.Sqrt(e*e - px*px - py*py - pz*pz)
}

func twoMuons(q1, q2 int32) *Event {
	return &Event{
		NMuon:  2,
		Pt:     []float32{20.0, 25.0},
		Eta:    []float32{0.1, -0.3},
		Phi:    []float32{0.5, 2.0},
		Mass:   []float32{0.105, 0.105},
		Charge: []int32{q1, q2},
	}
}

func TestPairMassesOppositeCharge(t *testing.T) {
	ev := twoMuons(1, -1)

	masses := PairMasses(ev)
	require.Len(t, masses, 1)
	assert.InDelta(t, refMass(ev, 0, 1), masses[0], 1e-9)

	cfg := DefaultConfig()
	assert.GreaterOrEqual(t, masses[0], cfg.Low)
	assert.Less(t, masses[0], cfg.High)

	acc := NewAccumulator(cfg.Bins, cfg.Low, cfg.High)
	acc.Fill(masses[0])
	bin := acc.Bin(masses[0])
	require.NotEqual(t, -1, bin)
	assert.Equal(t, 1.0, acc.Count(bin))
	assert.Equal(t, Tally{InRange: 1}, acc.Tally)

	var sum float64
	for i := 0; i < acc.Hist.Len(); i++ {
		sum += acc.Count(i)
	}
	assert.Equal(t, 1.0, sum)
}

func TestPairMassesSameCharge(t *testing.T) {
	assert.Empty(t, PairMasses(twoMuons(1, 1)))
	assert.Empty(t, PairMasses(twoMuons(-1, -1)))

	ev := &Event{
		NMuon:  3,
		Pt:     []float32{10, 20, 30},
		Eta:    []float32{0, 1, -1},
		Phi:    []float32{0, 1, 2},
		Mass:   []float32{0.105, 0.105, 0.105},
		Charge: []int32{-1, -1, -1},
	}
	assert.Empty(t, PairMasses(ev))
}

func TestPairMassesTooFewMuons(t *testing.T) {
	assert.Empty(t, PairMasses(&Event{}))
	assert.Empty(t, PairMasses(&Event{
		NMuon: 1, Pt: []float32{10}, Eta: []float32{0}, Phi: []float32{0},
		Mass: []float32{0.105}, Charge: []int32{1},
	}))
}

func TestPairMassesOrder(t *testing.T) {
	ev := &Event{
		NMuon:  4,
		Pt:     []float32{45, 38, 12, 7},
		Eta:    []float32{0.2, -1.1, 2.0, 0.5},
		Phi:    []float32{0.1, 3.0, -2.0, 1.0},
		Mass:   []float32{0.105, 0.105, 0.105, 0.105},
		Charge: []int32{1, -1, 1, -1},
	}

	var want []float64
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if ev.Charge[i] != ev.Charge[j] {
				want = append(want, refMass(ev, i, j))
			}
		}
	}

	got := PairMasses(ev)
	require.Len(t, got, len(want))
	assert.LessOrEqual(t, len(got), 4*3/2)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "pair %d", i)
	}
}

func TestPairMassesAllOpposite(t *testing.T) {
	// alternating charges: only pairs of opposite parity contribute.
	for n := 2; n <= 6; n++ {
		ev := &Event{NMuon: uint32(n)}
		for i := 0; i < n; i++ {
			ev.Pt = append(ev.Pt, float32(10+i))
			ev.Eta = append(ev.Eta, float32(i)*0.3-0.8)
			ev.Phi = append(ev.Phi, float32(i)*0.9-2.5)
			ev.Mass = append(ev.Mass, 0.105)
			ev.Charge = append(ev.Charge, int32(1-2*(i%2)))
		}
		got := PairMasses(ev)
		assert.Equal(t, (n/2)*((n+1)/2), len(got), "n=%d", n)
		assert.LessOrEqual(t, len(got), n*(n-1)/2, "n=%d", n)
	}
}

func TestPairMassesPermutation(t *testing.T) {
	ev := &Event{
		NMuon:  3,
		Pt:     []float32{30, 22, 15},
		Eta:    []float32{0.4, -0.7, 1.5},
		Phi:    []float32{1.0, -2.2, 0.3},
		Mass:   []float32{0.105, 0.105, 0.105},
		Charge: []int32{1, -1, -1},
	}
	perm := []int{2, 0, 1}
	pev := &Event{NMuon: 3}
	for _, k := range perm {
		pev.Pt = append(pev.Pt, ev.Pt[k])
		pev.Eta = append(pev.Eta, ev.Eta[k])
		pev.Phi = append(pev.Phi, ev.Phi[k])
		pev.Mass = append(pev.Mass, ev.Mass[k])
		pev.Charge = append(pev.Charge, ev.Charge[k])
	}

	assert.ElementsMatch(t, roundAll(PairMasses(ev)), roundAll(PairMasses(pev)))
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if pev.Charge[i] == pev.Charge[j] {
				continue
			}
			assert.InDelta(t, refMass(ev, perm[i], perm[j]), refMass(pev, i, j), 1e-9)
		}
	}
}

func roundAll(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = math.Round(v*1e6) / 1e6
	}
	return out
}

func TestPairMassesDoesNotMutate(t *testing.T) {
	ev := twoMuons(1, -1)
	orig := ev.Clone()
	_ = PairMasses(ev)
	assert.Equal(t, orig, *ev)
}

func TestPairMassesLowMass(t *testing.T) {
	// nearly collinear light pair.
	ev := &Event{
		NMuon:  2,
		Pt:     []float32{150, 120},
		Eta:    []float32{1.2, 1.2001},
		Phi:    []float32{0.3, 0.3001},
		Mass:   []float32{0.105, 0.105},
		Charge: []int32{-1, 1},
	}
	got := PairMasses(ev)
	require.Len(t, got, 1)
	assert.False(t, math.IsNaN(got[0]))
	assert.InDelta(t, refMass(ev, 0, 1), got[0], 1e-3)
}

func TestAppendPairMassesReusesBuffer(t *testing.T) {
	buf := make([]float64, 0, 8)
	buf = AppendPairMasses(buf, twoMuons(1, -1))
	require.Len(t, buf, 1)
	first := buf[0]

	buf = AppendPairMasses(buf[:0], twoMuons(1, 1))
	assert.Empty(t, buf)

	buf = AppendPairMasses(buf, twoMuons(-1, 1))
	require.Len(t, buf, 1)
	assert.InDelta(t, first, buf[0], 1e-12)
}
