package dimuplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places about NSuggestedTicks labelled ticks on a linear axis
// and labels them with no more digits than the tick spacing needs.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks < 2 {
		t.NSuggestedTicks = 4
	}
	if max <= min {
		return nil
	}

	span := max - min
	tens := math.Pow10(int(math.Floor(math.Log10(span))))
	n := span / tens
	for n < float64(t.NSuggestedTicks)-1 {
		tens /= 10
		n = span / tens
	}

	mult := int(n / float64(t.NSuggestedTicks-1))
	switch mult {
	case 0:
		mult = 1
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	major := float64(mult) * tens

	var ticks []plot.Tick
	last := min
	for v := math.Floor(min/major) * major; v <= max; v += major {
		if v < min {
			continue
		}
		last = v
		ticks = append(ticks, plot.Tick{Value: v})
	}
	prec := int(math.Ceil(math.Log10(math.Abs(last)+major)) - math.Floor(math.Log10(major)))
	for i := range ticks {
		v := roundTo(ticks[i].Value, prec)
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)}
	}

	minor := major / 2
	switch mult {
	case 3, 6:
		minor = major / 3
	case 5:
		minor = major / 5
	}
	nmajor := len(ticks)
	for v := math.Floor(min/minor) * minor; v <= max; v += minor {
		if v < min || hasTick(ticks[:nmajor], v, minor) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v})
	}
	return ticks
}

func hasTick(ticks []plot.Tick, v, tol float64) bool {
	for _, t := range ticks {
		if math.Abs(t.Value-v) < tol*1e-6 {
			return true
		}
	}
	return false
}

// roundTo rounds x to prec significant decimal places, half away from zero.
func roundTo(x float64, prec int) float64 {
	if x == 0 {
		// no negative zero
		return 0
	}
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	v := x * pow
	if math.IsInf(v, 0) {
		return x
	}
	v = math.Round(v)
	if v == 0 {
		return 0
	}
	return v / pow
}
