package dimuplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// defaultLogFloor is the smallest value a LogScale or LogTicks shows when
// the axis range reaches zero, as empty histogram bins make it do.
const defaultLogFloor = 0.1

// LogScale maps values onto a logarithmic axis. Non-positive values, and
// axis minima, are raised to Floor so empty bins do not break the plot.
type LogScale struct {
	Floor float64
}

func (s LogScale) Normalize(min, max, x float64) float64 {
	floor := s.Floor
	if floor <= 0 {
		floor = defaultLogFloor
	}
	min = math.Max(min, floor)
	max = math.Max(max, min)
	x = math.Max(x, min)
	if max == min {
		return 0
	}
	logMin := math.Log10(min)
	return (math.Log10(x) - logMin) / (math.Log10(max) - logMin)
}

// LogTicks labels every power of ten on a logarithmic axis, with unlabelled
// minor ticks at its multiples 2 to 9.
type LogTicks struct {
	Floor float64
}

func (t LogTicks) Ticks(min, max float64) []plot.Tick {
	floor := t.Floor
	if floor <= 0 {
		floor = defaultLogFloor
	}
	min = math.Max(min, floor)
	if max <= min {
		return nil
	}

	var ticks []plot.Tick
	lo := int(math.Floor(math.Log10(min)))
	hi := int(math.Ceil(math.Log10(max)))
	for e := lo; e <= hi; e++ {
		decade := math.Pow10(e)
		for m := 1; m < 10; m++ {
			v := float64(m) * decade
			if v < min*(1-1e-9) || v > max*(1+1e-9) {
				continue
			}
			tick := plot.Tick{Value: v}
			if m == 1 {
				tick.Label = formatDecade(e)
			}
			ticks = append(ticks, tick)
		}
	}
	return ticks
}

func formatDecade(e int) string {
	if e >= -3 && e <= 3 {
		return strconv.FormatFloat(math.Pow10(e), 'g', -1, 64)
	}
	return "10^" + strconv.Itoa(e)
}
