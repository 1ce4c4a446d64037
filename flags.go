package dimuplot

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatArrayFlags is a flag.Value collecting floats from repeated flags or
// comma-separated lists. The first Set discards any default values.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	for _, s := range strings.Split(valueStr, ",") {
		value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		f.Array = append(f.Array, value)
	}
	return nil
}

func (f *FloatArrayFlags) String() string {
	return fmt.Sprint(f.Array)
}

// Window is a mass range [Low, High) of a zoomed plot.
type Window struct {
	Low, High float64
}

// Windows pairs up the collected values as consecutive (low, high) edges.
func (f *FloatArrayFlags) Windows() ([]Window, error) {
	if len(f.Array)%2 != 0 {
		return nil, fmt.Errorf("odd number of window edges %v", f.Array)
	}

	var windows []Window
	for i := 0; i < len(f.Array); i += 2 {
		w := Window{Low: f.Array[i], High: f.Array[i+1]}
		if w.High <= w.Low {
			return nil, fmt.Errorf("invalid window [%g, %g)", w.Low, w.High)
		}
		windows = append(windows, w)
	}
	return windows, nil
}
