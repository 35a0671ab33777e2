package transmitter

import (
	"math"
	"strconv"

	"github.com/calvinmclean/rctransmitter"
)

// Sensitivity is the sensitivity potentiometer reading. It scales every mapped axis uniformly
type Sensitivity struct {
	Raw uint16
	Max uint16
}

// Fraction returns Raw / Max in the range 0..1
func (s Sensitivity) Fraction() float32 {
	if s.Max == 0 {
		return 0
	}
	if s.Raw >= s.Max {
		return 1
	}
	return float32(s.Raw) / float32(s.Max)
}

// Percent returns the truncated sensitivity percentage
func (s Sensitivity) Percent() int {
	if s.Max == 0 {
		return 0
	}
	if s.Raw >= s.Max {
		return 100
	}
	return int(s.Raw) * 100 / int(s.Max)
}

func (s Sensitivity) String() string {
	return strconv.Itoa(s.Percent()) + "%"
}

// MapAxis linearly remaps a raw reading from [0, ADCMax] to [OutputHigh, OutputLow] and scales it by
// sensitivity/ADCMax. The result is truncated toward zero and clamped to the int16 range.
// A sensitivity of 0 maps every reading to 0.
func (c Config) MapAxis(raw, sensitivity uint16) int16 {
	if raw > c.ADCMax {
		raw = c.ADCMax
	}
	if sensitivity > c.ADCMax {
		sensitivity = c.ADCMax
	}

	// ((max-raw)/max * (high-low) + low) * s/max, kept in integers so truncation is exact
	adcMax := int64(c.ADCMax)
	numerator := (int64(c.ADCMax-raw)*int64(c.OutputHigh-c.OutputLow) + int64(c.OutputLow)*adcMax) * int64(sensitivity)
	return clampInt16(numerator / (adcMax * adcMax))
}

// MapValues maps all axes of a Sample into the output vector
func (c Config) MapValues(s Sample) rctransmitter.Values {
	var v rctransmitter.Values
	for _, axis := range rctransmitter.Axes {
		v[axis] = c.MapAxis(s.Axes[axis], s.Sensitivity)
	}
	return v
}

func clampInt16(v int64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
