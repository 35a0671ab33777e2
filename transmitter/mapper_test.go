package transmitter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calvinmclean/rctransmitter"
)

func TestMapAxis(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name        string
		raw         uint16
		sensitivity uint16
		expected    int16
	}{
		{"FullSensitivityMinRaw", 0, 4095, 180},
		{"FullSensitivityMaxRaw", 4095, 4095, 0},
		{"FullSensitivityCenter", 2048, 4095, 89},
		{"HalfSensitivityMinRaw", 0, 2048, 90},
		{"ZeroSensitivity", 0, 0, 0},
		{"ZeroSensitivityCenter", 2000, 0, 0},
		{"NearMaxRawTruncates", 4094, 4095, 0},
		{"OneStepFromMinTruncates", 1, 4095, 179},
		{"RawAboveMaxIsClamped", 5000, 4095, 0},
		{"SensitivityAboveMaxIsClamped", 0, 65535, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cfg.MapAxis(tt.raw, tt.sensitivity))
		})
	}
}

// TestMapAxisProperty checks trunc((max - r)/max * 180 * s/max) over a grid of readings
func TestMapAxisProperty(t *testing.T) {
	cfg := DefaultConfig()
	const adcMax = DefaultADCMax

	for r := 0; r <= adcMax; r += 13 {
		for s := 0; s <= adcMax; s += 17 {
			expected := int16((adcMax - r) * 180 * s / (adcMax * adcMax))
			got := cfg.MapAxis(uint16(r), uint16(s))
			if got != expected {
				t.Fatalf("MapAxis(%d, %d) = %d, expected %d", r, s, got, expected)
			}
			if s == 0 {
				assert.Zero(t, got)
			}
		}
	}
}

func TestMapAxisMonotonic(t *testing.T) {
	cfg := DefaultConfig()

	previous := cfg.MapAxis(0, DefaultADCMax)
	for r := uint16(1); r <= DefaultADCMax; r++ {
		current := cfg.MapAxis(r, DefaultADCMax)
		if current > previous {
			t.Fatalf("mapping increased from %d to %d at raw=%d", previous, current, r)
		}
		previous = current
	}
}

func TestMapAxisClampsToInt16(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputHigh = 100000
	cfg.OutputLow = -100000

	assert.Equal(t, int16(math.MaxInt16), cfg.MapAxis(0, DefaultADCMax))
	assert.Equal(t, int16(math.MinInt16), cfg.MapAxis(DefaultADCMax, DefaultADCMax))
}

func TestMapValues(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		sample   Sample
		expected rctransmitter.Values
	}{
		{
			"AllMax",
			Sample{Sensitivity: 4095, Axes: [4]uint16{4095, 4095, 4095, 4095}},
			rctransmitter.Values{0, 0, 0, 0},
		},
		{
			"AllMin",
			Sample{Sensitivity: 4095, Axes: [4]uint16{0, 0, 0, 0}},
			rctransmitter.Values{180, 180, 180, 180},
		},
		{
			"Mixed",
			Sample{Sensitivity: 4095, Axes: [4]uint16{0, 4095, 2048, 1024}},
			rctransmitter.Values{180, 0, 89, 134},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cfg.MapValues(tt.sample))
		})
	}
}

func TestSensitivity(t *testing.T) {
	tests := []struct {
		name     string
		s        Sensitivity
		fraction float32
		percent  int
	}{
		{"Zero", Sensitivity{0, 4095}, 0, 0},
		{"Full", Sensitivity{4095, 4095}, 1, 100},
		{"AboveMax", Sensitivity{5000, 4095}, 1, 100},
		{"NoMax", Sensitivity{10, 0}, 0, 0},
		{"Quarter", Sensitivity{1024, 4096}, 0.25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.fraction, tt.s.Fraction(), 0.0001)
			assert.Equal(t, tt.percent, tt.s.Percent())
		})
	}
}
