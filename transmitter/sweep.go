package transmitter

// SweepReader simulates the sticks and potentiometers by sweeping every input up and down between 0
// and Max. Each input starts at a different phase so the values differ from each other. Sensitivity
// can be held at a fixed value instead of sweeping
type SweepReader struct {
	Max  uint16
	Step uint16

	// FixedSensitivity holds the sensitivity input at this value when set
	FixedSensitivity *uint16

	positions  [NumInputs]int
	directions [NumInputs]int
}

var _ AnalogReader = &SweepReader{}

// NewSweepReader creates a SweepReader moving each input by step per read
func NewSweepReader(adcMax, step uint16) *SweepReader {
	r := &SweepReader{Max: adcMax, Step: step}
	for i := range r.positions {
		r.positions[i] = i * int(adcMax) / NumInputs
		r.directions[i] = 1
	}
	return r
}

// ReadAnalog implements AnalogReader. Every read advances that input
func (r *SweepReader) ReadAnalog(in Input) uint16 {
	if in == InputSensitivity && r.FixedSensitivity != nil {
		return *r.FixedSensitivity
	}

	current := r.positions[in]

	next := current + r.directions[in]*int(r.Step)
	if next > int(r.Max) {
		next = int(r.Max)
		r.directions[in] = -1
	}
	if next < 0 {
		next = 0
		r.directions[in] = 1
	}
	r.positions[in] = next

	return uint16(current)
}
