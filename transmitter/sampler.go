package transmitter

import "github.com/calvinmclean/rctransmitter"

// Input is one of the analog inputs of the transmitter
type Input int

// The axis inputs have the same values as the matching rctransmitter.Axis
const (
	InputYaw Input = iota
	InputThrottle
	InputRoll
	InputPitch
	InputSensitivity
	InputChannel

	NumInputs = int(InputChannel) + 1
)

func (i Input) String() string {
	switch i {
	case InputYaw, InputThrottle, InputRoll, InputPitch:
		return rctransmitter.Axis(i).String()
	case InputSensitivity:
		return "Sensitivity"
	case InputChannel:
		return "Channel"
	default:
		return "Unknown"
	}
}

// AnalogReader reads raw ADC values. Readings are trusted to be within [0, ADCMax]
type AnalogReader interface {
	ReadAnalog(Input) uint16
}

// Sample is one iteration's raw readings
type Sample struct {
	Sensitivity uint16
	Axes        [rctransmitter.NumAxes]uint16
	Channel     uint16
}

// ReadSample reads every input once: sensitivity first, then the axes in payload order, then channel
func ReadSample(r AnalogReader) Sample {
	s := Sample{
		Sensitivity: r.ReadAnalog(InputSensitivity),
	}
	for _, axis := range rctransmitter.Axes {
		s.Axes[axis] = r.ReadAnalog(Input(axis))
	}
	s.Channel = r.ReadAnalog(InputChannel)
	return s
}
