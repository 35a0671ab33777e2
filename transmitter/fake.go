package transmitter

import "errors"

// ErrNoAck is returned by FakeRadio for dropped packets
var ErrNoAck = errors.New("no acknowledgement received")

// FakeReader returns fixed readings that can be changed between iterations
type FakeReader struct {
	Readings [NumInputs]uint16
}

var _ AnalogReader = &FakeReader{}

// ReadAnalog implements AnalogReader.
func (f *FakeReader) ReadAnalog(in Input) uint16 {
	return f.Readings[in]
}

// SetAxes sets all four axis readings to the same value
func (f *FakeReader) SetAxes(v uint16) {
	f.Readings[InputYaw] = v
	f.Readings[InputThrottle] = v
	f.Readings[InputRoll] = v
	f.Readings[InputPitch] = v
}

// FakeRadio records everything written to it. Drop decides if the n-th write (starting at 0) is lost
type FakeRadio struct {
	Payloads [][]byte
	Channels []uint8
	Drop     func(n int) bool

	// SetChannelErr is returned by SetChannel when set
	SetChannelErr error

	writes int
}

var _ Radio = &FakeRadio{}

// Write implements Radio.
func (f *FakeRadio) Write(payload []byte) error {
	n := f.writes
	f.writes++

	if f.Drop != nil && f.Drop(n) {
		return ErrNoAck
	}
	f.Payloads = append(f.Payloads, append([]byte(nil), payload...))
	return nil
}

// SetChannel implements Radio.
func (f *FakeRadio) SetChannel(channel uint8) error {
	if f.SetChannelErr != nil {
		return f.SetChannelErr
	}
	f.Channels = append(f.Channels, channel)
	return nil
}

// Writes returns the number of write attempts, including dropped ones
func (f *FakeRadio) Writes() int {
	return f.writes
}

// DropAll loses every packet
func DropAll(int) bool {
	return true
}

// DropEvery loses every n-th packet
func DropEvery(n int) func(int) bool {
	return func(i int) bool {
		return n > 0 && (i+1)%n == 0
	}
}

// DropRange loses packets with index in [from, to)
func DropRange(from, to int) func(int) bool {
	return func(i int) bool {
		return i >= from && i < to
	}
}
