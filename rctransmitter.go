package rctransmitter

import (
	"encoding/binary"
	"errors"
	"strconv"
)

const (
	// NumAxes is the number of joystick axes sent in every payload
	NumAxes = 4

	// PayloadSize is the size of the radio payload: one int16 per axis
	PayloadSize = NumAxes * 2

	// AddressSize is the width of the radio's logical address
	AddressSize = 5
)

// Address is the logical address written to. It must be the same on the receiving end
var Address = [AddressSize]byte{'0', '0', '0', '0', '1'}

// ErrPayloadSize is returned when decoding a payload that is not exactly PayloadSize bytes
var ErrPayloadSize = errors.New("payload must be " + strconv.Itoa(PayloadSize) + " bytes")

// Axis is one entry of the output vector
type Axis int

const (
	AxisYaw Axis = iota
	AxisThrottle
	AxisRoll
	AxisPitch
)

// Axes lists the axes in payload order
var Axes = [NumAxes]Axis{AxisYaw, AxisThrottle, AxisRoll, AxisPitch}

func (a Axis) String() string {
	switch a {
	case AxisYaw:
		return "Yaw"
	case AxisThrottle:
		return "Throttle"
	case AxisRoll:
		return "Roll"
	case AxisPitch:
		return "Pitch"
	default:
		return "Unknown"
	}
}

// Label is the name of the joystick input behind the axis. The left joystick is
// VX0/VY0 (yaw/throttle) and the right joystick is VX1/VY1 (roll/pitch)
func (a Axis) Label() string {
	switch a {
	case AxisYaw:
		return "VX0"
	case AxisThrottle:
		return "VY0"
	case AxisRoll:
		return "VX1"
	case AxisPitch:
		return "VY1"
	default:
		return "?"
	}
}

// Values is the output vector: one mapped value per axis, in Axes order
type Values [NumAxes]int16

// String formats the values the same way they are printed on the console:
// VX0: 90	VY0: 90	VX1: 90	VY1: 90
func (v Values) String() string {
	var s string
	for i, axis := range Axes {
		if i > 0 {
			s += "\t"
		}
		s += axis.Label() + ": " + strconv.Itoa(int(v[axis]))
	}
	return s
}

// Payload encodes the values as the fixed-size radio payload (little-endian int16s)
func (v Values) Payload() [PayloadSize]byte {
	var b [PayloadSize]byte
	for i, value := range v {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(value))
	}
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler
func (v Values) MarshalBinary() ([]byte, error) {
	b := v.Payload()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It is what a receiver does with a payload
func (v *Values) UnmarshalBinary(data []byte) error {
	if len(data) != PayloadSize {
		return ErrPayloadSize
	}
	for i := range v {
		v[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return nil
}

// Console command flags understood by the firmware
const (
	CommandVerbose     byte = 'V'
	CommandStatus      byte = 'D'
	CommandResetLosses byte = 'R'
	CommandTelemetry   byte = 'B'
	CommandLogLevel    byte = 'L'
	CommandHelp        byte = 'H'
)

// Prefixes of the diagnostic lines printed on the console
const (
	SensitivityPrefix  = "SENSITIVITY: "
	ChannelPrefix      = "CHANNEL: "
	PacketLostPrefix   = "packet lost!"
	StatusPrefix       = "STATUS "
	TooManyPacketsLost = "too many packets lost"

	// TelemetryOn is the last text line before binary frames start. TelemetryOff is the first line after they stop
	TelemetryOn  = "telemetry: on"
	TelemetryOff = "telemetry: off"
)
