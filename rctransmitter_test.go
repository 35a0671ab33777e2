package rctransmitter

import (
	"testing"

	"github.com/dgryski/go-cobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesPayload(t *testing.T) {
	v := Values{180, 0, -1, 256}

	payload := v.Payload()
	assert.Equal(t, [PayloadSize]byte{0xB4, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0x00, 0x01}, payload)

	var decoded Values
	require.NoError(t, decoded.UnmarshalBinary(payload[:]))
	assert.Equal(t, v, decoded)
}

func TestValuesUnmarshalWrongSize(t *testing.T) {
	var v Values
	err := v.UnmarshalBinary([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrPayloadSize)
}

func TestValuesString(t *testing.T) {
	v := Values{1, 2, 3, -4}
	assert.Equal(t, "VX0: 1\tVY0: 2\tVX1: 3\tVY1: -4", v.String())
}

func TestAxisNames(t *testing.T) {
	tests := []struct {
		axis  Axis
		name  string
		label string
	}{
		{AxisYaw, "Yaw", "VX0"},
		{AxisThrottle, "Throttle", "VY0"},
		{AxisRoll, "Roll", "VX1"},
		{AxisPitch, "Pitch", "VY1"},
		{Axis(9), "Unknown", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.axis.String())
			assert.Equal(t, tt.label, tt.axis.Label())
		})
	}
}

func TestAddress(t *testing.T) {
	assert.Equal(t, "00001", string(Address[:]))
}

func TestTelemetryFrame(t *testing.T) {
	in := Telemetry{
		Sensitivity:     4095,
		Channel:         2,
		Delivered:       false,
		Values:          Values{0, 180, 90, 45},
		TotalLost:       5,
		ConsecutiveLost: 3,
	}

	frame := EncodeFrame(in)
	require.NotEmpty(t, frame)
	assert.Equal(t, FrameDelimiter, frame[len(frame)-1])
	for _, b := range frame[:len(frame)-1] {
		assert.NotEqual(t, FrameDelimiter, b, "encoded frame must not contain the delimiter")
	}

	out, err := DecodeFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeFrameErrors(t *testing.T) {
	tests := []struct {
		name     string
		frame    []byte
		expected error
	}{
		{"Empty", []byte{FrameDelimiter}, ErrEmptyFrame},
		{"Short", encodeRaw([]byte{telemetryRecordType, 1, 2}), ErrShortFrame},
		{"UnknownType", encodeRaw(make([]byte, TelemetrySize)), ErrRecordType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFrame(tt.frame)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func encodeRaw(b []byte) []byte {
	return append(cobs.Encode(b), FrameDelimiter)
}
