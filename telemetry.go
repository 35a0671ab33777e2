package rctransmitter

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/dgryski/go-cobs"
)

const (
	// TelemetrySize is the decoded size of one telemetry record
	TelemetrySize = 21

	// FrameDelimiter terminates every COBS-encoded telemetry frame
	FrameDelimiter byte = 0x00

	telemetryRecordType byte = 0x01
)

var (
	ErrShortFrame = errors.New("telemetry frame too short")
	ErrRecordType = errors.New("unknown telemetry record type")
	ErrEmptyFrame = errors.New("empty telemetry frame")
)

// Telemetry is the per-iteration record streamed to the host in binary mode
type Telemetry struct {
	Sensitivity     uint16
	Channel         uint8
	Delivered       bool
	Values          Values
	TotalLost       uint32
	ConsecutiveLost uint32
}

// MarshalBinary encodes the record little-endian, prefixed with its record type
func (t Telemetry) MarshalBinary() ([]byte, error) {
	b := make([]byte, TelemetrySize)
	b[0] = telemetryRecordType
	binary.LittleEndian.PutUint16(b[1:], t.Sensitivity)
	b[3] = t.Channel
	if t.Delivered {
		b[4] = 1
	}
	payload := t.Values.Payload()
	copy(b[5:], payload[:])
	binary.LittleEndian.PutUint32(b[13:], t.TotalLost)
	binary.LittleEndian.PutUint32(b[17:], t.ConsecutiveLost)
	return b, nil
}

// UnmarshalBinary decodes a record produced by MarshalBinary
func (t *Telemetry) UnmarshalBinary(b []byte) error {
	if len(b) < TelemetrySize {
		return ErrShortFrame
	}
	if b[0] != telemetryRecordType {
		return ErrRecordType
	}

	t.Sensitivity = binary.LittleEndian.Uint16(b[1:])
	t.Channel = b[3]
	t.Delivered = b[4] != 0
	err := t.Values.UnmarshalBinary(b[5 : 5+PayloadSize])
	if err != nil {
		return err
	}
	t.TotalLost = binary.LittleEndian.Uint32(b[13:])
	t.ConsecutiveLost = binary.LittleEndian.Uint32(b[17:])
	return nil
}

// EncodeFrame COBS-encodes the record and appends the frame delimiter
func EncodeFrame(t Telemetry) []byte {
	raw, _ := t.MarshalBinary()
	return append(cobs.Encode(raw), FrameDelimiter)
}

// DecodeFrame decodes one frame as read up to (and optionally including) the delimiter
func DecodeFrame(frame []byte) (Telemetry, error) {
	frame = bytes.TrimRight(frame, string(FrameDelimiter))
	if len(frame) == 0 {
		return Telemetry{}, ErrEmptyFrame
	}

	decoded, err := cobs.Decode(frame)
	if err != nil {
		return Telemetry{}, errors.New("error decoding frame: " + err.Error())
	}

	var t Telemetry
	err = t.UnmarshalBinary(decoded)
	if err != nil {
		return Telemetry{}, err
	}
	return t, nil
}
