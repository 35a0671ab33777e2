package device

import (
	"bytes"
	"io"
	"testing"

	"github.com/calvinmclean/rctransmitter"
	"github.com/calvinmclean/rctransmitter/transmitter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInput struct {
	bytes.Buffer
}

func (f *fakeInput) Buffered() int {
	return f.Len()
}

func newTestTransmitter(t *testing.T) (*Transmitter, *transmitter.Session, *bytes.Buffer) {
	t.Helper()

	reader := &transmitter.FakeReader{}
	reader.SetAxes(0)
	reader.Readings[transmitter.InputSensitivity] = transmitter.DefaultADCMax

	session, err := transmitter.NewSession(transmitter.DefaultConfig(), reader, &transmitter.FakeRadio{Drop: transmitter.DropEvery(2)}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, session.Begin())

	var out bytes.Buffer
	console := NewConsole(&out, LevelInfo)
	return NewTransmitter(session, console, &fakeInput{}), session, &out
}

func TestTransmitterStatus(t *testing.T) {
	tx, session, out := newTestTransmitter(t)

	_, err := session.Step()
	require.NoError(t, err)

	tx.Status()
	assert.Equal(t, session.Status()+"\r\n", out.String())
}

func TestTransmitterResetLosses(t *testing.T) {
	tx, session, out := newTestTransmitter(t)

	for range 2 {
		_, err := session.Step()
		require.NoError(t, err)
	}
	assert.Equal(t, uint32(1), session.Losses().Total)

	tx.ResetLosses()
	assert.Equal(t, transmitter.LossCounters{}, session.Losses())
	assert.Equal(t, "packet loss counters reset\r\n", out.String())
}

func TestTransmitterToggleVerbose(t *testing.T) {
	tx, _, out := newTestTransmitter(t)

	tx.ToggleVerbose()
	assert.Equal(t, LevelDebug, tx.console.Level())

	tx.ToggleVerbose()
	assert.Equal(t, LevelInfo, tx.console.Level())
	assert.Equal(t, "verbose: on\r\nverbose: off\r\n", out.String())
}

func TestTransmitterSetLogLevel(t *testing.T) {
	tx, _, _ := newTestTransmitter(t)

	require.NoError(t, tx.SetLogLevel(uint8(LevelWarn)))
	assert.Equal(t, LevelWarn, tx.console.Level())

	tx.ToggleVerbose()
	tx.ToggleVerbose()
	assert.Equal(t, LevelWarn, tx.console.Level())

	assert.Error(t, tx.SetLogLevel(4))
}

func TestTransmitterTelemetry(t *testing.T) {
	tx, session, out := newTestTransmitter(t)

	report, err := session.Step()
	require.NoError(t, err)

	tx.Emit(report)
	assert.Empty(t, out.String())

	tx.ToggleTelemetry()
	assert.True(t, tx.Telemetry())
	assert.Equal(t, "telemetry: on\r\n", out.String())
	out.Reset()

	tx.Status()
	tx.Emit(report)

	frame := out.Bytes()
	assert.Equal(t, rctransmitter.FrameDelimiter, frame[len(frame)-1])
	decoded, err := rctransmitter.DecodeFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, report.Telemetry(), decoded)

	out.Reset()
	tx.ToggleTelemetry()
	assert.False(t, tx.Telemetry())
	assert.Equal(t, "telemetry: off\r\n", out.String())
}

func TestTransmitterReadByte(t *testing.T) {
	tx, _, _ := newTestTransmitter(t)
	tx.input.(*fakeInput).WriteString("D")

	assert.Equal(t, 1, tx.Buffered())
	b, err := tx.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('D'), b)

	_, err = tx.ReadByte()
	assert.ErrorIs(t, err, io.EOF)
}
