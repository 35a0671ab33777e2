package device

import (
	"errors"

	"github.com/calvinmclean/rctransmitter"
	"github.com/calvinmclean/rctransmitter/firmware/commands"
	"github.com/calvinmclean/rctransmitter/transmitter"
)

// Input is the serial port that commands are read from
type Input interface {
	ReadByte() (byte, error)
	Buffered() int
}

// Transmitter connects a running transmitter.Session to the serial console. It implements commands.Controller
type Transmitter struct {
	session *transmitter.Session
	console *Console
	input   Input

	quietLevel Level
	telemetry  bool
}

var _ commands.Controller = &Transmitter{}

func NewTransmitter(session *transmitter.Session, console *Console, input Input) *Transmitter {
	return &Transmitter{
		session:    session,
		console:    console,
		input:      input,
		quietLevel: console.Level(),
	}
}

// Emit writes a telemetry frame for the report when telemetry is enabled. It is used as a Session observer
func (t *Transmitter) Emit(r transmitter.Report) {
	if !t.telemetry {
		return
	}
	t.console.WriteFrame(rctransmitter.EncodeFrame(r.Telemetry()))
}

// ToggleVerbose switches between debug output and the previous level
func (t *Transmitter) ToggleVerbose() {
	if t.console.Level() == LevelDebug {
		t.console.SetLevel(t.quietLevel)
		t.console.Println("verbose: off")
		return
	}

	t.quietLevel = t.console.Level()
	t.console.SetLevel(LevelDebug)
	t.console.Println("verbose: on")
}

func (t *Transmitter) SetLogLevel(level uint8) error {
	l := Level(level)
	if l > LevelDebug {
		return errors.New("invalid log level")
	}
	t.console.SetLevel(l)
	if l != LevelDebug {
		t.quietLevel = l
	}
	t.console.Println("log level: " + l.String())
	return nil
}

func (t *Transmitter) Status() {
	t.console.Println(t.session.Status())
}

func (t *Transmitter) ResetLosses() {
	t.session.ResetLosses()
	t.console.Println("packet loss counters reset")
}

func (t *Transmitter) ToggleTelemetry() {
	if t.telemetry {
		t.telemetry = false
		t.console.SetMuted(false)
		t.console.Println(rctransmitter.TelemetryOff)
		return
	}

	t.console.Println(rctransmitter.TelemetryOn)
	t.console.SetMuted(true)
	t.telemetry = true
}

func (t *Transmitter) Telemetry() bool {
	return t.telemetry
}

func (t *Transmitter) Println(msg string) {
	t.console.Println(msg)
}

func (t *Transmitter) ReadByte() (byte, error) {
	return t.input.ReadByte()
}

func (t *Transmitter) Buffered() int {
	return t.input.Buffered()
}
