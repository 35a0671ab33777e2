// Package transmitter is the hardware-independent core of the RC transmitter: it samples the joysticks and
// potentiometers, maps the axes, selects the radio channel and writes the payload, counting lost packets.
// Hardware is reached only through the AnalogReader, Radio and Display interfaces.
package transmitter

import (
	"errors"

	"github.com/calvinmclean/rctransmitter"
)

// ErrTooManyPacketsLost is returned by Step when the consecutive loss count reaches Config.MaxConsecutiveLosses
var ErrTooManyPacketsLost = errors.New(rctransmitter.TooManyPacketsLost)

// Radio writes payloads to the receiver
type Radio interface {
	// Write sends one payload. A nil error means the receiver acknowledged it
	Write(payload []byte) error
	// SetChannel tunes the radio to an RF channel
	SetChannel(channel uint8) error
}

// Display shows the transmitter's state to the user
type Display interface {
	PrintError(msg string)
	PrintValues(rctransmitter.Values)
	PrintChannel(zone int)
	PrintSensitivity(Sensitivity)
}

// Logger is the subset of logging methods used by the Session. *logrus.Logger implements it
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NoopDisplay is used when the transmitter has no display attached
type NoopDisplay struct{}

var _ Display = NoopDisplay{}

// PrintError implements Display.
func (NoopDisplay) PrintError(string) {}

// PrintValues implements Display.
func (NoopDisplay) PrintValues(rctransmitter.Values) {}

// PrintChannel implements Display.
func (NoopDisplay) PrintChannel(int) {}

// PrintSensitivity implements Display.
func (NoopDisplay) PrintSensitivity(Sensitivity) {}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}
