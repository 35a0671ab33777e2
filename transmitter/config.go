package transmitter

import (
	"errors"
	"strconv"
	"time"
)

// Default configuration constants
const (
	// DefaultADCMax is the maximum value read by a 12-bit ADC such as the ESP32's
	DefaultADCMax = 4095

	// DefaultOutputHigh is the mapped value for a raw reading of 0. The mapping is inverted
	DefaultOutputHigh = 180
	DefaultOutputLow  = 0

	// DefaultMaxConsecutiveLosses is how many packets in a row can be lost before the link is reported as lost
	DefaultMaxConsecutiveLosses = 50

	// MaxRFChannel is the highest channel the radio can tune to
	MaxRFChannel = 125
)

// DefaultRFChannels has one radio channel per channel-potentiometer zone
var DefaultRFChannels = []uint8{76, 88, 100}

// Config has the values used by a Session
type Config struct {
	// ADCMax is the maximum raw reading of every analog input
	ADCMax uint16

	// OutputHigh and OutputLow are the mapped values at raw 0 and raw ADCMax, before sensitivity is applied
	OutputHigh int
	OutputLow  int

	// RFChannels is the radio channel used for each zone. The number of zones is len(RFChannels)
	RFChannels []uint8

	// MaxConsecutiveLosses reports the link as lost once this many packets are lost in a row. 0 disables it
	MaxConsecutiveLosses uint32

	// HaltOnLinkLoss makes Run return ErrTooManyPacketsLost instead of continuing
	HaltOnLinkLoss bool

	// Interval paces Run. 0 runs as fast as the blocking reads and writes allow
	Interval time.Duration
}

// DefaultConfig returns the configuration for the 3-channel ESP32 transmitter
func DefaultConfig() Config {
	return Config{
		ADCMax:               DefaultADCMax,
		OutputHigh:           DefaultOutputHigh,
		OutputLow:            DefaultOutputLow,
		RFChannels:           append([]uint8(nil), DefaultRFChannels...),
		MaxConsecutiveLosses: DefaultMaxConsecutiveLosses,
	}
}

// Validate checks that the config can be used for mapping and zone selection
func (c Config) Validate() error {
	if c.ADCMax == 0 {
		return errors.New("ADCMax must be greater than 0")
	}
	if len(c.RFChannels) == 0 {
		return errors.New("at least one RF channel is required")
	}
	for _, ch := range c.RFChannels {
		if ch > MaxRFChannel {
			return errors.New("RF channel " + strconv.Itoa(int(ch)) + " is out of range (0-" + strconv.Itoa(MaxRFChannel) + ")")
		}
	}
	if int(c.ADCMax) < len(c.RFChannels) {
		return errors.New("ADCMax " + strconv.Itoa(int(c.ADCMax)) + " is too small for " + strconv.Itoa(len(c.RFChannels)) + " zones")
	}
	if c.Interval < 0 {
		return errors.New("interval cannot be negative")
	}
	return nil
}

// NumZones is the number of channel zones
func (c Config) NumZones() int {
	return len(c.RFChannels)
}

// Zone returns the zone of a channel-potentiometer reading: floor(raw / (ADCMax / zones)).
// The top reading would land one past the last zone so it is folded into the last one
func (c Config) Zone(raw uint16) int {
	width := c.ADCMax / uint16(c.NumZones())
	zone := int(raw / width)
	if zone >= c.NumZones() {
		zone = c.NumZones() - 1
	}
	return zone
}

// RFChannel returns the radio channel used for a zone
func (c Config) RFChannel(zone int) uint8 {
	return c.RFChannels[zone]
}
