package controller

import (
	"fmt"
	"time"

	"github.com/calvinmclean/rctransmitter"
)

// Snapshot is the latest known state of the transmitter, built from its console output
type Snapshot struct {
	Sensitivity     uint16
	Channel         int
	Values          rctransmitter.Values
	TotalLost       uint32
	ConsecutiveLost uint32
	Iterations      uint64

	// Delivered reports the last write. In text mode it is only known from STATUS lines, since
	// "packet lost!" lines are not printed unless debug logging is enabled
	Delivered bool
	// LinkLost is set when the transmitter reports too many lost packets and cleared by the next delivery
	LinkLost bool

	Updated       time.Time
	LastDelivered time.Time
}

// Apply updates the Snapshot with a parsed line
func (s *Snapshot) Apply(l Line, now time.Time) {
	switch l.Kind {
	case LineSensitivity:
		s.Sensitivity = l.Sensitivity
	case LineValues:
		s.Values = l.Values
	case LineChannel:
		s.Channel = l.Channel
	case LinePacketLost:
		s.Delivered = false
		s.TotalLost = l.TotalLost
		s.ConsecutiveLost = l.ConsecutiveLost
	case LineTooManyLost:
		s.LinkLost = true
	case LineStatus:
		s.Channel = l.Channel
		s.Sensitivity = l.Sensitivity
		s.TotalLost = l.TotalLost
		s.ConsecutiveLost = l.ConsecutiveLost
		s.Iterations = l.Iterations
		s.Values = l.Values

		// consecutive losses reset on every acknowledged write
		s.Delivered = l.Iterations > 0 && l.ConsecutiveLost == 0
		if s.Delivered {
			s.LinkLost = false
			s.LastDelivered = now
		}
	default:
		return
	}
	s.Updated = now
}

// ApplyTelemetry replaces the Snapshot's state with a telemetry record
func (s *Snapshot) ApplyTelemetry(t rctransmitter.Telemetry, now time.Time) {
	s.Sensitivity = t.Sensitivity
	s.Channel = int(t.Channel)
	s.Values = t.Values
	s.TotalLost = t.TotalLost
	s.ConsecutiveLost = t.ConsecutiveLost
	s.Delivered = t.Delivered
	s.Iterations++
	s.Updated = now

	if t.Delivered {
		s.LinkLost = false
		s.LastDelivered = now
	}
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"channel=%d sensitivity=%d delivered=%t lost=%d consecutive=%d values=%d,%d,%d,%d",
		s.Channel, s.Sensitivity, s.Delivered, s.TotalLost, s.ConsecutiveLost,
		s.Values[0], s.Values[1], s.Values[2], s.Values[3],
	)
}
