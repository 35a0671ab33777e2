package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/calvinmclean/rctransmitter"
)

// ErrUnknownLine is returned by ParseLine for lines that are not diagnostics, like command responses
var ErrUnknownLine = errors.New("unknown line")

type LineKind int

const (
	LineUnknown LineKind = iota
	LineSensitivity
	LineValues
	LineChannel
	LinePacketLost
	LineTooManyLost
	LineStatus
)

func (k LineKind) String() string {
	switch k {
	case LineSensitivity:
		return "sensitivity"
	case LineValues:
		return "values"
	case LineChannel:
		return "channel"
	case LinePacketLost:
		return "packet_lost"
	case LineTooManyLost:
		return "too_many_lost"
	case LineStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Line is a parsed diagnostic line. Only the fields for its Kind are set
type Line struct {
	Kind            LineKind
	Sensitivity     uint16
	Values          rctransmitter.Values
	Channel         int
	TotalLost       uint32
	ConsecutiveLost uint32
	Iterations      uint64
}

// ParseLine parses one line of the transmitter's console output
func ParseLine(s string) (Line, error) {
	s = strings.TrimRight(s, "\r\n")

	switch {
	case strings.HasPrefix(s, rctransmitter.SensitivityPrefix):
		v, err := strconv.ParseUint(strings.TrimPrefix(s, rctransmitter.SensitivityPrefix), 10, 16)
		if err != nil {
			return Line{}, fmt.Errorf("invalid sensitivity: %w", err)
		}
		return Line{Kind: LineSensitivity, Sensitivity: uint16(v)}, nil

	case strings.HasPrefix(s, rctransmitter.ChannelPrefix):
		v, err := strconv.Atoi(strings.TrimPrefix(s, rctransmitter.ChannelPrefix))
		if err != nil {
			return Line{}, fmt.Errorf("invalid channel: %w", err)
		}
		return Line{Kind: LineChannel, Channel: v}, nil

	case strings.HasPrefix(s, rctransmitter.AxisYaw.Label()+": "):
		values, err := parseValues(s)
		if err != nil {
			return Line{}, err
		}
		return Line{Kind: LineValues, Values: values}, nil

	case strings.HasPrefix(s, rctransmitter.PacketLostPrefix):
		line := Line{Kind: LinePacketLost}
		err := parseFields(strings.TrimPrefix(s, rctransmitter.PacketLostPrefix), &line)
		return line, err

	case s == rctransmitter.TooManyPacketsLost:
		return Line{Kind: LineTooManyLost}, nil

	case strings.HasPrefix(s, rctransmitter.StatusPrefix):
		line := Line{Kind: LineStatus}
		err := parseFields(strings.TrimPrefix(s, rctransmitter.StatusPrefix), &line)
		return line, err
	}

	return Line{}, ErrUnknownLine
}

// parseValues parses "VX0: 1\tVY0: 2\tVX1: 3\tVY1: 4"
func parseValues(s string) (rctransmitter.Values, error) {
	var values rctransmitter.Values

	parts := strings.Split(s, "\t")
	if len(parts) != rctransmitter.NumAxes {
		return values, fmt.Errorf("expected %d values: %q", rctransmitter.NumAxes, s)
	}

	for i, part := range parts {
		label, value, ok := strings.Cut(part, ": ")
		if !ok || label != rctransmitter.Axes[i].Label() {
			return values, fmt.Errorf("unexpected value %q", part)
		}

		v, err := strconv.ParseInt(value, 10, 16)
		if err != nil {
			return values, fmt.Errorf("invalid value for %s: %w", label, err)
		}
		values[i] = int16(v)
	}

	return values, nil
}

// parseFields parses space-separated key=value pairs into the Line
func parseFields(s string, line *Line) error {
	for _, field := range strings.Fields(s) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return fmt.Errorf("invalid field %q", field)
		}

		var err error
		switch key {
		case "channel":
			line.Channel, err = strconv.Atoi(value)
		case "sensitivity":
			var v uint64
			v, err = strconv.ParseUint(value, 10, 16)
			line.Sensitivity = uint16(v)
		case "lost", "total":
			var v uint64
			v, err = strconv.ParseUint(value, 10, 32)
			line.TotalLost = uint32(v)
		case "consecutive":
			var v uint64
			v, err = strconv.ParseUint(value, 10, 32)
			line.ConsecutiveLost = uint32(v)
		case "iterations":
			line.Iterations, err = strconv.ParseUint(value, 10, 64)
		case "values":
			line.Values, err = parseValueList(value)
		}
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	return nil
}

func parseValueList(s string) (rctransmitter.Values, error) {
	var values rctransmitter.Values

	parts := strings.Split(s, ",")
	if len(parts) != rctransmitter.NumAxes {
		return values, fmt.Errorf("expected %d values: %q", rctransmitter.NumAxes, s)
	}

	for i, part := range parts {
		v, err := strconv.ParseInt(part, 10, 16)
		if err != nil {
			return values, err
		}
		values[i] = int16(v)
	}

	return values, nil
}
