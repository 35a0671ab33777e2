package ui

import (
	"image/color"

	"github.com/calvinmclean/rctransmitter/controller"
)

type linkState int

const (
	linkUnknown linkState = iota
	linkConnected
	linkDegraded
	linkLost
)

func (s linkState) String() string {
	switch s {
	case linkConnected:
		return "Connected"
	case linkDegraded:
		return "Dropping Packets"
	case linkLost:
		return "Link Lost"
	default:
		return "Waiting"
	}
}

func (s linkState) color() color.Color {
	switch s {
	case linkConnected:
		return color.RGBA{G: 139, A: 255}
	case linkDegraded:
		return color.RGBA{R: 204, G: 153, A: 255}
	case linkLost:
		return color.RGBA{R: 139, A: 255}
	default:
		return color.Gray{Y: 128}
	}
}

func linkStateOf(s controller.Snapshot) linkState {
	switch {
	case s.Updated.IsZero():
		return linkUnknown
	case s.LinkLost:
		return linkLost
	case s.ConsecutiveLost > 0:
		return linkDegraded
	default:
		return linkConnected
	}
}
