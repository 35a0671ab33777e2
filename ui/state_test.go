package ui

import (
	"testing"
	"time"

	"github.com/calvinmclean/rctransmitter/controller"

	"github.com/stretchr/testify/assert"
)

func TestLinkStateOf(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		snapshot controller.Snapshot
		expected linkState
	}{
		{"NoData", controller.Snapshot{}, linkUnknown},
		{"Connected", controller.Snapshot{Updated: now, TotalLost: 10}, linkConnected},
		{"Degraded", controller.Snapshot{Updated: now, ConsecutiveLost: 3}, linkDegraded},
		{"Lost", controller.Snapshot{Updated: now, ConsecutiveLost: 50, LinkLost: true}, linkLost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := linkStateOf(tt.snapshot)
			assert.Equal(t, tt.expected, state)
			assert.NotEmpty(t, state.String())
			assert.NotNil(t, state.color())
		})
	}
}
