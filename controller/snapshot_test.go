package controller

import (
	"testing"
	"time"

	"github.com/calvinmclean/rctransmitter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotApply(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var s Snapshot
	s.Apply(Line{Kind: LineSensitivity, Sensitivity: 100}, now)
	s.Apply(Line{Kind: LineChannel, Channel: 2}, now)
	s.Apply(Line{Kind: LineValues, Values: rctransmitter.Values{1, 2, 3, 4}}, now)
	s.Apply(Line{Kind: LinePacketLost, TotalLost: 3, ConsecutiveLost: 2}, now)
	s.Apply(Line{Kind: LineTooManyLost}, now)

	assert.Equal(t, Snapshot{
		Sensitivity:     100,
		Channel:         2,
		Values:          rctransmitter.Values{1, 2, 3, 4},
		TotalLost:       3,
		ConsecutiveLost: 2,
		LinkLost:        true,
		Updated:         now,
	}, s)

	later := now.Add(time.Second)
	s.Apply(Line{Kind: LineUnknown}, later)
	assert.Equal(t, now, s.Updated)

	s.Apply(Line{Kind: LineStatus, Channel: 1, Iterations: 10}, later)
	assert.Equal(t, 1, s.Channel)
	assert.Equal(t, uint64(10), s.Iterations)
	assert.Equal(t, uint32(0), s.TotalLost)
	assert.Equal(t, later, s.Updated)
}

func TestSnapshotApplyLines(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name              string
		lines             []string
		wantLinkLost      bool
		wantDelivered     bool
		wantLastDelivered time.Time
	}{
		{
			"StatusAfterLinkLostClearsIt",
			[]string{
				"too many packets lost",
				"STATUS channel=0 sensitivity=4095 lost=50 consecutive=0 iterations=99 values=0,0,0,0",
			},
			false, true, now,
		},
		{
			"StatusWithConsecutiveLossesKeepsLinkLost",
			[]string{
				"too many packets lost",
				"STATUS channel=0 sensitivity=4095 lost=51 consecutive=51 iterations=99 values=0,0,0,0",
			},
			true, false, time.Time{},
		},
		{
			"StatusBeforeFirstWrite",
			[]string{"STATUS channel=0 sensitivity=4095 lost=0 consecutive=0 iterations=0 values=0,0,0,0"},
			false, false, time.Time{},
		},
		{
			"SensitivityLineDoesNotImplyDelivery",
			[]string{"too many packets lost", "SENSITIVITY: 4095"},
			true, false, time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Snapshot
			for _, raw := range tt.lines {
				l, err := ParseLine(raw)
				require.NoError(t, err)
				s.Apply(l, now)
			}

			assert.Equal(t, tt.wantLinkLost, s.LinkLost)
			assert.Equal(t, tt.wantDelivered, s.Delivered)
			assert.Equal(t, tt.wantLastDelivered, s.LastDelivered)
		})
	}
}

func TestSnapshotApplyTelemetry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Snapshot{LinkLost: true}

	s.ApplyTelemetry(rctransmitter.Telemetry{Channel: 1, TotalLost: 4, ConsecutiveLost: 4}, now)
	assert.True(t, s.LinkLost)
	assert.False(t, s.Delivered)
	assert.True(t, s.LastDelivered.IsZero())

	s.ApplyTelemetry(rctransmitter.Telemetry{Channel: 1, Delivered: true, TotalLost: 4}, now)
	assert.False(t, s.LinkLost)
	assert.True(t, s.Delivered)
	assert.Equal(t, now, s.LastDelivered)
	assert.Equal(t, uint64(2), s.Iterations)
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{Channel: 1, Sensitivity: 10, Delivered: true, TotalLost: 2, Values: rctransmitter.Values{1, 2, 3, -4}}
	assert.Equal(t, "channel=1 sensitivity=10 delivered=true lost=2 consecutive=0 values=1,2,3,-4", s.String())
}
