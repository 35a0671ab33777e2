package transmitter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinmclean/rctransmitter"
)

type recordingDisplay struct {
	errors        []string
	values        []rctransmitter.Values
	channels      []int
	sensitivities []Sensitivity
}

func (d *recordingDisplay) PrintError(msg string) { d.errors = append(d.errors, msg) }
func (d *recordingDisplay) PrintValues(v rctransmitter.Values) {
	d.values = append(d.values, v)
}
func (d *recordingDisplay) PrintChannel(zone int) { d.channels = append(d.channels, zone) }
func (d *recordingDisplay) PrintSensitivity(s Sensitivity) {
	d.sensitivities = append(d.sensitivities, s)
}

func newTestSession(t *testing.T, cfg Config) (*Session, *FakeReader, *FakeRadio, *recordingDisplay) {
	t.Helper()
	reader := &FakeReader{}
	reader.Readings[InputSensitivity] = DefaultADCMax
	radio := &FakeRadio{}
	display := &recordingDisplay{}

	s, err := NewSession(cfg, reader, radio, display, nil)
	require.NoError(t, err)
	return s, reader, radio, display
}

func TestNewSessionErrors(t *testing.T) {
	_, err := NewSession(Config{}, &FakeReader{}, &FakeRadio{}, nil, nil)
	assert.EqualError(t, err, "invalid config: ADCMax must be greater than 0")

	_, err = NewSession(DefaultConfig(), nil, &FakeRadio{}, nil, nil)
	assert.EqualError(t, err, "reader is required")

	_, err = NewSession(DefaultConfig(), &FakeReader{}, nil, nil, nil)
	assert.EqualError(t, err, "radio is required")
}

func TestStepScenarios(t *testing.T) {
	tests := []struct {
		name     string
		axes     uint16
		expected rctransmitter.Values
	}{
		{"AllAxesMax", 4095, rctransmitter.Values{0, 0, 0, 0}},
		{"AllAxesMin", 0, rctransmitter.Values{180, 180, 180, 180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, reader, radio, display := newTestSession(t, DefaultConfig())
			reader.SetAxes(tt.axes)

			report, err := s.Step()
			require.NoError(t, err)

			assert.Equal(t, tt.expected, report.Values)
			assert.Equal(t, tt.expected, s.Values())
			assert.True(t, report.Delivered)

			payload := tt.expected.Payload()
			require.Len(t, radio.Payloads, 1)
			assert.Equal(t, payload[:], radio.Payloads[0])
			assert.Len(t, radio.Payloads[0], rctransmitter.PayloadSize)

			assert.Equal(t, []rctransmitter.Values{tt.expected}, display.values)
			assert.Equal(t, []Sensitivity{{Raw: 4095, Max: 4095}}, display.sensitivities)
		})
	}
}

func TestStepZeroSensitivity(t *testing.T) {
	s, reader, _, _ := newTestSession(t, DefaultConfig())
	reader.Readings = [NumInputs]uint16{100, 2000, 3000, 0, 0, 0}

	report, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, rctransmitter.Values{}, report.Values)
}

func TestStepChannelSelection(t *testing.T) {
	s, reader, radio, display := newTestSession(t, DefaultConfig())
	require.NoError(t, s.Begin())
	assert.Equal(t, []uint8{76}, radio.Channels)

	steps := []struct {
		reading  uint16
		zone     int
		changed  bool
		channels []uint8
	}{
		{0, 0, false, []uint8{76}},
		{2048, 1, true, []uint8{76, 88}},
		{2100, 1, false, []uint8{76, 88}},
		{4094, 2, true, []uint8{76, 88, 100}},
		{0, 0, true, []uint8{76, 88, 100, 76}},
	}

	for _, step := range steps {
		reader.Readings[InputChannel] = step.reading
		report, err := s.Step()
		require.NoError(t, err)

		assert.Equal(t, step.zone, report.Channel, "reading %d", step.reading)
		assert.Equal(t, step.zone, s.Channel())
		assert.Equal(t, step.changed, report.ChannelChanged, "reading %d", step.reading)
		assert.Equal(t, step.channels, radio.Channels)
	}

	assert.Equal(t, []int{0, 1, 2, 0}, display.channels)
}

func TestStepChannelChangeFailureIsRetried(t *testing.T) {
	s, reader, radio, display := newTestSession(t, DefaultConfig())
	radio.SetChannelErr = errors.New("spi error")
	reader.Readings[InputChannel] = 4094

	report, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Channel)
	assert.False(t, report.ChannelChanged)
	assert.Equal(t, []string{"channel error"}, display.errors)

	radio.SetChannelErr = nil
	report, err = s.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, report.Channel)
	assert.True(t, report.ChannelChanged)
	assert.Equal(t, []uint8{100}, radio.Channels)
}

func TestStepPacketLoss(t *testing.T) {
	s, _, radio, _ := newTestSession(t, DefaultConfig())
	radio.Drop = DropRange(0, 5)

	for i := range 5 {
		report, err := s.Step()
		require.NoError(t, err)
		assert.False(t, report.Delivered)
		assert.Equal(t, uint32(i+1), report.Losses.Consecutive)
	}
	assert.Equal(t, LossCounters{Total: 5, Consecutive: 5}, s.Losses())
	assert.Equal(t, 5, radio.Writes())
	assert.Empty(t, radio.Payloads)

	report, err := s.Step()
	require.NoError(t, err)
	assert.True(t, report.Delivered)
	assert.Equal(t, LossCounters{Total: 5, Consecutive: 0}, s.Losses())

	s.ResetLosses()
	assert.Equal(t, LossCounters{}, s.Losses())
}

func TestStepTooManyPacketsLost(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConsecutiveLosses = 3
	s, _, radio, display := newTestSession(t, cfg)
	radio.Drop = DropAll

	var errs []error
	for range 6 {
		_, err := s.Step()
		errs = append(errs, err)
	}

	assert.Equal(t, []error{nil, nil, ErrTooManyPacketsLost, nil, nil, nil}, errs)
	assert.Equal(t, []string{rctransmitter.TooManyPacketsLost}, display.errors)
	assert.Equal(t, LossCounters{Total: 6, Consecutive: 6}, s.Losses())
}

func TestRunContinuesAfterLinkLoss(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConsecutiveLosses = 2
	s, _, radio, _ := newTestSession(t, cfg)
	radio.Drop = DropAll

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reports []Report
	err := s.Run(ctx, func(r Report) {
		reports = append(reports, r)
		if len(reports) == 10 {
			cancel()
		}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, reports, 10)
	assert.Equal(t, uint64(10), s.Iterations())
	assert.Equal(t, uint32(10), s.Losses().Total)
}

func TestRunHaltsOnLinkLoss(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConsecutiveLosses = 4
	cfg.HaltOnLinkLoss = true
	s, _, radio, _ := newTestSession(t, cfg)
	radio.Drop = DropAll

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, ErrTooManyPacketsLost)
	assert.Equal(t, uint64(4), s.Iterations())
}

func TestRunWithInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Interval = time.Millisecond
	s, _, radio, _ := newTestSession(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotZero(t, radio.Writes())
}

func TestStatus(t *testing.T) {
	s, reader, radio, _ := newTestSession(t, DefaultConfig())
	reader.SetAxes(0)
	reader.Readings[InputChannel] = 2048
	radio.Drop = DropAll

	_, err := s.Step()
	require.NoError(t, err)

	assert.Equal(t, "STATUS channel=1 sensitivity=4095 lost=1 consecutive=1 iterations=1 values=180,180,180,180", s.Status())
}

func TestReportTelemetry(t *testing.T) {
	r := Report{
		Sample:    Sample{Sensitivity: 1000},
		Values:    rctransmitter.Values{1, 2, 3, 4},
		Channel:   2,
		Delivered: true,
		Losses:    LossCounters{Total: 7, Consecutive: 0},
	}

	assert.Equal(t, rctransmitter.Telemetry{
		Sensitivity: 1000,
		Channel:     2,
		Delivered:   true,
		Values:      rctransmitter.Values{1, 2, 3, 4},
		TotalLost:   7,
	}, r.Telemetry())
}
