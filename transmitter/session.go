package transmitter

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/calvinmclean/rctransmitter"
)

// Report is the result of one iteration of the Session
type Report struct {
	Sample         Sample
	Values         rctransmitter.Values
	Channel        int
	ChannelChanged bool
	Delivered      bool
	Losses         LossCounters
}

// Telemetry converts the Report into the record streamed to the host
func (r Report) Telemetry() rctransmitter.Telemetry {
	return rctransmitter.Telemetry{
		Sensitivity:     r.Sample.Sensitivity,
		Channel:         uint8(r.Channel),
		Delivered:       r.Delivered,
		Values:          r.Values,
		TotalLost:       r.Losses.Total,
		ConsecutiveLost: r.Losses.Consecutive,
	}
}

// Session owns the transmitter state that persists between iterations: the output vector, the current
// channel zone and the loss counters
type Session struct {
	cfg     Config
	reader  AnalogReader
	radio   Radio
	display Display
	logger  Logger

	values     rctransmitter.Values
	channel    int
	losses     LossCounters
	iterations uint64
	last       Report
}

// NewSession validates the config and creates a Session. A nil display or logger disables that output
func NewSession(cfg Config, reader AnalogReader, radio Radio, display Display, logger Logger) (*Session, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, errors.New("invalid config: " + err.Error())
	}
	if reader == nil {
		return nil, errors.New("reader is required")
	}
	if radio == nil {
		return nil, errors.New("radio is required")
	}
	if display == nil {
		display = NoopDisplay{}
	}
	if logger == nil {
		logger = noopLogger{}
	}

	return &Session{
		cfg:     cfg,
		reader:  reader,
		radio:   radio,
		display: display,
		logger:  logger,
	}, nil
}

// Begin tunes the radio to the first zone's channel, which is the Session's initial zone
func (s *Session) Begin() error {
	s.channel = 0
	err := s.radio.SetChannel(s.cfg.RFChannel(0))
	if err != nil {
		return errors.New("error setting initial channel: " + err.Error())
	}
	s.display.PrintChannel(0)
	return nil
}

// Step runs one iteration: sample, map, select channel and write. A lost packet is not an error, but
// ErrTooManyPacketsLost is returned when the loss streak reaches Config.MaxConsecutiveLosses
func (s *Session) Step() (Report, error) {
	s.iterations++

	sample := ReadSample(s.reader)
	sensitivity := Sensitivity{Raw: sample.Sensitivity, Max: s.cfg.ADCMax}
	s.logger.Infof(rctransmitter.SensitivityPrefix+"%d", sample.Sensitivity)
	s.display.PrintSensitivity(sensitivity)

	s.values = s.cfg.MapValues(sample)
	s.logger.Debugf("%s", s.values.String())
	s.display.PrintValues(s.values)

	changed := s.selectChannel(sample.Channel)

	var err error
	delivered := s.transmit()
	if !delivered && s.linkLost() {
		s.logger.Errorf(rctransmitter.TooManyPacketsLost)
		s.display.PrintError(rctransmitter.TooManyPacketsLost)
		err = ErrTooManyPacketsLost
	}

	s.last = Report{
		Sample:         sample,
		Values:         s.values,
		Channel:        s.channel,
		ChannelChanged: changed,
		Delivered:      delivered,
		Losses:         s.losses,
	}
	return s.last, err
}

// selectChannel tunes the radio when the channel reading moves into another zone. The zone is only
// stored once the radio accepts it so a failed change is tried again on the next iteration
func (s *Session) selectChannel(raw uint16) bool {
	zone := s.cfg.Zone(raw)
	if zone == s.channel {
		return false
	}

	rf := s.cfg.RFChannel(zone)
	err := s.radio.SetChannel(rf)
	if err != nil {
		s.logger.Errorf("error setting RF channel %d: %s", rf, err.Error())
		s.display.PrintError("channel error")
		return false
	}

	s.channel = zone
	s.logger.Infof(rctransmitter.ChannelPrefix+"%d", zone)
	s.display.PrintChannel(zone)
	return true
}

// transmit writes the current values once. There is no retry: the next iteration is independent
func (s *Session) transmit() bool {
	payload := s.values.Payload()
	err := s.radio.Write(payload[:])
	if err != nil {
		s.losses.Lost()
		s.logger.Debugf(rctransmitter.PacketLostPrefix+" total=%d consecutive=%d", s.losses.Total, s.losses.Consecutive)
		return false
	}

	s.losses.Delivered()
	return true
}

// linkLost is true only on the iteration where the streak reaches the limit, so it is reported once per streak
func (s *Session) linkLost() bool {
	return s.cfg.MaxConsecutiveLosses > 0 && s.losses.Consecutive == s.cfg.MaxConsecutiveLosses
}

// Run calls Step until the context is done. Each observer is called with every Report.
// ErrTooManyPacketsLost only stops Run when Config.HaltOnLinkLoss is set
func (s *Session) Run(ctx context.Context, observers ...func(Report)) error {
	var tick <-chan time.Time
	if s.cfg.Interval > 0 {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		report, err := s.Step()
		for _, observe := range observers {
			observe(report)
		}
		if err != nil && (s.cfg.HaltOnLinkLoss || !errors.Is(err, ErrTooManyPacketsLost)) {
			return err
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
}

// Values returns the last output vector
func (s *Session) Values() rctransmitter.Values {
	return s.values
}

// Channel returns the current channel zone
func (s *Session) Channel() int {
	return s.channel
}

// Losses returns the loss counters
func (s *Session) Losses() LossCounters {
	return s.losses
}

// ResetLosses clears the loss counters
func (s *Session) ResetLosses() {
	s.losses.Reset()
}

// Iterations returns how many times Step has run
func (s *Session) Iterations() uint64 {
	return s.iterations
}

// LastReport returns the Report from the most recent Step
func (s *Session) LastReport() Report {
	return s.last
}

// Status formats the current state as a single console line:
// STATUS channel=1 sensitivity=4095 lost=5 consecutive=0 iterations=120 values=0,0,0,0
func (s *Session) Status() string {
	return rctransmitter.StatusPrefix +
		"channel=" + strconv.Itoa(s.channel) +
		" sensitivity=" + strconv.Itoa(int(s.last.Sample.Sensitivity)) +
		" lost=" + strconv.FormatUint(uint64(s.losses.Total), 10) +
		" consecutive=" + strconv.FormatUint(uint64(s.losses.Consecutive), 10) +
		" iterations=" + strconv.FormatUint(s.iterations, 10) +
		" values=" + joinValues(s.values)
}

func joinValues(v rctransmitter.Values) string {
	var out string
	for i, value := range v {
		if i > 0 {
			out += ","
		}
		out += strconv.Itoa(int(value))
	}
	return out
}
