package device

import (
	"errors"
	"time"

	"github.com/calvinmclean/rctransmitter"
	"github.com/calvinmclean/rctransmitter/transmitter"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"
)

// DefaultErrorHold is how long an error stays on the status line before it is replaced
const DefaultErrorHold = 2 * time.Second

// LineWriter writes a full line of text to a character display
type LineWriter interface {
	WriteLine(row uint8, line string)
}

// LCD implements transmitter.Display on a two line character display. The first line shows the zone and
// sensitivity, or the latest error. The second line shows the mapped values. Lines are only rewritten when
// their content changes
type LCD struct {
	w         LineWriter
	errorHold time.Duration
	now       func() time.Time

	zone        int
	sensitivity transmitter.Sensitivity
	errorUntil  time.Time
	lines       [2]string
}

var _ transmitter.Display = &LCD{}

func NewLCD(w LineWriter, errorHold time.Duration) *LCD {
	return &LCD{
		w:         w,
		errorHold: errorHold,
		now:       time.Now,
	}
}

func (l *LCD) PrintError(msg string) {
	l.errorUntil = l.now().Add(l.errorHold)
	l.setLine(0, transmitter.ErrorLine(msg))
}

func (l *LCD) PrintValues(v rctransmitter.Values) {
	l.setLine(1, transmitter.ValuesLine(v))
}

func (l *LCD) PrintChannel(zone int) {
	l.zone = zone
	l.printStatus()
}

func (l *LCD) PrintSensitivity(s transmitter.Sensitivity) {
	l.sensitivity = s
	l.printStatus()
}

func (l *LCD) printStatus() {
	if l.now().Before(l.errorUntil) {
		return
	}
	l.setLine(0, transmitter.StatusLine(l.zone, l.sensitivity))
}

func (l *LCD) setLine(row uint8, line string) {
	if l.lines[row] == line {
		return
	}
	l.lines[row] = line
	l.w.WriteLine(row, line)
}

// HD44780 writes lines to an HD44780 display behind an I2C backpack
type HD44780 struct {
	dev hd44780i2c.Device
}

var _ LineWriter = &HD44780{}

// NewHD44780 configures the display and clears it
func NewHD44780(bus drivers.I2C, cfg LCDConfig) (*HD44780, error) {
	dev := hd44780i2c.New(bus, cfg.Address)
	err := dev.Configure(hd44780i2c.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
	})
	if err != nil {
		return nil, errors.New("error configuring display: " + err.Error())
	}
	dev.ClearDisplay()

	return &HD44780{dev: dev}, nil
}

func (h *HD44780) WriteLine(row uint8, line string) {
	h.dev.SetCursor(0, row)
	h.dev.Print([]byte(line))
}
