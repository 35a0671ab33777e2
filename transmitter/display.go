package transmitter

import (
	"strconv"
	"strings"

	"github.com/calvinmclean/rctransmitter"
)

// DisplayWidth is the number of characters per line on a 16x2 character display
const DisplayWidth = 16

// StatusLine formats the channel and sensitivity for the first display line, like "CH2   SENS  75%".
// Zones are shown starting at 1
func StatusLine(zone int, s Sensitivity) string {
	left := "CH" + strconv.Itoa(zone+1)
	right := "SENS" + padLeft(strconv.Itoa(s.Percent())+"%", 5)
	return fit(left + padLeft(right, DisplayWidth-len(left)))
}

// ValuesLine formats the output vector in payload order, four characters per axis
func ValuesLine(v rctransmitter.Values) string {
	var b strings.Builder
	for _, value := range v {
		b.WriteString(padLeft(strconv.Itoa(int(value)), DisplayWidth/rctransmitter.NumAxes))
	}
	return fit(b.String())
}

// ErrorLine formats an error message for the display, truncating it when it does not fit
func ErrorLine(msg string) string {
	return fit("ERR " + msg)
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// fit pads or truncates to exactly one display line
func fit(s string) string {
	if len(s) > DisplayWidth {
		return s[:DisplayWidth]
	}
	return s + strings.Repeat(" ", DisplayWidth-len(s))
}
