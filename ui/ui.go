// Package ui is a desktop dashboard for the transmitter. It shows the latest controller.Snapshot and sends
// console commands
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/rctransmitter"
	"github.com/calvinmclean/rctransmitter/controller"
	"github.com/calvinmclean/rctransmitter/transmitter"
)

const maxLogLines = 200

// StartFunc connects to the transmitter with the provided Config. The returned writer sends commands to it
type StartFunc func(controller.Config) (io.Writer, error)

type TransmitterUI struct {
	snapshots chan controller.Snapshot

	logMtx   sync.Mutex
	logLines []string
	partial  string
	logDirty bool
}

func NewTransmitterUI() *TransmitterUI {
	return &TransmitterUI{
		snapshots: make(chan controller.Snapshot, 1),
	}
}

// Update shows the Snapshot. Only the latest Snapshot is kept if the UI falls behind
func (ui *TransmitterUI) Update(s controller.Snapshot) {
	for {
		select {
		case ui.snapshots <- s:
			return
		default:
		}

		select {
		case <-ui.snapshots:
		default:
		}
	}
}

// Write adds console output to the log view
func (ui *TransmitterUI) Write(p []byte) (int, error) {
	ui.logMtx.Lock()
	defer ui.logMtx.Unlock()

	lines := strings.Split(ui.partial+string(p), "\n")
	ui.partial = lines[len(lines)-1]
	ui.logLines = append(ui.logLines, lines[:len(lines)-1]...)
	if len(ui.logLines) > maxLogLines {
		ui.logLines = ui.logLines[len(ui.logLines)-maxLogLines:]
	}
	ui.logDirty = true

	return len(p), nil
}

func (ui *TransmitterUI) logText() (string, bool) {
	ui.logMtx.Lock()
	defer ui.logMtx.Unlock()

	dirty := ui.logDirty
	ui.logDirty = false
	return strings.Join(ui.logLines, "\n"), dirty
}

// Run shows the configuration window when no serial port is configured, then the dashboard
func (ui *TransmitterUI) Run(ctx context.Context, cfg controller.Config, start StartFunc) {
	application := app.NewWithID("com.calvinmclean.rctransmitter")

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	connect := func(cfg controller.Config) {
		w, err := start(cfg)
		if err != nil {
			window := application.NewWindow("RC Transmitter")
			window.Show()
			showError(application, window, err)
			return
		}
		ui.showDashboard(ctx, application, w)
	}

	if cfg.SerialPort == "" {
		configWindow := NewConfigWindow(application)
		configWindow.OnSubmit = connect
		configWindow.Show(&cfg)
	} else {
		connect(cfg)
	}

	application.Run()
}

func createAxisBar(cfg transmitter.Config) *widget.ProgressBar {
	bar := widget.NewProgressBar()
	bar.Min = float64(min(cfg.OutputLow, cfg.OutputHigh))
	bar.Max = float64(max(cfg.OutputLow, cfg.OutputHigh))
	bar.TextFormatter = func() string {
		return fmt.Sprintf("%.0f", bar.Value)
	}
	return bar
}

func createLogAccordion() (*widget.Accordion, *widget.Label) {
	logContent := widget.NewLabel("")
	logScroll := container.NewVScroll(logContent)
	logScroll.SetMinSize(fyne.NewSize(300, 100))

	return widget.NewAccordion(
		widget.NewAccordionItem("Logs", logScroll),
	), logContent
}

func (ui *TransmitterUI) showDashboard(ctx context.Context, application fyne.App, commands io.Writer) {
	cfg := transmitter.DefaultConfig()
	c := &controllerWrapper{writer: commands}

	window := application.NewWindow("RC Transmitter")

	var axisBars [rctransmitter.NumAxes]*widget.ProgressBar
	axisRows := container.NewVBox()
	for _, axis := range rctransmitter.Axes {
		axisBars[axis] = createAxisBar(cfg)
		axisRows.Add(container.NewGridWithColumns(2,
			widget.NewLabel(axis.String()+" ("+axis.Label()+")"),
			axisBars[axis],
		))
	}

	sensitivityBar := widget.NewProgressBar()
	sensitivityBar.Max = float64(cfg.ADCMax)
	sensitivityBar.TextFormatter = func() string {
		return transmitter.Sensitivity{Raw: uint16(sensitivityBar.Value), Max: cfg.ADCMax}.String()
	}

	channelLabel := widget.NewLabel("Channel: -")
	lossLabel := widget.NewLabel("Lost: 0 (0 consecutive)")

	linkText := canvas.NewText(linkUnknown.String(), linkUnknown.color())
	linkText.TextStyle = fyne.TextStyle{Bold: true}

	lastDelivered := newTimer()
	lastDelivered.Go()

	logAccordion, logContent := createLogAccordion()

	contentContainer := container.NewVBox(
		container.NewHBox(
			container.NewPadded(linkText),
			layout.NewSpacer(),
			widget.NewLabel("Since last delivery:"),
			container.NewPadded(lastDelivered.text),
		),
		axisRows,
		container.NewGridWithColumns(2,
			widget.NewLabel("Sensitivity"),
			sensitivityBar,
		),
		container.NewGridWithColumns(2,
			channelLabel,
			lossLabel,
		),
		container.NewGridWithColumns(5,
			widget.NewButton("Status", c.Status),
			widget.NewButton("Reset Losses", c.ResetLosses),
			widget.NewButton("Verbose", c.ToggleVerbose),
			widget.NewButton("Telemetry", c.ToggleTelemetry),
			widget.NewButton("Help", c.Help),
		),
		logAccordion,
	)

	show := func(s controller.Snapshot) {
		for _, axis := range rctransmitter.Axes {
			axisBars[axis].SetValue(float64(s.Values[axis]))
		}
		sensitivityBar.SetValue(float64(s.Sensitivity))
		if s.Channel >= 0 && s.Channel < cfg.NumZones() {
			channelLabel.SetText(fmt.Sprintf("Channel: %d (RF %d)", s.Channel+1, cfg.RFChannel(s.Channel)))
		}
		lossLabel.SetText(fmt.Sprintf("Lost: %d (%d consecutive)", s.TotalLost, s.ConsecutiveLost))

		state := linkStateOf(s)
		linkText.Text = state.String()
		linkText.Color = state.color()
		linkText.Refresh()

		if !s.LastDelivered.IsZero() {
			lastDelivered.Set(s.LastDelivered)
		}
	}

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		defer lastDelivered.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case s := <-ui.snapshots:
				fyne.Do(func() { show(s) })
			case <-ticker.C:
				text, dirty := ui.logText()
				if dirty {
					fyne.Do(func() { logContent.SetText(text) })
				}
			}
		}
	}()

	window.SetContent(contentContainer)
	window.Resize(fyne.NewSize(500, 300))
	window.SetOnClosed(application.Quit)
	window.Show()
}
