package device

import (
	"errors"
	"testing"

	"github.com/calvinmclean/rctransmitter/nrf24"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRadio(t *testing.T) {
	chip := &nrf24.FakeChip{}
	dev := nrf24.New(chip, chip.SetCSN, chip.SetCE)

	require.NoError(t, SetupRadio(dev, DefaultRadioConfig()))

	assert.Zero(t, chip.Register(nrf24.RegRFSetup)&nrf24.RFSetupPowerMask, "minimum power")
	assert.NotZero(t, chip.Register(nrf24.RegEnAA), "auto-ack enabled")
	assert.Equal(t, []byte("00001"), chip.Registers[nrf24.RegTxAddr])
	assert.Equal(t, []byte("00001"), chip.Registers[nrf24.RegRxAddrP0])
	assert.Equal(t, byte(8), chip.Register(nrf24.RegRxPwP0))
	assert.Zero(t, chip.Register(nrf24.RegConfig)&nrf24.ConfigPrimRx, "transmit mode")
	assert.NotZero(t, chip.Register(nrf24.RegConfig)&nrf24.ConfigPwrUp, "powered up")
	assert.False(t, chip.CEHigh)
}

func TestSetupRadioErrors(t *testing.T) {
	tests := []struct {
		name    string
		chip    *nrf24.FakeChip
		wantErr string
	}{
		{"NotConnected", &nrf24.FakeChip{Absent: true}, "error configuring radio: " + nrf24.ErrNotConnected.Error()},
		{"BusError", &nrf24.FakeChip{Err: errors.New("bus fault")}, "error configuring radio: bus fault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := nrf24.New(tt.chip, tt.chip.SetCSN, tt.chip.SetCE)
			assert.EqualError(t, SetupRadio(dev, DefaultRadioConfig()), tt.wantErr)
		})
	}
}
