package nrf24

// SPI commands
const (
	cmdReadRegister   = 0x00
	cmdWriteRegister  = 0x20
	cmdWriteTxPayload = 0xA0
	cmdFlushTx        = 0xE1
	cmdFlushRx        = 0xE2
	cmdNop            = 0xFF

	registerMask = 0x1F
)

// Registers
const (
	RegConfig     = 0x00
	RegEnAA       = 0x01
	RegEnRxAddr   = 0x02
	RegSetupAW    = 0x03
	RegSetupRetr  = 0x04
	RegRFCh       = 0x05
	RegRFSetup    = 0x06
	RegStatus     = 0x07
	RegObserveTx  = 0x08
	RegRxAddrP0   = 0x0A
	RegTxAddr     = 0x10
	RegRxPwP0     = 0x11
	RegFIFOStatus = 0x17
	RegDynPD      = 0x1C
	RegFeature    = 0x1D
)

// CONFIG bits
const (
	ConfigPrimRx = 1 << 0
	ConfigPwrUp  = 1 << 1
	ConfigCRCO   = 1 << 2
	ConfigEnCRC  = 1 << 3
)

// STATUS bits
const (
	StatusMaxRT = 1 << 4
	StatusTxDS  = 1 << 5
	StatusRxDR  = 1 << 6

	statusIRQMask = StatusMaxRT | StatusTxDS | StatusRxDR
)

// RF_SETUP bits
const (
	RFSetupPowerMask = 0x06
	rfSetupDRHigh    = 1 << 3
	rfSetupDRLow     = 1 << 5
)

// SETUP_AW value for 5 byte addresses
const setupAW5Bytes = 0x03
