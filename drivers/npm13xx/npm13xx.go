// Package npm13xx drives the battery-charger peripheral of the nPM1300 and
// nPM1304 power-management ICs.
//
// Register access goes through three 8-bit banks (charger, ADC, VBUS). The
// transport is abstracted as Bus so the same logic runs over I2C hardware, a
// host i2c-dev node, or a scripted fake in tests. ADC results are 10-bit
// codes packed as an MSB byte plus a 2-bit LSB field. Maths is integer-only
// except the NTC Beta-model inversion, which follows the chip vendor's float
// formulation.
//
// The driver is synchronous request/response: no goroutines, timers or
// retries. Callers serialize access to one Device themselves.
package npm13xx

import "errors"

// Errors returned by the driver. Anything else surfacing from a Device method
// came verbatim from the Bus.
var (
	ErrNotReady     = errors.New("npm13xx: bus not ready")
	ErrNotSupported = errors.New("npm13xx: not supported")
	ErrBurstLength  = errors.New("npm13xx: short ADC result burst")
)

// Bus is the register transport to the PMIC. Implementations provide mutual
// exclusion per call; the driver adds none.
type Bus interface {
	// ReadReg reads one byte from offset within bank base.
	ReadReg(base, offset uint8) (uint8, error)
	// WriteReg writes one byte to offset within bank base.
	WriteReg(base, offset, val uint8) error
	// WriteReg2 writes two related bytes to offset and offset+1.
	WriteReg2(base, offset, msb, lsb uint8) error
	// ReadBurst fills buf from consecutive registers starting at offset.
	ReadBurst(base, offset uint8, buf []byte) error
}

// Config holds the one-shot charger configuration. It is read at Init and
// never mutated by the driver.
//
// Threshold fields are pointers: nil means "leave this threshold
// unprogrammed" (there is no in-band temperature that can stand in for
// "unset").
type Config struct {
	Variant Variant

	TermMicrovolt     int32 // charge termination voltage
	TermWarmMicrovolt int32 // termination voltage in warm region; 0 = same as TermMicrovolt

	CurrentMicroamp        int32  // charge current limit
	DischargeLimitMicroamp int32  // discharge current limit (reported, and discharge full-scale)
	DischargeLimitIdx      *uint8 // index into the variant's discharge-limit table; nil = no table write

	VBUSLimitMicroamp int32 // VBUS input current limit at startup

	ThermistorOhms uint32 // nominal NTC resistance at 25°C
	ThermistorBeta uint16 // NTC Beta coefficient
	ThermistorIdx  uint8  // NTC selector; 0 = no thermistor fitted

	TrickleSel uint8 // trickle voltage selector, pre-resolved
	ITermSel   uint8 // termination current selector, pre-resolved

	ChargingEnable      bool
	VBatLowChargeEnable bool
	DisableRecharge     bool

	// NTC temperature thresholds in millidegrees C.
	ColdMillidegrees *int32
	CoolMillidegrees *int32
	WarmMillidegrees *int32
	HotMillidegrees  *int32

	// Die temperature thresholds in millidegrees C.
	DieStopMillidegrees   *int32
	DieResumeMillidegrees *int32
}

// Sample is the live ADC/status state, replaced wholesale by SampleFetch.
// The zero value is what ChannelGet serves before the first successful fetch.
type Sample struct {
	Voltage uint16 // VBAT, 10-bit code
	Temp    uint16 // NTC, 10-bit code
	DieTemp uint16 // die temperature, 10-bit code
	Current uint16 // IBAT, 10-bit code

	Status   uint8 // charge status register, raw
	Error    uint8 // error reason register, raw
	IBatStat uint8 // battery current status code
	VBusStat uint8 // VBUS status register, raw
}

// Device wraps a Bus connection to one nPM13xx charger instance.
type Device struct {
	bus Bus
	cfg Config
	par variantParams

	sample Sample
}

// New binds a charger instance to a transport. The configuration is captured
// by value; devicetree-style defaults are applied here.
func New(bus Bus, cfg Config) *Device {
	if cfg.TermWarmMicrovolt == 0 {
		cfg.TermWarmMicrovolt = cfg.TermMicrovolt
	}
	return &Device{
		bus: bus,
		cfg: cfg,
		par: cfg.Variant.params(),
	}
}

// Sample returns a copy of the live sample state. Meaningful only after a
// successful SampleFetch.
func (d *Device) Sample() Sample { return d.sample }
