package npm13xx

import "math"

// Channel enumerates the readable quantities served by ChannelGet.
type Channel uint8

const (
	// ChanGaugeVoltage is the battery voltage, µV.
	ChanGaugeVoltage Channel = iota
	// ChanGaugeTemp is the battery (NTC) temperature, µ°C.
	ChanGaugeTemp
	// ChanGaugeAvgCurrent is the battery current, µA (negative = discharge).
	ChanGaugeAvgCurrent
	// ChanChargerStatus is the raw charge status register.
	ChanChargerStatus
	// ChanChargerError is the raw error reason register.
	ChanChargerError
	// ChanDesiredChargingCurrent echoes the configured charge limit, µA.
	ChanDesiredChargingCurrent
	// ChanMaxLoadCurrent echoes the configured discharge limit, µA.
	ChanMaxLoadCurrent
	// ChanDieTemp is the die temperature, µ°C.
	ChanDieTemp
	// ChanVBusStatus is the raw VBUS status register.
	ChanVBusStatus
	// ChanCurrent is the VBUS input current; used with attributes only.
	ChanCurrent
)

// SampleFetch refreshes the live sample from hardware: charge status, error
// reason, the packed ADC result block, then the VBUS status. It also re-arms
// the next conversions; the hardware converts asynchronously, so each fetch
// serves the previous trigger's results (one-fetch latency by design).
//
// The first transport error aborts and is returned; the sample may then be
// partially updated and should not be trusted until a later fetch succeeds.
func (d *Device) SampleFetch() error {
	status, err := d.bus.ReadReg(ChargerBase, chgOffsetChgStat)
	if err != nil {
		return err
	}
	d.sample.Status = status

	reason, err := d.bus.ReadReg(ChargerBase, chgOffsetErrReason)
	if err != nil {
		return err
	}
	d.sample.Error = reason

	var buf [adcResultsLen]byte
	if err := d.bus.ReadBurst(ADCBase, adcOffsetResults, buf[:]); err != nil {
		return err
	}
	if err := decodeResults(buf[:], &d.sample); err != nil {
		return err
	}

	// Arm the next NTC/die and voltage/current conversions. Results land on
	// the next fetch.
	if err := d.bus.WriteReg2(ADCBase, adcOffsetTaskTemp, 1, 1); err != nil {
		return err
	}
	if err := d.bus.WriteReg(ADCBase, adcOffsetTaskVBat, 1); err != nil {
		return err
	}

	vbus, err := d.bus.ReadReg(VBusBase, vbusOffsetStatus)
	if err != nil {
		return err
	}
	d.sample.VBusStat = vbus
	return nil
}

// ChannelGet projects the live sample and the configuration into one channel
// value. Physical channels are micro-units (µV, µ°C, µA); status channels are
// the raw register byte. No hardware I/O happens here, so values reflect the
// last successful SampleFetch.
func (d *Device) ChannelGet(ch Channel) (int64, error) {
	switch ch {
	case ChanGaugeVoltage:
		return int64(batteryVoltageMilli(d.sample.Voltage)) * 1000, nil
	case ChanGaugeTemp:
		if d.cfg.ThermistorIdx == 0 {
			return 0, ErrNotSupported
		}
		t := TempFromNTCCode(d.cfg.ThermistorBeta, d.sample.Temp)
		return int64(math.Round(t * 1e6)), nil
	case ChanGaugeAvgCurrent:
		return int64(d.batteryCurrentMicro(d.sample.Current, d.sample.IBatStat)), nil
	case ChanChargerStatus:
		return int64(d.sample.Status), nil
	case ChanChargerError:
		return int64(d.sample.Error), nil
	case ChanDesiredChargingCurrent:
		return int64(d.cfg.CurrentMicroamp), nil
	case ChanMaxLoadCurrent:
		return int64(d.cfg.DischargeLimitMicroamp), nil
	case ChanDieTemp:
		return int64(DieTempMilliFromCode(d.sample.DieTemp)) * 1000, nil
	case ChanVBusStatus:
		return int64(d.sample.VBusStat), nil
	}
	return 0, ErrNotSupported
}
