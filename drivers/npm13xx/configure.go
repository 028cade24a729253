package npm13xx

import "powercode-go/x/linearrange"

// Init programs the charger from the captured Config. The sequence is linear
// and fail-fast: the first transport or resolution error aborts the rest and
// is returned, leaving the hardware exactly as the last successful write left
// it. There is no rollback and no retry; a failed Init means the instance is
// not usable.
func (d *Device) Init() error {
	if d.bus == nil {
		return ErrNotReady
	}

	// NTC channel selector, then temperature thresholds.
	if err := d.bus.WriteReg(ADCBase, adcOffsetNTCRSel, d.cfg.ThermistorIdx); err != nil {
		return err
	}
	if err := d.setNTCThresholds(); err != nil {
		return err
	}
	if err := d.setDieTempThresholds(); err != nil {
		return err
	}

	// Termination voltages, each resolved across the two stacked windows.
	idx, err := linearGroupExact(d.par.termVoltRanges, d.cfg.TermMicrovolt)
	if err != nil {
		return err
	}
	if err := d.bus.WriteReg(ChargerBase, chgOffsetVTerm, uint8(idx)); err != nil {
		return err
	}

	idx, err = linearGroupExact(d.par.termVoltRanges, d.cfg.TermWarmMicrovolt)
	if err != nil {
		return err
	}
	if err := d.bus.WriteReg(ChargerBase, chgOffsetVTermR, uint8(idx)); err != nil {
		return err
	}

	// Charge current, allowing rounding down to the closest lower step.
	idx, err = d.par.currentRange.WinIndex(
		d.cfg.CurrentMicroamp-d.par.currentRange.Step+1, d.cfg.CurrentMicroamp)
	if err != nil {
		return err
	}

	if d.cfg.DischargeLimitIdx == nil {
		// Charge current MSB only (nPM1304 path).
		err = d.bus.WriteReg(ChargerBase, chgOffsetISet, uint8(idx))
	} else {
		// Charge current MSB+LSB plus the discharge limit (nPM1300 path).
		// Discharge limits are raw pre-scaled codes looked up by index, not
		// a range resolution; the MSB/LSB split here is div/mod by 2.
		err = d.bus.WriteReg2(ChargerBase, chgOffsetISet, uint8(idx/2), uint8(idx&1))
		if err != nil {
			return err
		}
		lim := d.par.dischargeLimits[*d.cfg.DischargeLimitIdx]
		err = d.bus.WriteReg2(ChargerBase, chgOffsetISetDischg, uint8(lim/2), uint8(lim&1))
	}
	if err != nil {
		return err
	}

	// VBUS startup current limit, exact match only.
	idx, err = vbusCurrentRange.WinIndex(d.cfg.VBUSLimitMicroamp, d.cfg.VBUSLimitMicroamp)
	if err != nil {
		return err
	}
	if err := d.bus.WriteReg(VBusBase, vbusOffsetILimStartup, uint8(idx)); err != nil {
		return err
	}

	// Trickle voltage and termination current selectors arrive pre-resolved.
	if err := d.bus.WriteReg(ChargerBase, chgOffsetTrickleSel, d.cfg.TrickleSel); err != nil {
		return err
	}
	if err := d.bus.WriteReg(ChargerBase, chgOffsetITermSel, d.cfg.ITermSel); err != nil {
		return err
	}

	// Enable battery current measurement and arm the first conversions.
	if err := d.bus.WriteReg(ADCBase, adcOffsetIBatEn, 1); err != nil {
		return err
	}
	if err := d.bus.WriteReg(ADCBase, adcOffsetTaskVBat, 1); err != nil {
		return err
	}
	// NTC and die temperature triggers are adjacent registers; armed together.
	if err := d.bus.WriteReg2(ADCBase, adcOffsetTaskTemp, 1, 1); err != nil {
		return err
	}

	// Automatic temperature measurement while charging.
	if err := d.bus.WriteReg(ADCBase, adcOffsetTaskAuto, 1); err != nil {
		return err
	}

	if d.cfg.VBatLowChargeEnable {
		if err := d.bus.WriteReg(ChargerBase, chgOffsetVBatLowEn, 1); err != nil {
			return err
		}
	}

	// Recharge and NTC disables share one register write.
	var dis uint8
	if d.cfg.DisableRecharge {
		dis |= disSetRechargeBit
	}
	if d.cfg.ThermistorIdx == 0 {
		dis |= disSetNTCBit
	}
	if err := d.bus.WriteReg(ChargerBase, chgOffsetDisSet, dis); err != nil {
		return err
	}

	if d.cfg.ChargingEnable {
		if err := d.bus.WriteReg(ChargerBase, chgOffsetEnSet, 1); err != nil {
			return err
		}
	}

	return nil
}

// setNTCThresholds derives comparator codes for the configured NTC
// temperature thresholds (cold, cool, warm, hot) and writes each as an
// MSB/LSB pair. Unset thresholds are skipped.
func (d *Device) setNTCThresholds() error {
	thresholds := [4]*int32{
		d.cfg.ColdMillidegrees,
		d.cfg.CoolMillidegrees,
		d.cfg.WarmMillidegrees,
		d.cfg.HotMillidegrees,
	}
	for i, t := range thresholds {
		if t == nil {
			continue
		}
		res := ntcResFromTemp(d.cfg.ThermistorOhms, d.cfg.ThermistorBeta, *t)
		msb, lsb := splitCode(ntcCodeFromRes(res, d.cfg.ThermistorOhms))
		if err := d.bus.WriteReg2(ChargerBase, chgOffsetNTCTemps+uint8(i)*2, msb, lsb); err != nil {
			return err
		}
	}
	return nil
}

// setDieTempThresholds writes the charger thermal stop/resume codes.
func (d *Device) setDieTempThresholds() error {
	thresholds := [2]*int32{
		d.cfg.DieStopMillidegrees,
		d.cfg.DieResumeMillidegrees,
	}
	for i, t := range thresholds {
		if t == nil {
			continue
		}
		msb, lsb := splitCode(dietempCodeFromThreshold(*t))
		if err := d.bus.WriteReg2(ChargerBase, chgOffsetDieTemps+uint8(i)*2, msb, lsb); err != nil {
			return err
		}
	}
	return nil
}

// linearGroupExact resolves a value that must land exactly on a step of one
// of the windows.
func linearGroupExact(ranges []linearrange.Range, v int32) (uint16, error) {
	return linearrange.GroupWinIndex(ranges, v, v)
}
