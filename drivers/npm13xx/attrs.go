package npm13xx

// Attr enumerates the runtime-tunable attributes.
type Attr uint8

const (
	// AttrConfiguration selects the configuration-style attribute of a
	// channel: charging enable on ChanDesiredChargingCurrent, current limit
	// on ChanCurrent.
	AttrConfiguration Attr = iota
	// AttrUpperThresh reads the supply capability derived from cable detect.
	AttrUpperThresh
	// VBUS status sub-attributes, read-only booleans.
	AttrVBusPresent
	AttrVBusCurrentLimit
	AttrVBusOvervoltProt
	AttrVBusUndervolt
	AttrVBusSuspended
	AttrVBusOut
)

// AttrGet reads one attribute directly from hardware, independent of the
// cached sample. Booleans read as 0/1, currents as µA.
func (d *Device) AttrGet(ch Channel, attr Attr) (int64, error) {
	switch ch {
	case ChanDesiredChargingCurrent:
		if attr != AttrConfiguration {
			return 0, ErrNotSupported
		}
		v, err := d.bus.ReadReg(ChargerBase, chgOffsetEnSet)
		if err != nil {
			return 0, err
		}
		return int64(v), nil

	case ChanCurrent:
		if attr != AttrUpperThresh {
			return 0, ErrNotSupported
		}
		v, err := d.bus.ReadReg(VBusBase, vbusOffsetDetect)
		if err != nil {
			return 0, err
		}
		switch {
		case v == 0:
			// No charger connected.
			return 0, nil
		case v&detectHiMask != 0:
			// CC1 or CC2 indicate 1.5A or 3A capability.
			return detectHiCurrentMicro, nil
		default:
			return detectLoCurrentMicro, nil
		}

	case ChanVBusStatus:
		var mask uint8
		switch attr {
		case AttrVBusPresent:
			mask = VBusStatusPresent
		case AttrVBusCurrentLimit:
			mask = VBusStatusCurrentLimit
		case AttrVBusOvervoltProt:
			mask = VBusStatusOvervoltProt
		case AttrVBusUndervolt:
			mask = VBusStatusUndervolt
		case AttrVBusSuspended:
			mask = VBusStatusSuspended
		case AttrVBusOut:
			mask = VBusStatusBusOut
		default:
			return 0, ErrNotSupported
		}
		v, err := d.bus.ReadReg(VBusBase, vbusOffsetStatus)
		if err != nil {
			return 0, err
		}
		if v&mask != 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 0, ErrNotSupported
}

// AttrSet writes one attribute. Two channels are settable:
//
//   - ChanDesiredChargingCurrent: value 0 disables charging with a single
//     write; any other value clears latched errors first and then enables,
//     in that order, so a stale error cannot block the enable. If the clear
//     fails the enable is never attempted.
//   - ChanCurrent: microamp resolves through the exact-match VBUS range,
//     then the limit write is followed by the apply trigger so it takes
//     effect immediately rather than on the next USB removal.
func (d *Device) AttrSet(ch Channel, attr Attr, microamp int64) error {
	if attr != AttrConfiguration {
		return ErrNotSupported
	}

	switch ch {
	case ChanDesiredChargingCurrent:
		if microamp == 0 {
			return d.bus.WriteReg(ChargerBase, chgOffsetEnClr, 1)
		}
		if err := d.bus.WriteReg(ChargerBase, chgOffsetErrClr, 1); err != nil {
			return err
		}
		return d.bus.WriteReg(ChargerBase, chgOffsetEnSet, 1)

	case ChanCurrent:
		idx, err := vbusCurrentRange.WinIndex(int32(microamp), int32(microamp))
		if err != nil {
			return err
		}
		if err := d.bus.WriteReg(VBusBase, vbusOffsetILim, uint8(idx)); err != nil {
			return err
		}
		return d.bus.WriteReg(VBusBase, vbusOffsetILimUpdate, 1)
	}
	return ErrNotSupported
}
