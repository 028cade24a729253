package npm13xx

// ADC result block layout and 10-bit code packing.
//
// One burst read of adcResultsLen bytes returns the battery current status
// followed by the MSB bytes of each channel and two shared LSB bytes packing
// the low 2 bits of up to four channels each.

const adcResultsLen = 11

// Byte positions within the result block.
const (
	resIBatStat = 0  // battery current status
	resMSBVBat  = 1  // VBAT bits 9:2
	resMSBNTC   = 2  // NTC bits 9:2
	resMSBDie   = 3  // die temperature bits 9:2
	resMSBVSys  = 4  // VSYS, unused here
	resLSBA     = 5  // low bits: VBAT, NTC, die, VSYS
	resMSBIBat  = 8  // IBAT bits 9:2
	resMSBVBus  = 9  // VBUS, unused here
	resLSBB     = 10 // low bits: IBAT, VBUS
)

// Positions 6 and 7 are reserved.

// LSB field shifts within the shared LSB bytes.
const (
	lsbShiftVBat = 0 // in lsb_a
	lsbShiftNTC  = 2 // in lsb_a
	lsbShiftDie  = 4 // in lsb_a
	lsbShiftIBat = 4 // in lsb_b
)

const (
	codeMSBShift = 2
	codeLSBMask  = 0x03
)

// adcCode assembles a 10-bit code from an MSB byte and a 2-bit field of a
// shared LSB byte.
func adcCode(msb, lsb uint8, lsbShift uint) uint16 {
	return uint16(msb)<<codeMSBShift | uint16((lsb>>lsbShift)&codeLSBMask)
}

// splitCode is the write-side counterpart: a 10-bit threshold code becomes an
// MSB byte plus a 2-bit LSB byte for a WriteReg2 pair.
func splitCode(code uint16) (msb, lsb uint8) {
	return uint8(code >> codeMSBShift), uint8(code & codeLSBMask)
}

// decodeResults unpacks a raw result block into the sample's code fields,
// leaving the status registers read elsewhere untouched.
func decodeResults(buf []byte, s *Sample) error {
	if len(buf) < adcResultsLen {
		return ErrBurstLength
	}
	s.Voltage = adcCode(buf[resMSBVBat], buf[resLSBA], lsbShiftVBat)
	s.Temp = adcCode(buf[resMSBNTC], buf[resLSBA], lsbShiftNTC)
	s.DieTemp = adcCode(buf[resMSBDie], buf[resLSBA], lsbShiftDie)
	s.Current = adcCode(buf[resMSBIBat], buf[resLSBB], lsbShiftIBat)
	s.IBatStat = buf[resIBatStat]
	return nil
}
