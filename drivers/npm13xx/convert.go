package npm13xx

import (
	"math"

	"powercode-go/x/mathx"
)

// Unit conversions between 10-bit ADC codes, register codes and physical
// quantities. Pure functions; the exported ones are part of the package API
// because callers post-processing raw Samples want the same maths.

// Die temperature conversion constants: mdegC = 394670 - code*3963000/5000.
const (
	dietempOffsetMilli = 394670
	dietempFactorMul   = 3963000
	dietempFactorDiv   = 5000
)

// TempFromNTCCode inverts the thermistor Beta model for a measured 10-bit
// code and returns degrees C.
//
// Precondition: 1 <= code <= 1023. Outside that the log argument leaves its
// domain and the result is garbage; callers must not pass the boundary codes.
func TempFromNTCCode(beta uint16, code uint16) float64 {
	logTerm := math.Log(1024.0/float64(code) - 1.0)
	invTempK := 1.0/298.15 - logTerm/float64(beta)
	return 1.0/invTempK - 273.15
}

// DieTempMilliFromCode converts a die-temperature code to millidegrees C.
// Truncating integer division, exact for the register's resolution.
func DieTempMilliFromCode(code uint16) int32 {
	return dietempOffsetMilli - int32(int64(code)*dietempFactorMul/dietempFactorDiv)
}

// ntcResFromTemp runs the Beta model forward: the NTC resistance in ohms at
// the given temperature. Used at configuration time to derive threshold
// codes, so it is the (approximate) inverse of TempFromNTCCode.
func ntcResFromTemp(thermistorOhms uint32, beta uint16, tempMilli int32) uint32 {
	invT0 := 1.0 / 298.15
	invTempK := 1.0 / (float64(tempMilli)/1000.0 + 273.15)
	return uint32(float64(thermistorOhms) * math.Exp(float64(beta)*(invTempK-invT0)))
}

// ntcCodeFromRes maps an NTC resistance to the 10-bit comparator code.
// Truncating, per the voltage-divider equation 1024*R/(R+R0).
func ntcCodeFromRes(res, thermistorOhms uint32) uint16 {
	return uint16(uint64(res) * 1024 / uint64(res+thermistorOhms))
}

// dietempCodeFromThreshold is the inverse affine of DieTempMilliFromCode,
// round-to-nearest rather than truncating.
func dietempCodeFromThreshold(tempMilli int32) uint16 {
	num := uint32(dietempOffsetMilli-tempMilli) * dietempFactorDiv
	return uint16(mathx.RoundDiv(num, dietempFactorMul))
}

// batteryCurrentMicro scales a 10-bit IBAT code to microamps. The full scale
// depends on the reported battery current status: discharging uses the
// (negative) discharge limit times the variant's factor pair, any charging
// phase uses the charge limit times 125/100, anything else reads as zero.
func (d *Device) batteryCurrentMicro(code uint16, ibatStat uint8) int32 {
	var fullScale int32
	switch ibatStat {
	case IBatStatDischarge:
		fullScale = -d.cfg.DischargeLimitMicroamp * d.par.dischargeFactorNum / d.par.dischargeFactorDen
	case IBatStatChargeTrickle, IBatStatChargeCool, IBatStatChargeNormal:
		fullScale = d.cfg.CurrentMicroamp * chargeFactorNum / chargeFactorDen
	default:
		return 0
	}
	// code <= 1023 and |fullScale| <= 1.12A keep the product inside int64
	// comfortably; the int32 narrowing at the end is exact for those bounds.
	return int32(int64(code) * int64(fullScale) / 1023)
}

// batteryVoltageMilli converts a VBAT code to millivolts: code*5000/1024.
func batteryVoltageMilli(code uint16) int32 {
	return int32(int64(code) * 5000 / 1024)
}
