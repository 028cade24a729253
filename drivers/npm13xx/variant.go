package npm13xx

import "powercode-go/x/linearrange"

// Variant selects the chip-specific constant bundle. The nPM1300 and nPM1304
// chargers share the register map but differ in voltage/current ranges,
// discharge full-scale factors and the discrete discharge-limit table.
type Variant uint8

const (
	NPM1300 Variant = iota
	NPM1304
)

func (v Variant) String() string {
	switch v {
	case NPM1300:
		return "npm1300"
	case NPM1304:
		return "npm1304"
	}
	return "unknown"
}

type variantParams struct {
	// Termination voltage: two stacked windows with a gap between them.
	termVoltRanges []linearrange.Range
	// Charge current limit, one window.
	currentRange linearrange.Range
	// Full-scale discharge current = limit * num / den.
	dischargeFactorNum int32
	dischargeFactorDen int32
	// Raw register codes for the allowed discharge limits, indexed by
	// DischargeLimitIdx. Pre-scaled values, deliberately not a linear range.
	dischargeLimits []uint16
}

var npm1300Params = variantParams{
	termVoltRanges: []linearrange.Range{
		{Min: 3_500_000, Step: 50_000, MinIdx: 0, MaxIdx: 3},
		{Min: 4_000_000, Step: 50_000, MinIdx: 4, MaxIdx: 13},
	},
	currentRange:       linearrange.Range{Min: 32_000, Step: 2_000, MinIdx: 16, MaxIdx: 400},
	dischargeFactorNum: 112,
	dischargeFactorDen: 100,
	dischargeLimits:    []uint16{84, 415},
}

var npm1304Params = variantParams{
	termVoltRanges: []linearrange.Range{
		{Min: 3_600_000, Step: 50_000, MinIdx: 0, MaxIdx: 1},
		{Min: 4_000_000, Step: 50_000, MinIdx: 2, MaxIdx: 15},
	},
	currentRange:       linearrange.Range{Min: 4_000, Step: 500, MinIdx: 8, MaxIdx: 200},
	dischargeFactorNum: 415,
	dischargeFactorDen: 400,
}

func (v Variant) params() variantParams {
	if v == NPM1304 {
		return npm1304Params
	}
	return npm1300Params
}

// Full-scale charge current = limit * 125/100, both variants.
const (
	chargeFactorNum = 125
	chargeFactorDen = 100
)

// VBUS input current limit: 100mA..1.5A in 100mA steps, both variants.
var vbusCurrentRange = linearrange.Range{Min: 100_000, Step: 100_000, MinIdx: 1, MaxIdx: 15}
