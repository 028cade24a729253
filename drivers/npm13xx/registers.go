// Package npm13xx register map: bank bases, offsets and bitfields for the
// charger, ADC and VBUS blocks.
package npm13xx

const (
	// Default 7-bit TWI address.
	AddressDefault = 0x6B

	// --- Register bank bases ---
	ChargerBase = 0x03
	ADCBase     = 0x05
	VBusBase    = 0x02

	// --- Charger bank offsets ---
	chgOffsetErrClr     = 0x00 // W, clear latched charger errors
	chgOffsetEnSet      = 0x04 // W, enable charging
	chgOffsetEnClr      = 0x05 // W, disable charging
	chgOffsetDisSet     = 0x06 // W, disable-function bits (recharge, NTC)
	chgOffsetISet       = 0x08 // W, charge current limit
	chgOffsetISetDischg = 0x0A // W, discharge current limit
	chgOffsetVTerm      = 0x0C // W, termination voltage
	chgOffsetVTermR     = 0x0D // W, termination voltage, warm region
	chgOffsetTrickleSel = 0x0E // W, trickle voltage selector
	chgOffsetITermSel   = 0x0F // W, termination current selector
	chgOffsetNTCTemps   = 0x10 // W, 4 x MSB/LSB NTC threshold pairs
	chgOffsetDieTemps   = 0x18 // W, 2 x MSB/LSB die temperature threshold pairs
	chgOffsetChgStat    = 0x34 // R, charge status
	chgOffsetErrReason  = 0x36 // R, error reason
	chgOffsetVBatLowEn  = 0x50 // W, allow charging at low battery

	// --- ADC bank offsets ---
	adcOffsetTaskVBat = 0x00 // W, trigger VBAT + IBAT conversion
	adcOffsetTaskTemp = 0x01 // W, trigger NTC conversion (die trigger at +1)
	adcOffsetTaskDie  = 0x02 // W, trigger die temperature conversion
	adcOffsetConfig   = 0x09
	adcOffsetNTCRSel  = 0x0A // W, NTC channel selector
	adcOffsetTaskAuto = 0x0C // W, auto temperature measurement during charging
	adcOffsetResults  = 0x10 // R, packed result block
	adcOffsetIBatEn   = 0x24 // W, enable battery current measurement

	// --- VBUS bank offsets ---
	vbusOffsetILimUpdate  = 0x00 // W, apply new current limit now
	vbusOffsetILim        = 0x01 // W, current limit
	vbusOffsetILimStartup = 0x02 // W, current limit applied on USB insertion
	vbusOffsetDetect      = 0x05 // R, cable/CC detection
	vbusOffsetStatus      = 0x07 // R, VBUS status
)

// DIS_SET register bits.
const (
	disSetRechargeBit = 1 << 0
	disSetNTCBit      = 1 << 1
)

// Battery current status codes reported in the ADC result block.
const (
	IBatStatDischarge     = 0x04
	IBatStatChargeTrickle = 0x0C
	IBatStatChargeCool    = 0x0D
	IBatStatChargeNormal  = 0x0F
)

// VBUS status register bits.
const (
	VBusStatusPresent      = 1 << 0
	VBusStatusCurrentLimit = 1 << 1
	VBusStatusOvervoltProt = 1 << 2
	VBusStatusUndervolt    = 1 << 3
	VBusStatusSuspended    = 1 << 4
	VBusStatusBusOut       = 1 << 5
)

// VBUS detect register: CC1/CC2 bits indicating a 1.5A/3A capable source.
const (
	detectHiMask         = 0x0A
	detectHiCurrentMicro = 1_500_000
	detectLoCurrentMicro = 500_000
)
