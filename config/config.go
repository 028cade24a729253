// Package config loads the static charger description for one nPM13xx
// instance. It plays the role the devicetree binding plays on firmware
// builds: enumerated selectors are written as their physical values here and
// resolved to register selector indices once, at load time.
package config

import (
	"encoding/json"
	"os"

	"powercode-go/drivers/npm13xx"
	"powercode-go/errcode"
	"powercode-go/x/mathx"
)

// File is the on-disk document.
type File struct {
	Bus     string  `json:"bus"`               // i2c adapter node, e.g. "/dev/i2c-1"
	Address uint16  `json:"address,omitempty"` // 7-bit address; 0 = chip default
	Charger Charger `json:"charger"`
}

// Charger mirrors the nordic,npm13xx-charger binding properties. Optional
// thresholds are pointers; absent means "do not program".
type Charger struct {
	Variant string `json:"variant"` // "npm1300" or "npm1304"

	TermMicrovolt     int32 `json:"term_microvolt"`
	TermWarmMicrovolt int32 `json:"term_warm_microvolt,omitempty"`

	CurrentMicroamp        int32 `json:"current_microamp"`
	DischargeLimitMicroamp int32 `json:"dischg_limit_microamp,omitempty"`

	VBUSLimitMicroamp int32 `json:"vbus_limit_microamp"`

	ThermistorOhms uint32 `json:"thermistor_ohms"` // 0 = no thermistor
	ThermistorBeta uint16 `json:"thermistor_beta,omitempty"`

	TrickleMicrovolt   uint32 `json:"trickle_microvolt,omitempty"`    // 2900000 (default) or 2500000
	TermCurrentPercent uint8  `json:"term_current_percent,omitempty"` // 10 (default) or 20

	ChargingEnable      bool `json:"charging_enable,omitempty"`
	VBatLowChargeEnable bool `json:"vbatlow_charge_enable,omitempty"`
	DisableRecharge     bool `json:"disable_recharge,omitempty"`

	ThermistorColdMillidegrees *int32 `json:"thermistor_cold_millidegrees,omitempty"`
	ThermistorCoolMillidegrees *int32 `json:"thermistor_cool_millidegrees,omitempty"`
	ThermistorWarmMillidegrees *int32 `json:"thermistor_warm_millidegrees,omitempty"`
	ThermistorHotMillidegrees  *int32 `json:"thermistor_hot_millidegrees,omitempty"`

	DieTempStopMillidegrees   *int32 `json:"dietemp_stop_millidegrees,omitempty"`
	DieTempResumeMillidegrees *int32 `json:"dietemp_resume_millidegrees,omitempty"`
}

func invalid(op, msg string) error {
	return &errcode.E{C: errcode.InvalidParams, Op: op, Msg: msg}
}

// Load parses and validates a document.
func Load(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "config.Load", Msg: "bad JSON", Err: err}
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// FromFile reads and parses path.
func FromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

func (f *File) validate() error {
	c := &f.Charger
	switch c.Variant {
	case "npm1300", "npm1304":
	default:
		return invalid("config.validate", "variant must be npm1300 or npm1304")
	}
	if c.TermMicrovolt == 0 {
		return invalid("config.validate", "term_microvolt is required")
	}
	if c.CurrentMicroamp == 0 {
		return invalid("config.validate", "current_microamp is required")
	}
	if _, err := thermistorIdx(c.ThermistorOhms); err != nil {
		return err
	}
	if c.ThermistorOhms != 0 && c.ThermistorBeta == 0 {
		return invalid("config.validate", "thermistor_beta is required with a thermistor")
	}
	if _, err := trickleSel(c.TrickleMicrovolt); err != nil {
		return err
	}
	if _, err := itermSel(c.TermCurrentPercent); err != nil {
		return err
	}
	if c.Variant == "npm1300" {
		if _, err := dischargeLimitIdx(c.DischargeLimitMicroamp); err != nil {
			return err
		}
	}
	return nil
}

// thermistorIdx maps the fitted NTC's nominal resistance to the ADC's
// selector index. 0 ohms means no thermistor.
func thermistorIdx(ohms uint32) (uint8, error) {
	switch ohms {
	case 0:
		return 0, nil
	case 10_000:
		return 1, nil
	case 47_000:
		return 2, nil
	case 100_000:
		return 3, nil
	}
	return 0, invalid("config.thermistorIdx", "thermistor_ohms must be 0, 10k, 47k or 100k")
}

func trickleSel(microvolt uint32) (uint8, error) {
	switch microvolt {
	case 0, 2_900_000:
		return 0, nil
	case 2_500_000:
		return 1, nil
	}
	return 0, invalid("config.trickleSel", "trickle_microvolt must be 2900000 or 2500000")
}

func itermSel(percent uint8) (uint8, error) {
	switch percent {
	case 0, 10:
		return 0, nil
	case 20:
		return 1, nil
	}
	return 0, invalid("config.itermSel", "term_current_percent must be 10 or 20")
}

// dischargeLimitIdx maps an nPM1300 discharge limit to its index in the
// discrete table of allowed limits.
func dischargeLimitIdx(microamp int32) (uint8, error) {
	switch microamp {
	case 200_000:
		return 0, nil
	case 1_000_000:
		return 1, nil
	}
	return 0, invalid("config.dischargeLimitIdx", "dischg_limit_microamp must be 200000 or 1000000")
}

// Driver resolves the document into the driver's configuration.
func (f *File) Driver() (npm13xx.Config, error) {
	c := &f.Charger

	var variant npm13xx.Variant
	switch c.Variant {
	case "npm1300":
		variant = npm13xx.NPM1300
	case "npm1304":
		variant = npm13xx.NPM1304
	default:
		return npm13xx.Config{}, invalid("config.Driver", "variant must be npm1300 or npm1304")
	}

	thermIdx, err := thermistorIdx(c.ThermistorOhms)
	if err != nil {
		return npm13xx.Config{}, err
	}
	trickle, err := trickleSel(c.TrickleMicrovolt)
	if err != nil {
		return npm13xx.Config{}, err
	}
	iterm, err := itermSel(c.TermCurrentPercent)
	if err != nil {
		return npm13xx.Config{}, err
	}

	cfg := npm13xx.Config{
		Variant:                variant,
		TermMicrovolt:          c.TermMicrovolt,
		TermWarmMicrovolt:      c.TermWarmMicrovolt,
		CurrentMicroamp:        c.CurrentMicroamp,
		DischargeLimitMicroamp: c.DischargeLimitMicroamp,
		VBUSLimitMicroamp:      c.VBUSLimitMicroamp,
		ThermistorOhms:         c.ThermistorOhms,
		ThermistorBeta:         c.ThermistorBeta,
		ThermistorIdx:          thermIdx,
		TrickleSel:             trickle,
		ITermSel:               iterm,
		ChargingEnable:         c.ChargingEnable,
		VBatLowChargeEnable:    c.VBatLowChargeEnable,
		DisableRecharge:        c.DisableRecharge,
		ColdMillidegrees:       c.ThermistorColdMillidegrees,
		CoolMillidegrees:       c.ThermistorCoolMillidegrees,
		WarmMillidegrees:       c.ThermistorWarmMillidegrees,
		HotMillidegrees:        c.ThermistorHotMillidegrees,
		DieStopMillidegrees:    c.DieTempStopMillidegrees,
		DieResumeMillidegrees:  c.DieTempResumeMillidegrees,
	}

	if variant == npm13xx.NPM1300 {
		idx, err := dischargeLimitIdx(c.DischargeLimitMicroamp)
		if err != nil {
			return npm13xx.Config{}, err
		}
		cfg.DischargeLimitIdx = &idx
	} else if cfg.DischargeLimitMicroamp == 0 {
		// nPM1304 has a fixed discharge limit.
		cfg.DischargeLimitMicroamp = 125_000
	}

	// Sanity-check the correctable fields rather than failing: thresholds
	// outside the NTC code domain cannot produce a valid comparator code.
	for _, t := range []*int32{
		cfg.ColdMillidegrees, cfg.CoolMillidegrees, cfg.WarmMillidegrees, cfg.HotMillidegrees,
	} {
		if t != nil && !mathx.Between(*t, -40_000, 125_000) {
			return npm13xx.Config{}, invalid("config.Driver", "NTC threshold outside -40..125 C")
		}
	}

	return cfg, nil
}
