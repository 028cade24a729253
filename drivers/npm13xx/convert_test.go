package npm13xx

import (
	"math"
	"testing"
)

func TestNTCCodeRoundTrip(t *testing.T) {
	// Murata-style 10k part.
	const (
		beta = 3380
		r0   = 10_000
	)
	for code := uint16(1); code <= 1023; code++ {
		temp := TempFromNTCCode(beta, code)
		milli := int32(math.Round(temp * 1000))
		back := ntcCodeFromRes(ntcResFromTemp(r0, beta, milli), r0)
		if diff := int(back) - int(code); diff < -1 || diff > 1 {
			t.Fatalf("code %d round-tripped to %d (%.2f°C)", code, back, temp)
		}
	}
}

func TestDieTempRoundTrip(t *testing.T) {
	for _, code := range []uint16{0, 512, 1023} {
		milli := DieTempMilliFromCode(code)
		if back := dietempCodeFromThreshold(milli); back != code {
			t.Fatalf("code %d -> %d mC -> code %d", code, milli, back)
		}
	}
}

func TestDieTempKnownValues(t *testing.T) {
	if got := DieTempMilliFromCode(0); got != 394670 {
		t.Fatalf("code 0 = %d mC", got)
	}
	// 110 C charger-stop threshold: round((394670-110000)*5000/3963000) = 359.
	if got := dietempCodeFromThreshold(110_000); got != 359 {
		t.Fatalf("110C threshold code = %d, want 359", got)
	}
}

func TestBatteryVoltage(t *testing.T) {
	if got := batteryVoltageMilli(1024); got != 5000 {
		t.Fatalf("full-scale voltage = %d mV", got)
	}
	if got := batteryVoltageMilli(0); got != 0 {
		t.Fatalf("zero code voltage = %d mV", got)
	}
	if got := batteryVoltageMilli(341); got != 1665 {
		t.Fatalf("341 code voltage = %d mV", got)
	}
}

func TestBatteryCurrent(t *testing.T) {
	d := New(nil, Config{
		Variant:                NPM1300,
		CurrentMicroamp:        800_000,
		DischargeLimitMicroamp: 1_000_000,
	})

	// Full-scale discharge: -1A * 112/100.
	if got := d.batteryCurrentMicro(1023, IBatStatDischarge); got != -1_120_000 {
		t.Fatalf("discharge full scale = %d uA", got)
	}
	// Full-scale charge: 800mA * 125/100.
	if got := d.batteryCurrentMicro(1023, IBatStatChargeNormal); got != 1_000_000 {
		t.Fatalf("charge full scale = %d uA", got)
	}
	if got := d.batteryCurrentMicro(512, IBatStatChargeCool); got != 512*1_000_000/1023 {
		t.Fatalf("half-scale charge = %d uA", got)
	}
	if got := d.batteryCurrentMicro(0, IBatStatChargeTrickle); got != 0 {
		t.Fatalf("zero code = %d uA", got)
	}
	// Unknown status reads as zero.
	if got := d.batteryCurrentMicro(1023, 0x00); got != 0 {
		t.Fatalf("unknown status = %d uA", got)
	}
}

func TestBatteryCurrentVariantFactors(t *testing.T) {
	d := New(nil, Config{
		Variant:                NPM1304,
		CurrentMicroamp:        100_000,
		DischargeLimitMicroamp: 125_000,
	})
	// -125mA * 415/400.
	if got := d.batteryCurrentMicro(1023, IBatStatDischarge); got != -129_687 {
		t.Fatalf("npm1304 discharge full scale = %d uA", got)
	}
}
