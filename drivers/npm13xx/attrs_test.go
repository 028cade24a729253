package npm13xx

import (
	"errors"
	"testing"

	"powercode-go/x/linearrange"
)

func TestAttrSetChargingDisable(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, npm1300TestConfig())

	if err := d.AttrSet(ChanDesiredChargingCurrent, AttrConfiguration, 0); err != nil {
		t.Fatalf("disable: %v", err)
	}
	// Exactly one write: EN_CLR. No error clear, no enable.
	want := []busWrite{{ChargerBase, chgOffsetEnClr, []uint8{1}}}
	assertWrites(t, bus.writes, want)
}

func TestAttrSetChargingEnable(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, npm1300TestConfig())

	if err := d.AttrSet(ChanDesiredChargingCurrent, AttrConfiguration, 150_000); err != nil {
		t.Fatalf("enable: %v", err)
	}
	// Latched errors are cleared before the enable, in that order.
	want := []busWrite{
		{ChargerBase, chgOffsetErrClr, []uint8{1}},
		{ChargerBase, chgOffsetEnSet, []uint8{1}},
	}
	assertWrites(t, bus.writes, want)
}

func TestAttrSetChargingEnableClearFails(t *testing.T) {
	boom := errors.New("nak")
	bus := newFakeBus()
	bus.failWrite[regAddr{ChargerBase, chgOffsetErrClr}] = boom
	d := New(bus, npm1300TestConfig())

	if err := d.AttrSet(ChanDesiredChargingCurrent, AttrConfiguration, 150_000); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	// Enable never attempted after a failed clear.
	if len(bus.writes) != 0 {
		t.Fatalf("writes = %+v", bus.writes)
	}
}

func TestAttrSetVBusLimit(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, npm1300TestConfig())

	if err := d.AttrSet(ChanCurrent, AttrConfiguration, 500_000); err != nil {
		t.Fatalf("set limit: %v", err)
	}
	// Limit write, then the apply trigger so it takes effect immediately.
	want := []busWrite{
		{VBusBase, vbusOffsetILim, []uint8{5}},
		{VBusBase, vbusOffsetILimUpdate, []uint8{1}},
	}
	assertWrites(t, bus.writes, want)
}

func TestAttrSetVBusLimitOffStep(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, npm1300TestConfig())

	err := d.AttrSet(ChanCurrent, AttrConfiguration, 550_000)
	if !errors.Is(err, linearrange.ErrNotRepresentable) {
		t.Fatalf("err = %v", err)
	}
	if len(bus.writes) != 0 {
		t.Fatalf("writes on invalid limit: %+v", bus.writes)
	}
}

func TestAttrSetUnsupported(t *testing.T) {
	d := New(newFakeBus(), npm1300TestConfig())
	if err := d.AttrSet(ChanGaugeVoltage, AttrConfiguration, 1); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("channel err = %v", err)
	}
	if err := d.AttrSet(ChanCurrent, AttrUpperThresh, 1); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("attr err = %v", err)
	}
}

func TestAttrGetChargingEnable(t *testing.T) {
	bus := newFakeBus()
	bus.regs[regAddr{ChargerBase, chgOffsetEnSet}] = 1
	d := New(bus, npm1300TestConfig())

	v, err := d.AttrGet(ChanDesiredChargingCurrent, AttrConfiguration)
	if err != nil || v != 1 {
		t.Fatalf("enable attr = (%d, %v)", v, err)
	}
}

func TestAttrGetSupplyCapability(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, npm1300TestConfig())

	cases := []struct {
		detect uint8
		want   int64
	}{
		{0x00, 0},         // no cable
		{0x08, 1_500_000}, // CC indicates high power
		{0x02, 1_500_000},
		{0x01, 500_000}, // default capability
	}
	for _, c := range cases {
		bus.regs[regAddr{VBusBase, vbusOffsetDetect}] = c.detect
		v, err := d.AttrGet(ChanCurrent, AttrUpperThresh)
		if err != nil || v != c.want {
			t.Fatalf("detect %#x = (%d, %v), want %d", c.detect, v, err, c.want)
		}
	}
}

func TestAttrGetVBusStatusBits(t *testing.T) {
	bus := newFakeBus()
	bus.regs[regAddr{VBusBase, vbusOffsetStatus}] = VBusStatusPresent | VBusStatusUndervolt
	d := New(bus, npm1300TestConfig())

	cases := []struct {
		attr Attr
		want int64
	}{
		{AttrVBusPresent, 1},
		{AttrVBusCurrentLimit, 0},
		{AttrVBusOvervoltProt, 0},
		{AttrVBusUndervolt, 1},
		{AttrVBusSuspended, 0},
		{AttrVBusOut, 0},
	}
	for _, c := range cases {
		v, err := d.AttrGet(ChanVBusStatus, c.attr)
		if err != nil || v != c.want {
			t.Fatalf("attr %d = (%d, %v), want %d", c.attr, v, err, c.want)
		}
	}
}

func TestAttrGetUnsupported(t *testing.T) {
	d := New(newFakeBus(), npm1300TestConfig())
	if _, err := d.AttrGet(ChanGaugeVoltage, AttrConfiguration); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("channel err = %v", err)
	}
	if _, err := d.AttrGet(ChanDesiredChargingCurrent, AttrUpperThresh); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("attr err = %v", err)
	}
	if _, err := d.AttrGet(ChanVBusStatus, AttrConfiguration); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("vbus attr err = %v", err)
	}
}
