package npm13xx

// Scripted register-transport fake shared by the driver tests. Writes are
// recorded in order; reads are served from a static register map and a canned
// ADC result block. Errors are injected per (base, offset).

type regAddr struct {
	base, offset uint8
}

type busWrite struct {
	base, offset uint8
	vals         []uint8
}

type fakeBus struct {
	writes []busWrite
	reads  []regAddr
	regs   map[regAddr]uint8
	burst  []byte

	failWrite map[regAddr]error
	failRead  map[regAddr]error
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		regs:      map[regAddr]uint8{},
		failWrite: map[regAddr]error{},
		failRead:  map[regAddr]error{},
	}
}

func (b *fakeBus) ReadReg(base, offset uint8) (uint8, error) {
	a := regAddr{base, offset}
	if err := b.failRead[a]; err != nil {
		return 0, err
	}
	b.reads = append(b.reads, a)
	return b.regs[a], nil
}

func (b *fakeBus) WriteReg(base, offset, val uint8) error {
	a := regAddr{base, offset}
	if err := b.failWrite[a]; err != nil {
		return err
	}
	b.writes = append(b.writes, busWrite{base, offset, []uint8{val}})
	return nil
}

func (b *fakeBus) WriteReg2(base, offset, msb, lsb uint8) error {
	a := regAddr{base, offset}
	if err := b.failWrite[a]; err != nil {
		return err
	}
	b.writes = append(b.writes, busWrite{base, offset, []uint8{msb, lsb}})
	return nil
}

func (b *fakeBus) ReadBurst(base, offset uint8, buf []byte) error {
	a := regAddr{base, offset}
	if err := b.failRead[a]; err != nil {
		return err
	}
	b.reads = append(b.reads, a)
	copy(buf, b.burst)
	return nil
}

// writesAt returns the recorded writes touching [lo, hi] within a bank.
func (b *fakeBus) writesAt(base, lo, hi uint8) []busWrite {
	var out []busWrite
	for _, w := range b.writes {
		if w.base == base && w.offset >= lo && w.offset <= hi {
			out = append(out, w)
		}
	}
	return out
}
