// Package mfd is the register-transport hub for nPM13xx PMICs.
//
// The PMIC exposes its peripherals as 8-bit register banks addressed by a
// (base, offset) pair. On the wire every access starts with those two bytes:
//
//	write: Tx(addr, {base, offset, data...})
//	read:  Tx(addr, {base, offset}) then repeated-start read
//
// One hub instance is shared by every peripheral driver on the chip; the
// underlying I2C implementation serializes the transactions.
package mfd

import "tinygo.org/x/drivers"

// Device wraps an I2C connection to one nPM13xx at a fixed address.
type Device struct {
	i2c  drivers.I2C
	addr uint16

	// Fixed write buffer to avoid per-call heap allocations.
	w [4]byte
}

// New creates a hub on an already-configured I2C bus. addr 0 selects the
// chip's default address.
func New(i2c drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = 0x6B
	}
	return &Device{i2c: i2c, addr: addr}
}

// ReadReg reads a single byte register.
func (d *Device) ReadReg(base, offset uint8) (uint8, error) {
	d.w[0] = base
	d.w[1] = offset
	var r [1]byte
	if err := d.i2c.Tx(d.addr, d.w[:2], r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

// WriteReg writes a single byte register.
func (d *Device) WriteReg(base, offset, val uint8) error {
	d.w[0] = base
	d.w[1] = offset
	d.w[2] = val
	return d.i2c.Tx(d.addr, d.w[:3], nil)
}

// WriteReg2 writes val to offset and val2 to offset+1 in one transaction.
func (d *Device) WriteReg2(base, offset, val, val2 uint8) error {
	d.w[0] = base
	d.w[1] = offset
	d.w[2] = val
	d.w[3] = val2
	return d.i2c.Tx(d.addr, d.w[:4], nil)
}

// ReadBurst fills buf from consecutive registers starting at offset.
func (d *Device) ReadBurst(base, offset uint8, buf []byte) error {
	d.w[0] = base
	d.w[1] = offset
	return d.i2c.Tx(d.addr, d.w[:2], buf)
}
