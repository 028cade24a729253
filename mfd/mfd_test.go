package mfd

import (
	"bytes"
	"errors"
	"testing"

	"tinygo.org/x/drivers"

	"powercode-go/drivers/npm13xx"
)

// Compile-time checks.
var (
	_ npm13xx.Bus = (*Device)(nil)
	_ drivers.I2C = (*recordingI2C)(nil)
)

type i2cTx struct {
	addr uint16
	w    []byte
	rlen int
}

type recordingI2C struct {
	txs  []i2cTx
	read []byte
	err  error
}

func (f *recordingI2C) Tx(addr uint16, w, r []byte) error {
	f.txs = append(f.txs, i2cTx{addr: addr, w: append([]byte(nil), w...), rlen: len(r)})
	if f.err != nil {
		return f.err
	}
	copy(r, f.read)
	return nil
}

func TestReadRegFraming(t *testing.T) {
	i2c := &recordingI2C{read: []byte{0x42}}
	d := New(i2c, 0)

	v, err := d.ReadReg(0x03, 0x34)
	if err != nil || v != 0x42 {
		t.Fatalf("ReadReg = (%#x, %v)", v, err)
	}
	tx := i2c.txs[0]
	if tx.addr != 0x6B {
		t.Fatalf("default address = %#x", tx.addr)
	}
	if !bytes.Equal(tx.w, []byte{0x03, 0x34}) || tx.rlen != 1 {
		t.Fatalf("tx = %+v", tx)
	}
}

func TestWriteRegFraming(t *testing.T) {
	i2c := &recordingI2C{}
	d := New(i2c, 0x40)

	if err := d.WriteReg(0x05, 0x0A, 1); err != nil {
		t.Fatalf("WriteReg: %v", err)
	}
	if err := d.WriteReg2(0x05, 0x01, 1, 1); err != nil {
		t.Fatalf("WriteReg2: %v", err)
	}

	if tx := i2c.txs[0]; tx.addr != 0x40 || !bytes.Equal(tx.w, []byte{0x05, 0x0A, 1}) || tx.rlen != 0 {
		t.Fatalf("write tx = %+v", tx)
	}
	if tx := i2c.txs[1]; !bytes.Equal(tx.w, []byte{0x05, 0x01, 1, 1}) {
		t.Fatalf("write2 tx = %+v", tx)
	}
}

func TestReadBurstFraming(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	i2c := &recordingI2C{read: payload}
	d := New(i2c, 0)

	buf := make([]byte, len(payload))
	if err := d.ReadBurst(0x05, 0x10, buf); err != nil {
		t.Fatalf("ReadBurst: %v", err)
	}
	if !bytes.Equal(buf, payload) {
		t.Fatalf("burst = %v", buf)
	}
	if tx := i2c.txs[0]; !bytes.Equal(tx.w, []byte{0x05, 0x10}) || tx.rlen != len(payload) {
		t.Fatalf("burst tx = %+v", tx)
	}
}

func TestTransportErrorPropagates(t *testing.T) {
	boom := errors.New("arbitration lost")
	d := New(&recordingI2C{err: boom}, 0)

	if _, err := d.ReadReg(0x03, 0x34); !errors.Is(err, boom) {
		t.Fatalf("read err = %v", err)
	}
	if err := d.WriteReg(0x03, 0x04, 1); !errors.Is(err, boom) {
		t.Fatalf("write err = %v", err)
	}
}
