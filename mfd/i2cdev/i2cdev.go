//go:build linux

// Package i2cdev implements the drivers.I2C transaction interface on top of a
// Linux /dev/i2c-* node, using combined I2C_RDWR transfers so that a write
// followed by a read happens under one repeated start. That property is what
// register-addressed devices such as the nPM13xx require.
package i2cdev

import (
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl numbers and message flags from linux/i2c-dev.h and linux/i2c.h.
const (
	i2cRdwr  = 0x0707
	i2cMsgRd = 0x0001
)

// i2cMsg mirrors struct i2c_msg.
type i2cMsg struct {
	addr  uint16
	flags uint16
	len   uint16
	buf   uintptr
}

// i2cRdwrData mirrors struct i2c_rdwr_ioctl_data.
type i2cRdwrData struct {
	msgs  uintptr
	nmsgs uint32
}

// Bus is one open i2c-dev node.
type Bus struct {
	f *os.File
}

// Open opens an adapter node, e.g. "/dev/i2c-1".
func Open(path string) (*Bus, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o600)
	if err != nil {
		return nil, err
	}
	return &Bus{f: f}, nil
}

// Close releases the adapter.
func (b *Bus) Close() error { return b.f.Close() }

// Tx performs a write and/or read transaction with addr. When both w and r
// are non-empty the read follows the write under a repeated start, without
// releasing the bus in between.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	var msgs [2]i2cMsg
	n := 0
	if len(w) > 0 {
		msgs[n] = i2cMsg{addr: addr, len: uint16(len(w)), buf: uintptr(unsafe.Pointer(&w[0]))}
		n++
	}
	if len(r) > 0 {
		msgs[n] = i2cMsg{addr: addr, flags: i2cMsgRd, len: uint16(len(r)), buf: uintptr(unsafe.Pointer(&r[0]))}
		n++
	}
	if n == 0 {
		return nil
	}

	data := i2cRdwrData{msgs: uintptr(unsafe.Pointer(&msgs[0])), nmsgs: uint32(n)}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, b.f.Fd(), i2cRdwr, uintptr(unsafe.Pointer(&data)))
	runtime.KeepAlive(w)
	runtime.KeepAlive(r)
	runtime.KeepAlive(&msgs)
	if errno != 0 {
		return errno
	}
	return nil
}
