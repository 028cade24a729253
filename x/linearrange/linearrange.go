// Package linearrange maps physical quantities onto quantized register steps.
//
// A Range describes a linear window: value(idx) = Min + (idx-MinIdx)*Step for
// idx in [MinIdx, MaxIdx]. Devices commonly stack several windows (for example
// a coarse region followed by a fine one); Group resolution walks the windows
// in order and returns the first hit.
package linearrange

import (
	"errors"

	"powercode-go/x/mathx"
)

// ErrNotRepresentable is returned when no step of the range (or group) falls
// inside the requested window.
var ErrNotRepresentable = errors.New("linearrange: value not representable")

// Range is a linear window of register steps. Integer-only.
type Range struct {
	Min    int32  // value at MinIdx
	Step   int32  // value increment per index
	MinIdx uint16 // first valid index
	MaxIdx uint16 // last valid index
}

// MaxValue returns the value at MaxIdx.
func (r Range) MaxValue() int32 {
	return r.Min + r.Step*int32(r.MaxIdx-r.MinIdx)
}

// Value returns the physical value represented by idx. Indices outside
// [MinIdx, MaxIdx] are the caller's mistake; no clamping is applied.
func (r Range) Value(idx uint16) int32 {
	return r.Min + r.Step*int32(idx-r.MinIdx)
}

// WinIndex returns the lowest index whose value lies inside [lo, hi].
// An exact-match lookup passes lo == hi == v; a round-down lookup passes
// [v-Step+1, v] so the result snaps to the highest step not above v.
func (r Range) WinIndex(lo, hi int32) (uint16, error) {
	if hi < r.Min || lo > r.MaxValue() {
		return 0, ErrNotRepresentable
	}
	if lo <= r.Min {
		return r.MinIdx, nil
	}
	if r.Step == 0 {
		return 0, ErrNotRepresentable
	}
	// Lowest step with value >= lo.
	idx := r.MinIdx + uint16(mathx.CeilDiv(uint32(lo-r.Min), uint32(r.Step)))
	if r.Value(idx) > hi {
		return 0, ErrNotRepresentable
	}
	return idx, nil
}

// GroupWinIndex resolves [lo, hi] against an ordered set of windows, returning
// the index from the first window that can represent it.
func GroupWinIndex(ranges []Range, lo, hi int32) (uint16, error) {
	for _, r := range ranges {
		if idx, err := r.WinIndex(lo, hi); err == nil {
			return idx, nil
		}
	}
	return 0, ErrNotRepresentable
}
