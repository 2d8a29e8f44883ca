// Package bitbuf provides bit-granular reads and writes over a fixed byte
// buffer: integers of arbitrary width up to 32 bits, floats, booleans, raw
// byte ranges and strings, all addressable at any bit offset with selectable
// endianness. View is the low-level engine; Stream layers an auto-advancing
// cursor with sub-stream carving on top of it.
package bitbuf

import (
	"math"

	"github.com/rawbytedev/bitbuf/internal/bitops"
)

// View is a bit-addressed window over a byte buffer. It borrows the buffer
// without copying; the buffer must outlive the View and every Stream sharing
// it.
//
// BigEndian selects bit ordering for all subsequent operations and may be
// flipped at any time, mid-parse included. In big-endian mode the most
// significant bits of a value come from the lowest buffer address; in
// little-endian mode the least significant bits do.
type View struct {
	data      []byte
	BigEndian bool
}

// NewView returns a View over the full extent of buf.
func NewView(buf []byte) *View {
	return &View{data: buf, BigEndian: true}
}

// NewViewRange returns a View over byteLen bytes of buf starting at byteOff.
func NewViewRange(buf []byte, byteOff, byteLen int) (*View, error) {
	if byteOff < 0 || byteLen < 0 || byteOff+byteLen > len(buf) {
		return nil, ErrRange
	}
	return &View{data: buf[byteOff : byteOff+byteLen], BigEndian: true}, nil
}

// Len returns the view's length in bytes.
func (v *View) Len() int { return len(v.data) }

// BitLen returns the view's addressable length in bits.
func (v *View) BitLen() int { return len(v.data) * 8 }

func (v *View) checkSpan(off, bits int) error {
	if off < 0 || off+bits > len(v.data)*8 {
		return ErrOutOfRange
	}
	return nil
}

// Uint reads width bits at bit offset off and returns them as an unsigned
// value in the low bits of the result. Width must be in [1,32].
func (v *View) Uint(off, width int) (uint32, error) {
	if width < 1 || width > 32 {
		return 0, ErrBitWidth
	}
	if err := v.checkSpan(off, width); err != nil {
		return 0, err
	}
	var value uint32
	done := 0
	for bits := width; bits > 0; {
		bitOff := off & 7
		n := min(bits, 8-bitOff)
		mask := byte(1<<n - 1)
		cur := v.data[off>>3]
		if v.BigEndian {
			chunk := cur >> (8 - bitOff - n) & mask
			value = value<<n | uint32(chunk)
		} else {
			chunk := cur >> bitOff & mask
			value |= uint32(chunk) << done
		}
		off += n
		bits -= n
		done += n
	}
	return value, nil
}

// Int reads width bits at off as a two's-complement signed value.
func (v *View) Int(off, width int) (int32, error) {
	u, err := v.Uint(off, width)
	if err != nil {
		return 0, err
	}
	return bitops.SignExtend(u, width), nil
}

// SetUint writes the width lowest bits of val at bit offset off. The buffer
// is untouched when the span is out of range.
func (v *View) SetUint(off int, val uint32, width int) error {
	if width < 1 || width > 32 {
		return ErrBitWidth
	}
	if err := v.checkSpan(off, width); err != nil {
		return err
	}
	val &= bitops.Mask32(width)
	done := 0
	for bits := width; bits > 0; {
		bitOff := off & 7
		n := min(bits, 8-bitOff)
		mask := byte(1<<n - 1)
		var chunk byte
		var shift int
		if v.BigEndian {
			chunk = byte(val>>(bits-n)) & mask
			shift = 8 - bitOff - n
		} else {
			chunk = byte(val>>done) & mask
			shift = bitOff
		}
		i := off >> 3
		v.data[i] = v.data[i]&^(mask<<shift) | chunk<<shift
		off += n
		bits -= n
		done += n
	}
	return nil
}

// SetInt writes the width lowest bits of val. Bit patterns are
// width-equivalent, so this is SetUint under a signed type.
func (v *View) SetInt(off int, val int32, width int) error {
	return v.SetUint(off, uint32(val), width)
}

// Fixed-width accessors. All of them are thin wrappers over Uint/SetUint with
// the type's bit width.

func (v *View) Bool(off int) (bool, error) {
	u, err := v.Uint(off, 1)
	return u != 0, err
}

func (v *View) SetBool(off int, b bool) error {
	var u uint32
	if b {
		u = 1
	}
	return v.SetUint(off, u, 1)
}

func (v *View) Uint8(off int) (uint8, error) {
	u, err := v.Uint(off, 8)
	return uint8(u), err
}

func (v *View) Int8(off int) (int8, error) {
	i, err := v.Int(off, 8)
	return int8(i), err
}

func (v *View) Uint16(off int) (uint16, error) {
	u, err := v.Uint(off, 16)
	return uint16(u), err
}

func (v *View) Int16(off int) (int16, error) {
	i, err := v.Int(off, 16)
	return int16(i), err
}

func (v *View) Uint32(off int) (uint32, error) {
	return v.Uint(off, 32)
}

func (v *View) Int32(off int) (int32, error) {
	return v.Int(off, 32)
}

func (v *View) SetUint8(off int, u uint8) error { return v.SetUint(off, uint32(u), 8) }
func (v *View) SetInt8(off int, i int8) error { return v.SetUint(off, uint32(uint8(i)), 8) }
func (v *View) SetUint16(off int, u uint16) error { return v.SetUint(off, uint32(u), 16) }
func (v *View) SetInt16(off int, i int16) error { return v.SetUint(off, uint32(uint16(i)), 16) }
func (v *View) SetUint32(off int, u uint32) error { return v.SetUint(off, u, 32) }
func (v *View) SetInt32(off int, i int32) error { return v.SetUint(off, uint32(i), 32) }

// Float32 reinterprets the 32 bits at off as an IEEE-754 single. The bit
// pattern is taken from a 32-bit unsigned read, so endianness applies exactly
// as it does for integers.
func (v *View) Float32(off int) (float32, error) {
	u, err := v.Uint(off, 32)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

func (v *View) SetFloat32(off int, f float32) error {
	return v.SetUint(off, math.Float32bits(f), 32)
}

// Float64 reinterprets the 64 bits at off as an IEEE-754 double, assembled
// from two 32-bit reads. In big-endian mode the first 32 bits are the high
// word; in little-endian mode the low word. For byte-aligned offsets this
// matches the usual big/little-endian memory layout of a double.
func (v *View) Float64(off int) (float64, error) {
	if err := v.checkSpan(off, 64); err != nil {
		return 0, err
	}
	a, err := v.Uint(off, 32)
	if err != nil {
		return 0, err
	}
	b, err := v.Uint(off+32, 32)
	if err != nil {
		return 0, err
	}
	var bits uint64
	if v.BigEndian {
		bits = uint64(a)<<32 | uint64(b)
	} else {
		bits = uint64(b)<<32 | uint64(a)
	}
	return math.Float64frombits(bits), nil
}

func (v *View) SetFloat64(off int, f float64) error {
	if err := v.checkSpan(off, 64); err != nil {
		return err
	}
	bits := math.Float64bits(f)
	hi := uint32(bits >> 32)
	lo := uint32(bits)
	if v.BigEndian {
		if err := v.SetUint(off, hi, 32); err != nil {
			return err
		}
		return v.SetUint(off+32, lo, 32)
	}
	if err := v.SetUint(off, lo, 32); err != nil {
		return err
	}
	return v.SetUint(off+32, hi, 32)
}

// BytesAt copies byteLen bytes starting at bit offset off into a fresh
// buffer, never a view into the source. Each byte is assembled with an 8-bit
// read, so unaligned offsets and the endianness mode are honored.
func (v *View) BytesAt(off, byteLen int) ([]byte, error) {
	if byteLen < 0 {
		return nil, ErrRange
	}
	if err := v.checkSpan(off, byteLen*8); err != nil {
		return nil, err
	}
	out := make([]byte, byteLen)
	for i := range out {
		u, err := v.Uint8(off + i*8)
		if err != nil {
			return nil, err
		}
		out[i] = u
	}
	return out, nil
}
