package bitbuf

import "github.com/rawbytedev/bitbuf/internal/bitops"

// Stream is an auto-advancing cursor over a View. It tracks an absolute bit
// position plus a window [start, end) it is allowed to read from; Index and
// Len are expressed relative to the window's origin.
//
// Reads fail with ErrEndOfStream before moving the cursor when they would
// cross the window's end. Writes are deliberately not checked against the
// window: the engine still enforces the buffer's real capacity, so writing
// past a nominal window only fails once the buffer itself runs out.
type Stream struct {
	view  *View
	index int // absolute bit position
	start int // window origin, absolute bits
	end   int // window end, absolute bits
}

// NewStream returns a Stream over the full extent of buf.
func NewStream(buf []byte) *Stream {
	return NewStreamView(NewView(buf))
}

// NewStreamRange returns a Stream over byteLen bytes of buf at byteOff.
func NewStreamRange(buf []byte, byteOff, byteLen int) (*Stream, error) {
	v, err := NewViewRange(buf, byteOff, byteLen)
	if err != nil {
		return nil, err
	}
	return NewStreamView(v), nil
}

// NewStreamView wraps an existing View. The View is shared, not copied:
// several streams over one View see each other's writes.
func NewStreamView(v *View) *Stream {
	return &Stream{view: v, end: v.BitLen()}
}

// View returns the underlying engine, e.g. to flip its endianness mid-parse.
func (s *Stream) View() *View { return s.view }

// Index returns the cursor position in bits, relative to the window origin.
func (s *Stream) Index() int { return s.index - s.start }

// SetIndex moves the cursor to bit position i relative to the window origin.
func (s *Stream) SetIndex(i int) { s.index = s.start + i }

// Len returns the window's end boundary in bits, relative to its origin.
func (s *Stream) Len() int { return s.end - s.start }

// SetLen moves the window's end boundary, shrinking or growing the range
// reachable by reads.
func (s *Stream) SetLen(bits int) { s.end = s.start + bits }

// BitsLeft returns how many bits remain between the cursor and the window end.
func (s *Stream) BitsLeft() int { return s.end - s.index }

// ByteIndex returns the cursor position rounded up to whole bytes.
func (s *Stream) ByteIndex() int { return bitops.CeilDiv8(s.Index()) }

// SetByteIndex moves the cursor to a byte-aligned position within the window.
func (s *Stream) SetByteIndex(i int) { s.SetIndex(i * 8) }

func (s *Stream) checkRead(bits int) error {
	if s.index+bits > s.end {
		return ErrEndOfStream
	}
	return nil
}

// ReadUint reads width bits (width in [1,32]) at the cursor and advances it.
func (s *Stream) ReadUint(width int) (uint32, error) {
	if err := s.checkRead(width); err != nil {
		return 0, err
	}
	u, err := s.view.Uint(s.index, width)
	if err != nil {
		return 0, err
	}
	s.index += width
	return u, nil
}

// ReadInt reads width bits as a two's-complement value and advances.
func (s *Stream) ReadInt(width int) (int32, error) {
	if err := s.checkRead(width); err != nil {
		return 0, err
	}
	i, err := s.view.Int(s.index, width)
	if err != nil {
		return 0, err
	}
	s.index += width
	return i, nil
}

// WriteUint writes the width lowest bits of val at the cursor and advances.
func (s *Stream) WriteUint(val uint32, width int) error {
	if err := s.view.SetUint(s.index, val, width); err != nil {
		return err
	}
	s.index += width
	return nil
}

// WriteInt writes the width lowest bits of val at the cursor and advances.
func (s *Stream) WriteInt(val int32, width int) error {
	return s.WriteUint(uint32(val), width)
}

func (s *Stream) ReadBool() (bool, error) {
	u, err := s.ReadUint(1)
	return u != 0, err
}

func (s *Stream) WriteBool(b bool) error {
	var u uint32
	if b {
		u = 1
	}
	return s.WriteUint(u, 1)
}

func (s *Stream) ReadUint8() (uint8, error) {
	u, err := s.ReadUint(8)
	return uint8(u), err
}

func (s *Stream) ReadInt8() (int8, error) {
	i, err := s.ReadInt(8)
	return int8(i), err
}

func (s *Stream) ReadUint16() (uint16, error) {
	u, err := s.ReadUint(16)
	return uint16(u), err
}

func (s *Stream) ReadInt16() (int16, error) {
	i, err := s.ReadInt(16)
	return int16(i), err
}

func (s *Stream) ReadUint32() (uint32, error) { return s.ReadUint(32) }
func (s *Stream) ReadInt32() (int32, error) { return s.ReadInt(32) }

func (s *Stream) WriteUint8(u uint8) error { return s.WriteUint(uint32(u), 8) }
func (s *Stream) WriteInt8(i int8) error { return s.WriteUint(uint32(uint8(i)), 8) }
func (s *Stream) WriteUint16(u uint16) error { return s.WriteUint(uint32(u), 16) }
func (s *Stream) WriteInt16(i int16) error { return s.WriteUint(uint32(uint16(i)), 16) }
func (s *Stream) WriteUint32(u uint32) error { return s.WriteUint(u, 32) }
func (s *Stream) WriteInt32(i int32) error { return s.WriteUint(uint32(i), 32) }

func (s *Stream) ReadFloat32() (float32, error) {
	if err := s.checkRead(32); err != nil {
		return 0, err
	}
	f, err := s.view.Float32(s.index)
	if err != nil {
		return 0, err
	}
	s.index += 32
	return f, nil
}

func (s *Stream) WriteFloat32(f float32) error {
	if err := s.view.SetFloat32(s.index, f); err != nil {
		return err
	}
	s.index += 32
	return nil
}

func (s *Stream) ReadFloat64() (float64, error) {
	if err := s.checkRead(64); err != nil {
		return 0, err
	}
	f, err := s.view.Float64(s.index)
	if err != nil {
		return 0, err
	}
	s.index += 64
	return f, nil
}

func (s *Stream) WriteFloat64(f float64) error {
	if err := s.view.SetFloat64(s.index, f); err != nil {
		return err
	}
	s.index += 64
	return nil
}

// ReadStream carves a sub-stream out of the next bits of this stream: a new
// cursor sharing the same View, windowed to exactly those bits. The parent
// advances by bits up front; consuming the sub-stream afterwards never moves
// the parent. This is the zero-copy path for nested fixed-size structures.
func (s *Stream) ReadStream(bits int) (*Stream, error) {
	if bits < 0 {
		return nil, ErrRange
	}
	if err := s.checkRead(bits); err != nil {
		return nil, err
	}
	sub := &Stream{view: s.view, index: s.index, start: s.index, end: s.index + bits}
	s.index += bits
	return sub, nil
}

// WriteStream copies everything left in src's window into this stream.
func (s *Stream) WriteStream(src *Stream) error {
	return s.WriteStreamBits(src, src.BitsLeft())
}

// WriteStreamBits copies bits from src's cursor into this stream, in chunks
// of at most 32 bits. Both cursors advance as the copy proceeds.
func (s *Stream) WriteStreamBits(src *Stream, bits int) error {
	if bits < 0 {
		return ErrRange
	}
	for bits > 0 {
		n := min(bits, 32)
		u, err := src.ReadUint(n)
		if err != nil {
			return err
		}
		if err := s.WriteUint(u, n); err != nil {
			return err
		}
		bits -= n
	}
	return nil
}

// ReadBytes copies the next byteLen bytes into a fresh buffer and advances.
func (s *Stream) ReadBytes(byteLen int) ([]byte, error) {
	if byteLen < 0 {
		return nil, ErrRange
	}
	if err := s.checkRead(byteLen * 8); err != nil {
		return nil, err
	}
	out, err := s.view.BytesAt(s.index, byteLen)
	if err != nil {
		return nil, err
	}
	s.index += byteLen * 8
	return out, nil
}

// WriteBytes writes all of p at the cursor, going through a temporary stream
// so unaligned positions and endianness are handled by the same copy loop as
// WriteStream.
func (s *Stream) WriteBytes(p []byte) error {
	src := NewStream(p)
	src.view.BigEndian = s.view.BigEndian
	return s.WriteStreamBits(src, len(p)*8)
}
