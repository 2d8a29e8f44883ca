package bitbuf

import (
	"strings"
	"unicode/utf8"
)

// String codec over Stream. Two encodings (byte-per-character ASCII and
// UTF-8), each in a null-terminated and a fixed-byte-length flavor.
//
// Fixed-length reads always consume exactly the requested byte count: an
// embedded NUL stops text from accumulating but never stops the cursor.
// Fixed-length writes zero-pad short text and silently truncate long text,
// so a field of N bytes stays N bytes.

// ReadASCII reads exactly byteLen bytes and returns the text before the
// first NUL, one character per byte.
func (s *Stream) ReadASCII(byteLen int) (string, error) {
	raw, err := s.readString(byteLen)
	if err != nil {
		return "", err
	}
	return byteString(raw), nil
}

// ReadASCIIZ reads one character per byte until a NUL terminator (consumed,
// excluded from the result) or the end of the window.
func (s *Stream) ReadASCIIZ() (string, error) {
	raw, err := s.readStringZ()
	if err != nil {
		return "", err
	}
	return byteString(raw), nil
}

// ReadUTF8 reads exactly byteLen bytes and decodes the text before the first
// NUL as UTF-8. Malformed input degrades to the byte-per-character text
// instead of failing; binary sources routinely carry broken text and a hard
// error here would be disproportionate.
func (s *Stream) ReadUTF8(byteLen int) (string, error) {
	raw, err := s.readString(byteLen)
	if err != nil {
		return "", err
	}
	return utf8String(raw), nil
}

// ReadUTF8Z reads until a NUL terminator or the end of the window and decodes
// as UTF-8, with the same malformed-input fallback as ReadUTF8.
func (s *Stream) ReadUTF8Z() (string, error) {
	raw, err := s.readStringZ()
	if err != nil {
		return "", err
	}
	return utf8String(raw), nil
}

// WriteASCII writes str one byte per character into exactly byteLen bytes,
// zero-padded or truncated to fit.
func (s *Stream) WriteASCII(str string, byteLen int) error {
	return s.writeString(asciiBytes(str), byteLen)
}

// WriteASCIIZ writes str one byte per character followed by a NUL terminator.
func (s *Stream) WriteASCIIZ(str string) error {
	return s.writeStringZ(asciiBytes(str))
}

// WriteUTF8 writes the UTF-8 encoding of str into exactly byteLen bytes,
// zero-padded or truncated to fit.
func (s *Stream) WriteUTF8(str string, byteLen int) error {
	return s.writeString([]byte(str), byteLen)
}

// WriteUTF8Z writes the UTF-8 encoding of str followed by a NUL terminator.
func (s *Stream) WriteUTF8Z(str string) error {
	return s.writeStringZ([]byte(str))
}

// readString consumes exactly byteLen bytes, returning the prefix before the
// first NUL. Whole-or-nothing: the cursor does not move on failure.
func (s *Stream) readString(byteLen int) ([]byte, error) {
	if byteLen < 0 {
		return nil, ErrRange
	}
	if err := s.checkRead(byteLen * 8); err != nil {
		return nil, err
	}
	raw := make([]byte, 0, byteLen)
	sawNul := false
	for i := 0; i < byteLen; i++ {
		c, err := s.ReadUint8()
		if err != nil {
			return nil, err
		}
		if c == 0 {
			sawNul = true
		}
		if !sawNul {
			raw = append(raw, c)
		}
	}
	return raw, nil
}

func (s *Stream) readStringZ() ([]byte, error) {
	var raw []byte
	for s.BitsLeft() >= 8 {
		c, err := s.ReadUint8()
		if err != nil {
			return nil, err
		}
		if c == 0 {
			break
		}
		raw = append(raw, c)
	}
	return raw, nil
}

func (s *Stream) writeString(raw []byte, byteLen int) error {
	if byteLen < 0 {
		return ErrRange
	}
	if len(raw) > byteLen {
		raw = raw[:byteLen]
	}
	for _, c := range raw {
		if err := s.WriteUint8(c); err != nil {
			return err
		}
	}
	for i := len(raw); i < byteLen; i++ {
		if err := s.WriteUint8(0); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stream) writeStringZ(raw []byte) error {
	for _, c := range raw {
		if err := s.WriteUint8(c); err != nil {
			return err
		}
	}
	return s.WriteUint8(0)
}

// asciiBytes encodes one byte per rune, keeping the low 8 bits of each code
// point.
func asciiBytes(str string) []byte {
	raw := make([]byte, 0, len(str))
	for _, r := range str {
		raw = append(raw, byte(r))
	}
	return raw
}

// byteString is the inverse mapping: one character per byte.
func byteString(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		b.WriteRune(rune(c))
	}
	return b.String()
}

func utf8String(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return byteString(raw)
}
