package bitbuf

import "errors"

var (
	ErrOutOfRange  = errors.New("bit offset out of range")
	ErrEndOfStream = errors.New("end of stream")
	ErrBitWidth    = errors.New("bit width must be between 1 and 32")
	ErrRange       = errors.New("byte range exceeds buffer")
)
