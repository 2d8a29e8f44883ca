package bitops

// Mask32 returns a mask covering the width lowest bits.
func Mask32(width int) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}
	return 1<<width - 1
}

// SignExtend reinterprets the width lowest bits of v as a two's-complement
// value. Width 32 is returned as-is.
func SignExtend(v uint32, width int) int32 {
	if width != 32 && v&(1<<(width-1)) != 0 {
		v |= ^Mask32(width)
	}
	return int32(v)
}

// CeilDiv8 converts a bit count to the number of bytes needed to hold it.
func CeilDiv8(bits int) int {
	return (bits + 7) >> 3
}
