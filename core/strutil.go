package core

// appendUint appends the decimal form of n to dst without using fmt.
// It does not allocate when dst has room.
func appendUint(dst []byte, n uint32) []byte {
	if n == 0 {
		return append(dst, '0')
	}
	var tmp [10]byte
	pos := len(tmp)
	for n > 0 {
		pos--
		tmp[pos] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, tmp[pos:]...)
}

// appendHex appends n as 0x followed by eight lowercase hex digits.
func appendHex(dst []byte, n uint32) []byte {
	const hexDigits = "0123456789abcdef"
	dst = append(dst, '0', 'x')
	for shift := 28; shift >= 0; shift -= 4 {
		dst = append(dst, hexDigits[(n>>uint(shift))&0xf])
	}
	return dst
}

// appendQuotable appends s so it can sit between double quotes on one line:
// quote and backslash get a backslash, control bytes become '?'. At most
// limit bytes are appended; a string that does not fit is cut and ends in
// "...".
func appendQuotable(dst []byte, s string, limit int) []byte {
	width := 0
	for i := 0; i < len(s); i++ {
		width += quotedWidth(s[i])
	}
	if width > limit {
		limit -= len("...")
	}

	used := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		w := quotedWidth(c)
		if used+w > limit {
			return append(dst, "..."...)
		}
		used += w
		switch {
		case c == '"' || c == '\\':
			dst = append(dst, '\\', c)
		case c < 0x20 || c == 0x7f:
			dst = append(dst, '?')
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

func quotedWidth(c byte) int {
	if c == '"' || c == '\\' {
		return 2
	}
	return 1
}
