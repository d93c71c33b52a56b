package core

// itoa formats n without pulling in fmt or strconv, keeping TinyGo
// binaries small. Only the returned string allocates.
func itoa(n int64) string {
	var buf [20]byte
	pos := len(buf)

	neg := n < 0
	u := uint64(n)
	if neg {
		u = uint64(-n)
	}

	for {
		pos--
		buf[pos] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}

	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
