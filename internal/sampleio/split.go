package sampleio

// SplitFields is a bufio.SplitFunc yielding tokens separated by any run of
// ASCII whitespace or commas, so "1,2\n3 4" and "1\n2\n3\n4" scan alike.
func SplitFields(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSeparator(data[start]) {
		start++
	}
	for i := start; i < len(data); i++ {
		if isSeparator(data[i]) {
			return i + 1, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	// Request more data.
	return start, nil, nil
}

func isSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f', ',':
		return true
	}
	return false
}
