package language

import "unicode/utf8"

// sniffLen is how many leading bytes are checked for NUL bytes.
const sniffLen = 512

// IsText reports whether data can be treated as text: no NUL byte in the
// first 512 bytes and valid UTF-8 throughout.
func IsText(data []byte) bool {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	for _, b := range head {
		if b == 0 {
			return false
		}
	}
	return utf8.Valid(data)
}

// CountLines counts newline-delimited lines. A final line without a trailing
// newline still counts; a trailing newline does not open an extra line.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if data[len(data)-1] != '\n' {
		lines++
	}
	return lines
}
