package config

import (
	"fmt"
	"strconv"
)

// ParseByte resolves the textual form of a delimiter or end marker into a
// single byte. Accepted forms: one literal character (any byte value) or one
// of the escapes \n, \t, \r, \0.
func ParseByte(value string) (byte, error) {
	switch value {
	case `\n`:
		return '\n', nil
	case `\t`:
		return '\t', nil
	case `\r`:
		return '\r', nil
	case `\0`:
		return 0, nil
	}
	if len(value) != 1 {
		return 0, fmt.Errorf("expected a single character or one of \\n \\t \\r \\0, got %q", value)
	}
	return value[0], nil
}

// FormatByte renders a byte value for diagnostics, quoting control characters.
func FormatByte(b byte) string {
	switch b {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case 0:
		return `\0`
	}
	if b < 0x20 || b >= 0x7f {
		return "0x" + strconv.FormatUint(uint64(b), 16)
	}
	return string(b)
}
