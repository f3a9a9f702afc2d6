package object

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseHash validates a full hex object id and returns it in lowercase.
func ParseHash(s string) (Hash, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != HashHexSize {
		return "", fmt.Errorf("hash length must be %d hex chars, got %d", HashHexSize, len(s))
	}
	if !isHex(s) {
		return "", fmt.Errorf("invalid hash %q", s)
	}
	return Hash(s), nil
}

// IsHash reports whether s is a well-formed full object id.
func IsHash(s string) bool {
	_, err := ParseHash(s)
	return err == nil
}

func hashHexToBytes(h Hash) ([]byte, error) {
	if len(h) != HashHexSize {
		return nil, fmt.Errorf("hash length must be %d hex chars, got %d", HashHexSize, len(h))
	}
	raw, err := hex.DecodeString(string(h))
	if err != nil {
		return nil, fmt.Errorf("invalid hash %q: %w", h, err)
	}
	return raw, nil
}

// CommonHexPrefix returns the number of leading hex nibbles shared by two raw
// ids. Bytes that differ only in their low nibble still count their high one.
func CommonHexPrefix(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			continue
		}
		if a[i]>>4 == b[i]>>4 {
			return 2*i + 1
		}
		return 2 * i
	}
	return 2 * n
}

// commonHexString is CommonHexPrefix for hex text.
func commonHexString(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
