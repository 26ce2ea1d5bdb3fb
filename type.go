// FILE: lixenwraith/kvconf/type.go
package kvconf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// String retrieves the value of key.
func (s *Store) String(key string) (string, error) {
	opt, err := s.lookup(key)
	if err != nil {
		return "", err
	}
	return opt.value, nil
}

// MustString is like String but panics if key is not declared.
func (s *Store) MustString(key string) string {
	val, err := s.String(key)
	if err != nil {
		panic(fmt.Sprintf("kvconf: %v", err))
	}
	return val
}

// Int64 retrieves the value of key as a signed 64-bit integer.
// The value is decimal, or hexadecimal with a 0x/0X prefix, with an optional
// leading '-'. Anything else, including an empty value, digit grouping and
// out-of-range magnitudes, fails with ErrBadNumber.
func (s *Store) Int64(key string) (int64, error) {
	opt, err := s.lookup(key)
	if err != nil {
		return 0, err
	}

	n, err := parseInt64(opt.value)
	if err != nil {
		return 0, newError(ErrBadNumber, key, opt.location, err)
	}
	return n, nil
}

// Int64Or is like Int64 but returns def when key is not declared.
// A declared key holding a malformed number is still an error.
func (s *Store) Int64Or(key string, def int64) (int64, error) {
	n, err := s.Int64(key)
	if errors.Is(err, ErrKeyNotFound) {
		return def, nil
	}
	return n, err
}

// parseInt64 converts text under the Int64 rules.
func parseInt64(text string) (int64, error) {
	digits := strings.Trim(text, whitespace)

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}

	base := 10
	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		base = 16
		digits = digits[2:]
	}

	if digits == "" {
		return 0, fmt.Errorf("no digits in %q", text)
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i], base) {
			return 0, fmt.Errorf("invalid character %q in %q", digits[i], text)
		}
	}

	n, err := strconv.ParseInt(sign+digits, base, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}
