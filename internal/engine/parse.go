package engine

import (
	"math"
	"strconv"
	"strings"
)

// Lenient number parsers. Both read the longest numeric prefix after
// leading whitespace, so "12mm" is 12 and "abc" has no value.

// fastInt parses " 123abc" -> 123 and "0x1f" -> 31. Returns 0 when there
// are no digits.
func fastInt(s string) int64 {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	if rest := s[end:]; len(rest) >= 2 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		return hexInt(s[:end], rest[2:])
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	// ParseInt saturates on overflow, which is good enough for counts.
	n, _ := strconv.ParseInt(s[:end], 10, 64)
	return n
}

func hexInt(sign, s string) int64 {
	end := 0
	for end < len(s) && isHexDigit(s[end]) {
		end++
	}
	if end == 0 {
		return 0
	}
	n, _ := strconv.ParseInt(sign+s[:end], 16, 64)
	return n
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// fastFloat parses "1.5mm" -> 1.5. Returns NaN when there is no number,
// so every comparison against the result is false.
func fastFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	if strings.HasPrefix(s[end:], "Infinity") {
		if end > 0 && s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	mantissa := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		mantissa++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			mantissa++
		}
	}
	if mantissa == 0 {
		return math.NaN()
	}
	// Exponent only counts when at least one digit follows it.
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		expDigits := exp
		for exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
			exp++
		}
		if exp > expDigits {
			end = exp
		}
	}
	// On a range error ParseFloat still returns ±Inf or 0.
	f, _ := strconv.ParseFloat(s[:end], 64)
	return f
}
