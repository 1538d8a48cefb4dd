package command

import (
	"math"
	"strconv"
)

// parseLong converts s the way strtol(s, NULL, 10) does: leading white space
// and one sign are accepted, digits are read up to the first non-digit, a
// string with no digits is 0 and out-of-range values saturate.
func parseLong(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}

	n, err := strconv.ParseInt(s[start:i], 10, 0)
	if err != nil {
		if neg {
			return math.MinInt
		}
		return math.MaxInt
	}
	if neg {
		return -int(n)
	}
	return int(n)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
