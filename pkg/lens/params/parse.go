package params

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPrefix   = regexp.MustCompile(`^\s*[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// parseInt reads the leading integer of s, so "12px" is 12 and "3.9" is 3. Anything else is 0.
func parseInt(s string) int {
	m := intPrefix.FindString(s)
	if m == "" {
		return 0
	}

	v, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil {
		return 0
	}

	return v
}

// parseFloat reads the leading decimal number of s. Anything else, and non-finite results, is 0.
func parseFloat(s string) float64 {
	m := floatPrefix.FindString(s)
	if m == "" {
		return 0
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}

	return v
}
