package utils

import (
	"math"
	"strconv"
	"strings"
)

// RoundMoney rounds to whole cents, half away from zero.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseFloatOrZero coerces admin form input, unparsable values become 0.
func ParseFloatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func ParseIntOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func ToUint(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	return uint(n), err
}
