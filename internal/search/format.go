package search

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var siSuffix = map[string]string{"k": "K", "M": "M", "G": "B", "T": "T"}

// ShortNumber abbreviates a counter for display: 950 -> "950", 1000 -> "1K", 11900000 -> "11.9M".
func ShortNumber(n int64) string {
	if n > -1000 && n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	value, prefix := humanize.ComputeSI(float64(n))
	suffix, ok := siSuffix[prefix]
	if !ok {
		return strconv.FormatInt(n, 10)
	}
	// 999950 rounds to 1000.0 at one decimal, promote it to the next unit.
	if rounded := strconv.FormatFloat(value, 'f', 1, 64); rounded == "1000.0" || rounded == "-1000.0" {
		if next, ok := nextSuffix[suffix]; ok {
			value /= 1000
			suffix = next
		}
	}
	return trimZero(strconv.FormatFloat(value, 'f', 1, 64)) + suffix
}

var nextSuffix = map[string]string{"K": "M", "M": "B", "B": "T"}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// Percent renders an engagement rate the way it is shown to clients, e.g. 5 -> "5.0%".
func Percent(rate float64) string {
	s := strconv.FormatFloat(rate, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s + "%"
}
