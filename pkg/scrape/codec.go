package scrape

import (
	"strconv"
	"strings"
)

// The portal renders numbers for display: "$1,234.50", "12.5%", "1,024".
// Report tables mix data rows with header and footer artifacts, so every
// parser here is total: any input it cannot read decodes to zero rather than
// failing the whole report.

// ParseCurrency decodes a display-formatted money string. Returns 0 on any
// malformed input.
func ParseCurrency(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.ReplaceAll(s, "$", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParsePercent decodes a "12.5%" style value. Returns 0 on any malformed input.
func ParsePercent(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseInt decodes a grouped integer like "1,024". Returns 0 on any malformed
// input.
func ParseInt(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
