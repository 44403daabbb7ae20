package derive

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ParsePercent converts user input such as "12,5" to a number. Malformed,
// non-finite and negative input yields 0.
func ParsePercent(value string) float64 {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if normalized == "" {
		return 0
	}
	parsed := cast.ToFloat64(normalized)
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed < 0 {
		return 0
	}
	return parsed
}
