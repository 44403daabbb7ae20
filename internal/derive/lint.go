package derive

import (
	"fmt"
	"math"

	"specyfikacje/models"
)

// CompositionTolerance is how far, in percentage points, the composition total
// may drift from 100 before a warning is raised.
const CompositionTolerance = 0.1

// Warning codes reported by CheckComposition.
const (
	WarningEmptyComposition   = "empty_composition"
	WarningPercentTotal       = "percent_total"
	WarningPercentRange       = "percent_range"
	WarningMissingRawMaterial = "missing_raw_material"
)

// Warning is a non-blocking remark about a composition.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CompositionTotal sums the line percentages.
func CompositionTotal(lines []models.CompositionLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Percent
	}
	return total
}

// CompositionBalanced reports whether the percentages add up to 100 within
// CompositionTolerance.
func CompositionBalanced(lines []models.CompositionLine) bool {
	return math.Abs(CompositionTotal(lines)-100) < CompositionTolerance
}

// CheckComposition lints a composition. Warnings never block a save.
func CheckComposition(lines []models.CompositionLine) []Warning {
	if len(lines) == 0 {
		return []Warning{{Code: WarningEmptyComposition, Message: "composition has no raw materials"}}
	}

	var warnings []Warning
	for _, line := range lines {
		if line.Percent < 0 || line.Percent > 100 {
			warnings = append(warnings, Warning{
				Code:    WarningPercentRange,
				Message: fmt.Sprintf("line %d: percent %s is outside 0-100", line.Position, formatRounded(line.Percent, 2)),
			})
		}
		if line.RawMaterial == nil {
			warnings = append(warnings, Warning{
				Code:    WarningMissingRawMaterial,
				Message: fmt.Sprintf("line %d: raw material %d not found", line.Position, line.RawMaterialID),
			})
		}
	}

	if !CompositionBalanced(lines) {
		warnings = append(warnings, Warning{
			Code:    WarningPercentTotal,
			Message: fmt.Sprintf("percentages add up to %s%%, expected 100%%", formatRounded(CompositionTotal(lines), 2)),
		})
	}
	return warnings
}
