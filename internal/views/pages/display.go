package pages

import (
	"strconv"
	"strings"

	"specyfikacje/models"
)

const emptyValue = "-"

// DefaultDash returns a dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return emptyValue
	}
	return value
}

// FormatNumber renders value with at most places decimals and a decimal comma.
func FormatNumber(value float64, places int) string {
	formatted := strconv.FormatFloat(value, 'f', places, 64)
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimSuffix(formatted, ".")
	}
	if formatted == "-0" {
		formatted = "0"
	}
	return strings.Replace(formatted, ".", ",", 1)
}

// FormatOptional renders an optional measurement, or a dash when absent.
func FormatOptional(value *float64, unit string) string {
	if value == nil {
		return emptyValue
	}
	if unit == "" {
		return FormatNumber(*value, 3)
	}
	return FormatNumber(*value, 3) + " " + unit
}

// FormatCount renders an optional derived count, or a dash when absent.
func FormatCount(value *int) string {
	if value == nil {
		return emptyValue
	}
	return strconv.Itoa(*value)
}

// AllergenBadgeClass maps an allergen state onto its badge style.
func AllergenBadgeClass(state models.AllergenState) string {
	switch state {
	case models.AllergenPresent:
		return "badge badge-present"
	case models.AllergenMayContain:
		return "badge badge-may-contain"
	default:
		return "badge badge-absent"
	}
}

// detail is one labelled row of a card table.
type detail struct {
	Label string
	Value string
}

func nutritionRows(n models.NutritionFacts) []detail {
	row := func(label string, value float64, unit string) detail {
		return detail{Label: label, Value: FormatNumber(value, 2) + " " + unit}
	}
	return []detail{
		row("Wartość energetyczna", n.EnergyKJ, "kJ"),
		row("Wartość energetyczna", n.EnergyKcal, "kcal"),
		row("Tłuszcz", n.Fat, "g"),
		row("w tym kwasy tłuszczowe nasycone", n.SaturatedFat, "g"),
		row("Węglowodany", n.Carbohydrate, "g"),
		row("w tym cukry", n.Sugar, "g"),
		row("Białko", n.Protein, "g"),
		row("Sól", n.Salt, "g"),
		row("Błonnik", n.Fiber, "g"),
	}
}
