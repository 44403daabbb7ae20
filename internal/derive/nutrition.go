package derive

import "specyfikacje/models"

// Nutrition returns the nutrition facts of a composition as the sum of each raw
// material's values weighted by the line percentage. Lines without a joined
// raw material contribute nothing; an empty composition yields all zeros.
// The percentages are not required to add up to 100.
func Nutrition(lines []models.CompositionLine) models.NutritionFacts {
	var total models.NutritionFacts
	for _, line := range lines {
		if line.RawMaterial == nil {
			continue
		}
		factor := line.Percent / 100.0
		n := line.RawMaterial.Nutrition
		total.EnergyKJ += n.EnergyKJ * factor
		total.EnergyKcal += n.EnergyKcal * factor
		total.Fat += n.Fat * factor
		total.SaturatedFat += n.SaturatedFat * factor
		total.Carbohydrate += n.Carbohydrate * factor
		total.Sugar += n.Sugar * factor
		total.Protein += n.Protein * factor
		total.Salt += n.Salt * factor
		total.Fiber += n.Fiber * factor
	}
	return total
}
