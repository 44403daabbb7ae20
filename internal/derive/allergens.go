package derive

import "specyfikacje/models"

// AllergenSummary maps every allergen group to its resolved state.
type AllergenSummary map[models.Allergen]models.AllergenState

// Allergens resolves each of the fourteen allergen groups to the most severe
// state found across the composition (Present > MayContain > Absent). Groups
// no line mentions resolve to Absent, including for an empty composition.
func Allergens(lines []models.CompositionLine) AllergenSummary {
	groups := models.AllAllergens()
	summary := make(AllergenSummary, len(groups))
	for _, group := range groups {
		summary[group] = models.AllergenAbsent
	}

	for _, line := range lines {
		if line.RawMaterial == nil {
			continue
		}
		for _, group := range groups {
			summary[group] = summary[group].MoreSevere(line.RawMaterial.Allergens.State(group))
		}
	}
	return summary
}

// WithState lists the groups resolved to state, in declaration order.
func (s AllergenSummary) WithState(state models.AllergenState) []models.Allergen {
	var result []models.Allergen
	for _, group := range models.AllAllergens() {
		if s[group] == state {
			result = append(result, group)
		}
	}
	return result
}
