// Package derive computes the values a product specification shows but never
// stores authoritatively: nutrition, allergens, ingredient declarations,
// highlighted label text and palletisation figures. Every function is pure and
// works on a snapshot of its inputs.
package derive

import (
	"sort"

	"specyfikacje/models"
)

// Analysis bundles everything derived from a product's composition.
type Analysis struct {
	EAN                 string                `json:"ean"`
	Nutrition           models.NutritionFacts `json:"nutrition"`
	Allergens           AllergenSummary       `json:"allergens"`
	IngredientsPL       string                `json:"ingredients_pl"`
	IngredientsEN       string                `json:"ingredients_en"`
	IngredientsMarkupPL string                `json:"ingredients_pl_html"`
	IngredientOrigins   []OriginStatement     `json:"ingredient_origins"`
	CompositionTotal    float64               `json:"composition_total"`
	Warnings            []Warning             `json:"warnings"`
}

// Analyze derives the analysis of product from its joined composition.
func Analyze(product models.Product) Analysis {
	lines := OrderedComposition(product.Composition)
	declarationPL := IngredientDeclaration(lines, "pl")
	return Analysis{
		EAN:                 product.EAN,
		Nutrition:           Nutrition(lines),
		Allergens:           Allergens(lines),
		IngredientsPL:       declarationPL,
		IngredientsEN:       IngredientDeclaration(lines, "en"),
		IngredientsMarkupPL: HighlightAllergens(declarationPL),
		IngredientOrigins:   IngredientOrigins(lines),
		CompositionTotal:    round(CompositionTotal(lines), 4),
		Warnings:            CheckComposition(lines),
	}
}

// OrderedComposition returns a copy of lines sorted by position, then id.
func OrderedComposition(lines []models.CompositionLine) []models.CompositionLine {
	ordered := make([]models.CompositionLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position == ordered[j].Position {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Position < ordered[j].Position
	})
	return ordered
}
