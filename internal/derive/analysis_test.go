package derive

import (
	"strings"
	"testing"

	"specyfikacje/models"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	milkLine := line(2, 20, milkPowder())
	milkLine.ID = 7
	chocLine := line(1, 80, chocolateMass())
	chocLine.ID = 9

	product := models.Product{
		EAN:         "5901234123457",
		NamePL:      "Czekolada mleczna",
		Composition: []models.CompositionLine{milkLine, chocLine},
	}

	analysis := Analyze(product)
	if analysis.EAN != product.EAN {
		t.Fatalf("ean = %q", analysis.EAN)
	}
	if analysis.CompositionTotal != 100 {
		t.Fatalf("composition total = %v", analysis.CompositionTotal)
	}
	if len(analysis.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", analysis.Warnings)
	}
	if analysis.Allergens[models.AllergenMilk] != models.AllergenPresent {
		t.Fatalf("milk = %v", analysis.Allergens[models.AllergenMilk])
	}
	if !strings.HasPrefix(analysis.IngredientsPL, "Cukier (40%)") {
		t.Fatalf("pl declaration = %q", analysis.IngredientsPL)
	}
	if !strings.Contains(analysis.IngredientsMarkupPL, "<strong>Mleko</strong> w proszku (20%)") {
		t.Fatalf("markup = %q", analysis.IngredientsMarkupPL)
	}
	if len(analysis.IngredientOrigins) != 3 {
		t.Fatalf("origins = %+v", analysis.IngredientOrigins)
	}
}

func TestOrderedComposition(t *testing.T) {
	t.Parallel()

	lines := []models.CompositionLine{
		{ID: 3, Position: 2},
		{ID: 2, Position: 1},
		{ID: 1, Position: 1},
	}
	ordered := OrderedComposition(lines)

	ids := []uint{ordered[0].ID, ordered[1].ID, ordered[2].ID}
	if ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("order = %v, want [1 2 3]", ids)
	}
	if lines[0].ID != 3 {
		t.Fatal("input slice was reordered")
	}
}
