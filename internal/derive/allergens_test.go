package derive

import (
	"testing"

	"specyfikacje/models"
)

func TestAllergensEmptyCompositionIsAbsent(t *testing.T) {
	t.Parallel()

	summary := Allergens(nil)
	if len(summary) != 14 {
		t.Fatalf("expected 14 allergen groups, got %d", len(summary))
	}
	for group, state := range summary {
		if state != models.AllergenAbsent {
			t.Fatalf("%s = %v, want absent", group, state)
		}
	}
}

func TestAllergensPresentWins(t *testing.T) {
	t.Parallel()

	summary := Allergens([]models.CompositionLine{
		line(1, 80, chocolateMass()),
		line(2, 20, milkPowder()),
	})

	if got := summary[models.AllergenMilk]; got != models.AllergenPresent {
		t.Fatalf("milk = %v, want present", got)
	}
	if got := summary[models.AllergenNuts]; got != models.AllergenMayContain {
		t.Fatalf("nuts = %v, want may contain", got)
	}
	if got := summary[models.AllergenGluten]; got != models.AllergenAbsent {
		t.Fatalf("gluten = %v, want absent", got)
	}
}

func TestAllergensPresentRegardlessOfOrder(t *testing.T) {
	t.Parallel()

	maybe := &models.RawMaterial{Name: "maybe"}
	maybe.Allergens.Set(models.AllergenSesame, models.AllergenMayContain)
	present := &models.RawMaterial{Name: "present"}
	present.Allergens.Set(models.AllergenSesame, models.AllergenPresent)
	absent := &models.RawMaterial{Name: "absent"}

	orders := [][]*models.RawMaterial{
		{present, maybe, absent},
		{maybe, absent, present},
		{absent, present, maybe},
	}
	for _, order := range orders {
		lines := make([]models.CompositionLine, 0, len(order))
		for i, material := range order {
			lines = append(lines, line(i, 10, material))
		}
		if got := Allergens(lines)[models.AllergenSesame]; got != models.AllergenPresent {
			t.Fatalf("sesame = %v, want present", got)
		}
	}
}

func TestAllergenSummaryWithState(t *testing.T) {
	t.Parallel()

	summary := Allergens([]models.CompositionLine{line(1, 100, chocolateMass())})
	got := summary.WithState(models.AllergenMayContain)
	if len(got) != 2 || got[0] != models.AllergenMilk || got[1] != models.AllergenNuts {
		t.Fatalf("WithState(MayContain) = %v", got)
	}
}

func TestAllergensRepeatedRawMaterialKeepsMaximum(t *testing.T) {
	t.Parallel()

	choc, milk := chocolateMass(), milkPowder()
	summary := Allergens([]models.CompositionLine{
		line(1, 10, choc),
		line(2, 40, milk),
		line(3, 50, choc),
	})

	if summary[models.AllergenMilk] != models.AllergenPresent {
		t.Fatalf("milk = %v, want present", summary[models.AllergenMilk])
	}
	if summary[models.AllergenNuts] != models.AllergenMayContain {
		t.Fatalf("nuts = %v, want may contain", summary[models.AllergenNuts])
	}
	if summary[models.AllergenGluten] != models.AllergenAbsent {
		t.Fatalf("gluten = %v, want absent", summary[models.AllergenGluten])
	}
}
