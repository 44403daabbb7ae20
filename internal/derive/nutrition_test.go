package derive

import (
	"math"
	"testing"

	"specyfikacje/models"
)

const epsilon = 1e-9

func TestNutritionEmptyComposition(t *testing.T) {
	t.Parallel()

	if got := Nutrition(nil); got != (models.NutritionFacts{}) {
		t.Fatalf("Nutrition(nil) = %+v, want zeros", got)
	}
}

func TestNutritionWeightedAverage(t *testing.T) {
	t.Parallel()

	choc, milk := chocolateMass(), milkPowder()
	got := Nutrition([]models.CompositionLine{line(1, 80, choc), line(2, 20, milk)})

	checks := []struct {
		name string
		got  float64
		a, b float64
	}{
		{"energy kJ", got.EnergyKJ, choc.Nutrition.EnergyKJ, milk.Nutrition.EnergyKJ},
		{"energy kcal", got.EnergyKcal, choc.Nutrition.EnergyKcal, milk.Nutrition.EnergyKcal},
		{"fat", got.Fat, choc.Nutrition.Fat, milk.Nutrition.Fat},
		{"saturated fat", got.SaturatedFat, choc.Nutrition.SaturatedFat, milk.Nutrition.SaturatedFat},
		{"carbohydrate", got.Carbohydrate, choc.Nutrition.Carbohydrate, milk.Nutrition.Carbohydrate},
		{"sugar", got.Sugar, choc.Nutrition.Sugar, milk.Nutrition.Sugar},
		{"protein", got.Protein, choc.Nutrition.Protein, milk.Nutrition.Protein},
		{"salt", got.Salt, choc.Nutrition.Salt, milk.Nutrition.Salt},
		{"fiber", got.Fiber, choc.Nutrition.Fiber, milk.Nutrition.Fiber},
	}
	for _, c := range checks {
		want := c.a*0.8 + c.b*0.2
		if math.Abs(c.got-want) > epsilon {
			t.Errorf("%s = %v, want %v", c.name, c.got, want)
		}
	}
}

func TestNutritionSkipsUnresolvedLines(t *testing.T) {
	t.Parallel()

	milk := milkPowder()
	got := Nutrition([]models.CompositionLine{line(1, 50, nil), line(2, 50, milk)})
	if math.Abs(got.Protein-12.5) > epsilon {
		t.Fatalf("protein = %v, want 12.5", got.Protein)
	}
}

func TestNutritionDoesNotNormalisePercentages(t *testing.T) {
	t.Parallel()

	got := Nutrition([]models.CompositionLine{line(1, 50, milkPowder())})
	if math.Abs(got.EnergyKJ-1000) > epsilon {
		t.Fatalf("energy kJ = %v, want 1000 for a half-filled composition", got.EnergyKJ)
	}
}

func TestNutritionRepeatedRawMaterialAddsUp(t *testing.T) {
	t.Parallel()

	milk := milkPowder()
	split := Nutrition([]models.CompositionLine{line(1, 30, milk), line(2, 20, milk)})
	single := Nutrition([]models.CompositionLine{line(1, 50, milk)})

	if math.Abs(split.Protein-single.Protein) > epsilon || math.Abs(split.EnergyKJ-single.EnergyKJ) > epsilon {
		t.Fatalf("repeated lines = %+v, want same as one 50%% line %+v", split, single)
	}
	if math.Abs(split.Protein-12.5) > epsilon {
		t.Fatalf("protein = %v, want 12.5", split.Protein)
	}
}
