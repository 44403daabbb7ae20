package derive

import (
	"gorm.io/gorm"

	"specyfikacje/models"
)

func chocolateMass() *models.RawMaterial {
	m := &models.RawMaterial{
		Model:         gorm.Model{ID: 1},
		Name:          "Masa czekoladowa",
		NameEN:        "Chocolate mass",
		CompositionPL: "Cukier, Kakao",
		IngredientShares: []models.IngredientShare{
			{Name: "Cukier", Percent: 50},
			{Name: "Kakao", Percent: 50},
		},
		IngredientOrigins: []models.IngredientOrigin{
			{Name: "Kakao", Countries: "Wybrzeże Kości Słoniowej, Ghana"},
		},
		Nutrition: models.NutritionFacts{
			EnergyKJ:     2200,
			EnergyKcal:   530,
			Fat:          30,
			SaturatedFat: 18,
			Carbohydrate: 55,
			Sugar:        50,
			Protein:      6,
			Salt:         0.1,
			Fiber:        7,
		},
	}
	m.Allergens.Set(models.AllergenMilk, models.AllergenMayContain)
	m.Allergens.Set(models.AllergenNuts, models.AllergenMayContain)
	return m
}

func milkPowder() *models.RawMaterial {
	m := &models.RawMaterial{
		Model:           gorm.Model{ID: 2},
		Name:            "Mleko w proszku",
		NameEN:          "Milk powder",
		OriginCountries: "Polska",
		Nutrition: models.NutritionFacts{
			EnergyKJ:     2000,
			EnergyKcal:   480,
			Fat:          26,
			SaturatedFat: 16,
			Carbohydrate: 38,
			Sugar:        38,
			Protein:      25,
			Salt:         1,
		},
	}
	m.Allergens.Set(models.AllergenMilk, models.AllergenPresent)
	return m
}

func line(position int, percent float64, material *models.RawMaterial) models.CompositionLine {
	l := models.CompositionLine{Position: position, Percent: percent, RawMaterial: material}
	if material != nil {
		l.RawMaterialID = material.ID
	}
	return l
}
