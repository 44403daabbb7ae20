package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RawMaterial is a reusable ingredient ("surowiec") with its own nutrition,
// allergen and origin data. Nutrition values are per 100 g.
type RawMaterial struct {
	gorm.Model
	Name            string `gorm:"uniqueIndex;not null" json:"name"`
	NameEN          string `json:"name_en"`
	Category        string `gorm:"not null;default:Inne" json:"category"`
	OriginCountries string `json:"origin_countries"`
	CompositionPL   string `gorm:"type:text" json:"composition_pl"`
	CompositionEN   string `gorm:"type:text" json:"composition_en"`

	// Per-ingredient breakdown of the composition text. Both lists are
	// rebuilt from CompositionPL by the ingredient parser.
	IngredientShares  datatypes.JSONSlice[IngredientShare]  `json:"ingredient_shares"`
	IngredientOrigins datatypes.JSONSlice[IngredientOrigin] `json:"ingredient_origins"`

	Nutrition NutritionFacts  `gorm:"embedded" json:"nutrition"`
	Allergens AllergenProfile `gorm:"embedded;embeddedPrefix:allergen_" json:"allergens"`
}

// IngredientShare is the percentage of a named ingredient inside a raw material.
type IngredientShare struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// IngredientOrigin lists the countries of origin of a named ingredient,
// comma separated as typed by the user.
type IngredientOrigin struct {
	Name      string `json:"name"`
	Countries string `json:"countries"`
}

// NutritionFacts holds the nine declared nutrition values.
type NutritionFacts struct {
	EnergyKJ     float64 `gorm:"column:energy_kj;not null;default:0" json:"energy_kj"`
	EnergyKcal   float64 `gorm:"column:energy_kcal;not null;default:0" json:"energy_kcal"`
	Fat          float64 `gorm:"not null;default:0" json:"fat"`
	SaturatedFat float64 `gorm:"not null;default:0" json:"saturated_fat"`
	Carbohydrate float64 `gorm:"not null;default:0" json:"carbohydrate"`
	Sugar        float64 `gorm:"not null;default:0" json:"sugar"`
	Protein      float64 `gorm:"not null;default:0" json:"protein"`
	Salt         float64 `gorm:"not null;default:0" json:"salt"`
	Fiber        float64 `gorm:"not null;default:0" json:"fiber"`
}
