package mock

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	catalogdb "specyfikacje/internal/db"
	"specyfikacje/internal/derive"
	applog "specyfikacje/internal/log"
	"specyfikacje/models"
)

// DSN is the shared in-memory database used by the mock catalog.
const DSN = "file:specyfikacje-mock?mode=memory&cache=shared"

// New returns an in-memory sqlite database seeded with a small chocolate
// catalog. Seeding is skipped when the shared database already holds data.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	gormConfig := catalogdb.GormConfig()
	gormConfig.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(DSN), gormConfig)
	if err != nil {
		return nil, err
	}

	if err := catalogdb.AutoMigrate(db); err != nil {
		return nil, err
	}

	var existing int64
	if err := db.WithContext(ctx).Model(&models.RawMaterial{}).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing == 0 {
		if err := seed(ctx, db); err != nil {
			return nil, err
		}
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func floatPtr(v float64) *float64 { return &v }

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	cocoaMass := models.RawMaterial{
		Name:            "Masa kakaowa",
		NameEN:          "Cocoa mass",
		Category:        "Kakao",
		OriginCountries: "Wybrzeże Kości Słoniowej, Ghana",
		CompositionPL:   "Masa kakaowa",
		Nutrition: models.NutritionFacts{
			EnergyKJ: 2400, EnergyKcal: 580, Fat: 53, SaturatedFat: 32,
			Carbohydrate: 9, Sugar: 1, Protein: 13, Salt: 0.02, Fiber: 15,
		},
	}
	sugar := models.RawMaterial{
		Name:            "Cukier",
		NameEN:          "Sugar",
		Category:        "Cukry",
		OriginCountries: "Polska",
		CompositionPL:   "Cukier",
		Nutrition: models.NutritionFacts{
			EnergyKJ: 1700, EnergyKcal: 400, Carbohydrate: 100, Sugar: 100,
		},
	}
	milkPowder := models.RawMaterial{
		Name:            "Mleko w proszku pełne",
		NameEN:          "Whole milk powder",
		Category:        "Nabiał",
		OriginCountries: "Polska",
		CompositionPL:   "mleko pełne w proszku",
		Nutrition: models.NutritionFacts{
			EnergyKJ: 2071, EnergyKcal: 496, Fat: 26.7, SaturatedFat: 16.7,
			Carbohydrate: 38.4, Sugar: 38.4, Protein: 26.3, Salt: 0.9,
		},
	}
	milkPowder.Allergens.Set(models.AllergenMilk, models.AllergenPresent)

	hazelnutPaste := models.RawMaterial{
		Name:          "Pasta z orzechów laskowych",
		NameEN:        "Hazelnut paste",
		Category:      "Orzechy",
		CompositionPL: "Składniki: orzechy laskowe, olej słonecznikowy",
		Nutrition: models.NutritionFacts{
			EnergyKJ: 2720, EnergyKcal: 660, Fat: 63, SaturatedFat: 5,
			Carbohydrate: 9, Sugar: 4, Protein: 14, Fiber: 8,
		},
	}
	hazelnutPaste.Allergens.Set(models.AllergenNuts, models.AllergenPresent)
	hazelnutPaste.Allergens.Set(models.AllergenPeanuts, models.AllergenMayContain)
	hazelnutPaste.IngredientShares, hazelnutPaste.IngredientOrigins, _ = derive.SyncIngredientLists(hazelnutPaste.CompositionPL, nil, nil)
	hazelnutPaste.IngredientShares[0].Percent = 95
	hazelnutPaste.IngredientShares[1].Percent = 5
	hazelnutPaste.IngredientOrigins[0].Countries = "Turcja, Włochy"
	hazelnutPaste.IngredientOrigins[1].Countries = "Ukraina"

	lecithin := models.RawMaterial{
		Name:            "Lecytyna słonecznikowa",
		NameEN:          "Sunflower lecithin",
		Category:        "Dodatki",
		OriginCountries: "Ukraina",
		CompositionPL:   "emulgator: lecytyny (z słonecznika)",
		Nutrition: models.NutritionFacts{
			EnergyKJ: 3700, EnergyKcal: 900, Fat: 100, SaturatedFat: 15,
		},
	}
	lecithin.Allergens.Set(models.AllergenSoy, models.AllergenMayContain)

	materials := []*models.RawMaterial{&cocoaMass, &sugar, &milkPowder, &hazelnutPaste, &lecithin}
	for _, material := range materials {
		if err := db.WithContext(ctx).Create(material).Error; err != nil {
			return fmt.Errorf("seed raw material %q: %w", material.Name, err)
		}
	}

	milkChocolate := models.Product{
		EAN:               "5901234123457",
		CartonEAN:         "15901234123454",
		InternalID:        "CZ0101",
		NamePL:            "Czekolada mleczna z orzechami laskowymi",
		NameEN:            "Milk chocolate with hazelnuts",
		LegalNamePL:       "Czekolada mleczna z pastą z orzechów laskowych",
		Category:          "Czekolady",
		ProductType:       "czekolada",
		NetMass:           "100 g",
		ShelfLife:         "12 miesięcy",
		DateFormat:        "DD.MM.RRRR",
		StorageConditions: "Przechowywać w suchym i chłodnym miejscu, w temperaturze 15-20°C.",
		Logistics: models.Logistics{
			UnitHeight:        floatPtr(1.2),
			UnitWidth:         floatPtr(8),
			UnitDepth:         floatPtr(16),
			Collective1Height: floatPtr(10),
			Collective1Width:  floatPtr(17),
			Collective1Depth:  floatPtr(25),
			PalletType:        "EUR",
			NetWeightUnit:     floatPtr(0.1),
			GrossWeightUnit:   floatPtr(0.105),
			UnitsPerPackage:   floatPtr(20),
			PackagesPerLayer:  floatPtr(24),
			LayersPerPallet:   floatPtr(12),
		},
		Certificates: []models.Certificate{{Kind: "IFS Food", Identifier: "IFS-2024-0042", ValidUntil: "2026-12-31"}},
	}
	derive.RefreshLogistics(nil, &milkChocolate.Logistics)

	darkChocolate := models.Product{
		EAN:         "5901234123464",
		InternalID:  "CZ0205",
		NamePL:      "Czekolada gorzka 70%",
		NameEN:      "Dark chocolate 70%",
		Category:    "Czekolady",
		ProductType: "czekolada",
		NetMass:     "90 g",
		Logistics: models.Logistics{
			UnitsPerPackage:  floatPtr(18),
			PackagesPerLayer: floatPtr(20),
		},
	}
	derive.RefreshLogistics(nil, &darkChocolate.Logistics)

	products := []*models.Product{&milkChocolate, &darkChocolate}
	for _, product := range products {
		if err := db.WithContext(ctx).Omit("Composition").Create(product).Error; err != nil {
			return fmt.Errorf("seed product %q: %w", product.EAN, err)
		}
	}

	lines := []models.CompositionLine{
		{ProductEAN: milkChocolate.EAN, RawMaterialID: sugar.ID, Percent: 40, Position: 1},
		{ProductEAN: milkChocolate.EAN, RawMaterialID: milkPowder.ID, Percent: 22, Position: 2},
		{ProductEAN: milkChocolate.EAN, RawMaterialID: cocoaMass.ID, Percent: 22.5, Position: 3},
		{ProductEAN: milkChocolate.EAN, RawMaterialID: hazelnutPaste.ID, Percent: 15, Position: 4},
		{ProductEAN: milkChocolate.EAN, RawMaterialID: lecithin.ID, Percent: 0.5, Position: 5},
		{ProductEAN: darkChocolate.EAN, RawMaterialID: cocoaMass.ID, Percent: 70, Position: 1},
		{ProductEAN: darkChocolate.EAN, RawMaterialID: sugar.ID, Percent: 29.5, Position: 2},
	}
	if err := db.WithContext(ctx).Omit("RawMaterial").Create(&lines).Error; err != nil {
		return fmt.Errorf("seed composition: %w", err)
	}

	return nil
}
