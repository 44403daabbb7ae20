package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"specyfikacje/internal/config"
	"specyfikacje/internal/db"
	"specyfikacje/internal/derive"
	applog "specyfikacje/internal/log"
	"specyfikacje/models"
)

// materialRow is one line of the raw material catalog export. Numeric and
// allergen cells stay textual so decimal commas and labels can be parsed leniently.
type materialRow struct {
	Name            string `csv:"name"`
	NameEN          string `csv:"name_en"`
	Category        string `csv:"category"`
	OriginCountries string `csv:"origin_countries"`
	CompositionPL   string `csv:"composition_pl"`
	CompositionEN   string `csv:"composition_en"`

	EnergyKJ     string `csv:"energy_kj"`
	EnergyKcal   string `csv:"energy_kcal"`
	Fat          string `csv:"fat"`
	SaturatedFat string `csv:"saturated_fat"`
	Carbohydrate string `csv:"carbohydrate"`
	Sugar        string `csv:"sugar"`
	Protein      string `csv:"protein"`
	Salt         string `csv:"salt"`
	Fiber        string `csv:"fiber"`

	Gluten         string `csv:"gluten"`
	Crustaceans    string `csv:"crustaceans"`
	Eggs           string `csv:"eggs"`
	Fish           string `csv:"fish"`
	Peanuts        string `csv:"peanuts"`
	Soy            string `csv:"soy"`
	Milk           string `csv:"milk"`
	Nuts           string `csv:"nuts"`
	Celery         string `csv:"celery"`
	Mustard        string `csv:"mustard"`
	Sesame         string `csv:"sesame"`
	SulphurDioxide string `csv:"sulphur_dioxide"`
	Lupin          string `csv:"lupin"`
	Molluscs       string `csv:"molluscs"`
}

func main() {
	csvPath := "surowce.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(context.Background(), csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, csvPath string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}

	rows, err := readRows(csvPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	created, updated, err := importMaterials(ctx, database, rows)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d raw materials from %s (%d new, %d updated)\n",
		created+updated, filepath.Base(csvPath), created, updated)
	return nil
}

// readRows decodes the catalog file. Both comma and semicolon separated
// exports are accepted; the separator is taken from the header line.
func readRows(path string) ([]materialRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("csv is empty")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.TrimLeadingSpace = true

	var rows []materialRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func detectDelimiter(data []byte) rune {
	header := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		header = data[:idx]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

// importMaterials upserts every row by name. Existing percentage and origin
// breakdowns survive when their ingredient names still occur in the text.
func importMaterials(ctx context.Context, database *gorm.DB, rows []materialRow) (created, updated int, err error) {
	if database == nil {
		return 0, 0, fmt.Errorf("database handle is nil")
	}

	for idx, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			applog.Warn(ctx, "skipping row without name", "row", idx+2)
			continue
		}

		txErr := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var material models.RawMaterial
			lookup := tx.Where("name = ?", name).First(&material)
			found := lookup.Error == nil
			if lookup.Error != nil && !errors.Is(lookup.Error, gorm.ErrRecordNotFound) {
				return fmt.Errorf("find raw material %q: %w", name, lookup.Error)
			}

			row.apply(&material)
			shares, origins, _ := derive.SyncIngredientLists(material.CompositionPL, material.IngredientShares, material.IngredientOrigins)
			material.IngredientShares = shares
			material.IngredientOrigins = origins

			if !found {
				if err := tx.Create(&material).Error; err != nil {
					return fmt.Errorf("create raw material %q: %w", name, err)
				}
				created++
				return nil
			}
			if err := tx.Save(&material).Error; err != nil {
				return fmt.Errorf("update raw material %q: %w", name, err)
			}
			updated++
			return nil
		})
		if txErr != nil {
			return created, updated, fmt.Errorf("record %d (%s): %w", idx+1, name, txErr)
		}
	}

	applog.Info(ctx, "raw material import finished", "created", created, "updated", updated)
	return created, updated, nil
}

func (row materialRow) apply(material *models.RawMaterial) {
	material.Name = strings.TrimSpace(row.Name)
	material.NameEN = strings.TrimSpace(row.NameEN)
	material.Category = strings.TrimSpace(row.Category)
	if material.Category == "" {
		material.Category = "Inne"
	}
	material.OriginCountries = strings.TrimSpace(row.OriginCountries)
	material.CompositionPL = strings.TrimSpace(row.CompositionPL)
	material.CompositionEN = strings.TrimSpace(row.CompositionEN)

	material.Nutrition = models.NutritionFacts{
		EnergyKJ:     derive.ParsePercent(row.EnergyKJ),
		EnergyKcal:   derive.ParsePercent(row.EnergyKcal),
		Fat:          derive.ParsePercent(row.Fat),
		SaturatedFat: derive.ParsePercent(row.SaturatedFat),
		Carbohydrate: derive.ParsePercent(row.Carbohydrate),
		Sugar:        derive.ParsePercent(row.Sugar),
		Protein:      derive.ParsePercent(row.Protein),
		Salt:         derive.ParsePercent(row.Salt),
		Fiber:        derive.ParsePercent(row.Fiber),
	}

	var profile models.AllergenProfile
	for allergen, label := range row.allergenLabels() {
		profile.Set(allergen, models.ParseAllergenState(label))
	}
	material.Allergens = profile
}

func (row materialRow) allergenLabels() map[models.Allergen]string {
	return map[models.Allergen]string{
		models.AllergenGluten:         row.Gluten,
		models.AllergenCrustaceans:    row.Crustaceans,
		models.AllergenEggs:           row.Eggs,
		models.AllergenFish:           row.Fish,
		models.AllergenPeanuts:        row.Peanuts,
		models.AllergenSoy:            row.Soy,
		models.AllergenMilk:           row.Milk,
		models.AllergenNuts:           row.Nuts,
		models.AllergenCelery:         row.Celery,
		models.AllergenMustard:        row.Mustard,
		models.AllergenSesame:         row.Sesame,
		models.AllergenSulphurDioxide: row.SulphurDioxide,
		models.AllergenLupin:          row.Lupin,
		models.AllergenMolluscs:       row.Molluscs,
	}
}
