package pages

import (
	"strings"

	"specyfikacje/internal/derive"
	"specyfikacje/models"
)

// ProductCardData is everything the product specification card shows.
type ProductCardData struct {
	Product  models.Product
	Analysis derive.Analysis
}

// NewProductCardData derives the analysis of product for display.
func NewProductCardData(product models.Product) ProductCardData {
	return ProductCardData{Product: product, Analysis: derive.Analyze(product)}
}

func identityRows(p models.Product) []detail {
	return []detail{
		{Label: "EAN", Value: DefaultDash(p.EAN)},
		{Label: "EAN kartonu", Value: DefaultDash(p.CartonEAN)},
		{Label: "Indeks", Value: DefaultDash(p.InternalID)},
		{Label: "Nazwa prawna", Value: DefaultDash(p.LegalNamePL)},
		{Label: "Kategoria", Value: DefaultDash(p.Category)},
		{Label: "Masa netto", Value: DefaultDash(p.NetMass)},
		{Label: "Okres przydatności", Value: DefaultDash(p.ShelfLife)},
		{Label: "Warunki przechowywania", Value: DefaultDash(p.StorageConditions)},
	}
}

type compositionRow struct {
	Position string
	Name     string
	Percent  string
}

// compositionRows numbers the recipe lines in declaration order.
func compositionRows(lines []models.CompositionLine) []compositionRow {
	ordered := derive.OrderedComposition(lines)
	rows := make([]compositionRow, 0, len(ordered))
	for i, line := range ordered {
		name := emptyValue
		if line.RawMaterial != nil {
			name = line.RawMaterial.Name
		}
		rows = append(rows, compositionRow{
			Position: FormatNumber(float64(i+1), 0),
			Name:     name,
			Percent:  FormatNumber(line.Percent, 3),
		})
	}
	return rows
}

func originRows(origins []derive.OriginStatement) []detail {
	rows := make([]detail, 0, len(origins))
	for _, origin := range origins {
		rows = append(rows, detail{
			Label: origin.Name + " (" + FormatNumber(origin.Percent, 2) + "%)",
			Value: DefaultDash(strings.Join(origin.Countries, ", ")),
		})
	}
	return rows
}

func logisticsRows(l models.Logistics) []detail {
	return []detail{
		{Label: "Sztuk w opakowaniu zbiorczym", Value: FormatOptional(l.UnitsPerPackage, "")},
		{Label: "Opakowań na warstwie", Value: FormatOptional(l.PackagesPerLayer, "")},
		{Label: "Warstw na palecie", Value: FormatOptional(l.LayersPerPallet, "")},
		{Label: "Sztuk na warstwie", Value: FormatCount(l.UnitsPerLayer)},
		{Label: "Opakowań na palecie", Value: FormatCount(l.PackagesPerPallet)},
		{Label: "Sztuk na palecie", Value: FormatCount(l.UnitsPerPallet)},
		{Label: "Wysokość palety", Value: FormatOptional(l.PalletHeight, "cm")},
		{Label: "Typ palety", Value: DefaultDash(l.PalletType)},
		{Label: "Masa netto sztuki", Value: FormatOptional(l.NetWeightUnit, "kg")},
		{Label: "Masa brutto sztuki", Value: FormatOptional(l.GrossWeightUnit, "kg")},
	}
}

func totalClass(a derive.Analysis) string {
	for _, warning := range a.Warnings {
		if warning.Code == derive.WarningPercentTotal || warning.Code == derive.WarningEmptyComposition {
			return "total total-invalid"
		}
	}
	return "total"
}
