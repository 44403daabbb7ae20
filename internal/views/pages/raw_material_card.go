package pages

import "specyfikacje/models"

func rawMaterialIdentityRows(material models.RawMaterial) []detail {
	return []detail{
		{Label: "Kategoria", Value: DefaultDash(material.Category)},
		{Label: "Kraj pochodzenia", Value: DefaultDash(material.OriginCountries)},
	}
}

type shareRow struct {
	Name    string
	Percent string
	Origin  string
}

// shareRows pairs each ingredient share with the first origin recorded
// under the same name.
func shareRows(material models.RawMaterial) []shareRow {
	origins := make(map[string]string, len(material.IngredientOrigins))
	for _, origin := range material.IngredientOrigins {
		if _, seen := origins[origin.Name]; !seen {
			origins[origin.Name] = origin.Countries
		}
	}
	rows := make([]shareRow, 0, len(material.IngredientShares))
	for _, share := range material.IngredientShares {
		rows = append(rows, shareRow{
			Name:    share.Name,
			Percent: FormatNumber(share.Percent, 3),
			Origin:  DefaultDash(origins[share.Name]),
		})
	}
	return rows
}
