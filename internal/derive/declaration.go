package derive

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"specyfikacje/models"
)

// OriginStatement is one ingredient of the finished product with its share of
// the product and the countries it comes from.
type OriginStatement struct {
	Name      string   `json:"name"`
	Percent   float64  `json:"percent"`
	Countries []string `json:"countries"`
}

type ingredientTotal struct {
	name      string
	percent   float64
	countries map[string]struct{}
}

// expandComposition breaks every composition line into the ingredients of its
// raw material. A raw material without a named percentage breakdown counts as
// a single ingredient named after the material itself.
func expandComposition(lines []models.CompositionLine, lang string) []*ingredientTotal {
	var ordered []*ingredientTotal
	byName := make(map[string]*ingredientTotal)
	add := func(name string, percent float64, countries []string) {
		total, ok := byName[name]
		if !ok {
			total = &ingredientTotal{name: name, countries: make(map[string]struct{})}
			byName[name] = total
			ordered = append(ordered, total)
		}
		total.percent += percent
		for _, country := range countries {
			total.countries[country] = struct{}{}
		}
	}

	for _, line := range lines {
		material := line.RawMaterial
		if material == nil {
			continue
		}

		countriesByName := make(map[string][]string, len(material.IngredientOrigins))
		for _, origin := range material.IngredientOrigins {
			name := strings.TrimSpace(origin.Name)
			if name != "" {
				countriesByName[name] = splitCountries(origin.Countries)
			}
		}

		found := false
		for _, share := range material.IngredientShares {
			name := strings.TrimSpace(share.Name)
			if name == "" {
				continue
			}
			add(name, share.Percent/100.0*line.Percent, countriesByName[name])
			found = true
		}
		if found {
			continue
		}

		name := material.Name
		if lang == "en" && strings.TrimSpace(material.NameEN) != "" {
			name = material.NameEN
		}
		add(name, line.Percent, splitCountries(material.OriginCountries))
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].percent > ordered[j].percent
	})
	return ordered
}

// IngredientDeclaration renders the ingredient list of the finished product,
// largest share first, as "name (p%)" entries. lang "en" prefers the English
// names of raw materials without a breakdown.
func IngredientDeclaration(lines []models.CompositionLine, lang string) string {
	totals := expandComposition(lines, lang)
	parts := make([]string, 0, len(totals))
	for _, total := range totals {
		if total.percent <= 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s%%)", total.name, formatRounded(total.percent, 2)))
	}
	return strings.Join(parts, ", ")
}

// IngredientOrigins lists every ingredient of the finished product with its
// share and sorted countries of origin, largest share first.
func IngredientOrigins(lines []models.CompositionLine) []OriginStatement {
	totals := expandComposition(lines, "pl")
	statements := make([]OriginStatement, 0, len(totals))
	for _, total := range totals {
		countries := make([]string, 0, len(total.countries))
		for country := range total.countries {
			countries = append(countries, country)
		}
		sort.Strings(countries)
		statements = append(statements, OriginStatement{
			Name:      total.name,
			Percent:   round(total.percent, 4),
			Countries: countries,
		})
	}
	return statements
}

func splitCountries(value string) []string {
	var countries []string
	for _, part := range strings.Split(value, ",") {
		if country := strings.TrimSpace(part); country != "" {
			countries = append(countries, country)
		}
	}
	return countries
}

func round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

func formatRounded(value float64, places int) string {
	return strconv.FormatFloat(round(value, places), 'f', -1, 64)
}
