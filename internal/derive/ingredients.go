package derive

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"specyfikacje/models"
)

var (
	ingredientSeparators = regexp.MustCompile(`[,;]+`)
	// Pasted label text usually opens with "Składniki:".
	ingredientHeader = regexp.MustCompile(`(?i)^\s*skład(?:niki)?\s*:\s*`)
	headerWords      = []string{"skład", "składniki"}
)

// ParseIngredientNames splits a free-text ingredient description on commas and
// semicolons into trimmed, whitespace-normalised names in input order.
// Runs of separators count as one split point. Empty tokens and tokens
// carrying the "skład"/"składniki" label header are dropped; duplicates are kept.
func ParseIngredientNames(text string) []string {
	text = norm.NFC.String(text)
	text = ingredientHeader.ReplaceAllString(text, "")

	parts := ingredientSeparators.Split(text, -1)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.Join(strings.Fields(part), " ")
		if name == "" || isHeaderToken(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func isHeaderToken(name string) bool {
	lower := strings.ToLower(name)
	for _, word := range headerWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// SyncIngredientLists rebuilds the percentage and origin lists of a raw
// material from its composition text. Names already present keep their
// percentage or countries, new names start at 0% with no countries, and names
// missing from the text are dropped. Blank text leaves both lists untouched
// and reports false.
func SyncIngredientLists(text string, shares []models.IngredientShare, origins []models.IngredientOrigin) ([]models.IngredientShare, []models.IngredientOrigin, bool) {
	if strings.TrimSpace(text) == "" {
		return shares, origins, false
	}

	names := ParseIngredientNames(text)

	shareByName := make(map[string]models.IngredientShare, len(shares))
	for _, share := range shares {
		key := norm.NFC.String(share.Name)
		if _, seen := shareByName[key]; !seen {
			shareByName[key] = share
		}
	}
	originByName := make(map[string]models.IngredientOrigin, len(origins))
	for _, origin := range origins {
		key := norm.NFC.String(origin.Name)
		if _, seen := originByName[key]; !seen {
			originByName[key] = origin
		}
	}

	nextShares := make([]models.IngredientShare, 0, len(names))
	nextOrigins := make([]models.IngredientOrigin, 0, len(names))
	for _, name := range names {
		share, ok := shareByName[name]
		if !ok {
			share = models.IngredientShare{Name: name}
		}
		nextShares = append(nextShares, share)

		origin, ok := originByName[name]
		if !ok {
			origin = models.IngredientOrigin{Name: name}
		}
		nextOrigins = append(nextOrigins, origin)
	}
	return nextShares, nextOrigins, true
}
