package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/spf13/cast"

	applog "specyfikacje/internal/log"
	"specyfikacje/models"
)

const (
	maxSuggestions = 10
	// recentSuggestionWindow bounds how many recently updated products are
	// scanned for distinct values.
	recentSuggestionWindow = 50
	certificateKindField   = "certificate_kind"
)

// suggestionColumns maps the accepted field names onto product columns.
var suggestionColumns = map[string]string{
	"taste":              "taste_description",
	"smell":              "smell_description",
	"colour":             "colour_description",
	"appearance":         "appearance_description",
	"cross_section":      "cross_section_desc",
	"storage_conditions": "storage_conditions",
	"shelf_life":         "shelf_life",
	"date_format":        "date_format",
	"additional_info":    "additional_info",
	"legal_name_pl":      "legal_name_pl",
	"legal_name_en":      "legal_name_en",
	"cn_code":            "cn_code",
	"pkwiu_code":         "pkwiu_code",
	"pallet_type":        "logistics_pallet_type",
}

type suggestionQuery struct {
	field      string
	search     string
	recent     bool
	excludeEAN *string
}

// listSuggestions returns up to ten distinct values already used in other
// products for one free-text field, for autocompletion.
func listSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	values := r.URL.Query()
	query := suggestionQuery{
		field:  strings.TrimSpace(values.Get("field")),
		search: strings.TrimSpace(values.Get("q")),
		recent: cast.ToBool(values.Get("recent")),
	}
	if current := values.Get("current_ean"); current != "" {
		ean := eanFromPath(current)
		query.excludeEAN = &ean
	}

	var (
		suggestions []string
		err         error
	)
	if query.field == certificateKindField {
		suggestions, err = certificateKindSuggestions(ctx, query)
	} else {
		column, ok := suggestionColumns[query.field]
		if !ok {
			writeJSONError(w, http.StatusBadRequest, "invalid field: "+query.field)
			return
		}
		suggestions, err = columnSuggestions(ctx, column, query)
	}
	if err != nil {
		applog.Error(ctx, "failed to load suggestions", "field", query.field, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load suggestions")
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func columnSuggestions(ctx context.Context, column string, query suggestionQuery) ([]string, error) {
	tx := database.WithContext(ctx).
		Model(&models.Product{}).
		Where(column + " IS NOT NULL").
		Where(column + " <> ''")
	if query.search != "" {
		tx = tx.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(query.search)+"%")
	}
	if query.excludeEAN != nil {
		tx = tx.Where("ean <> ?", *query.excludeEAN)
	}

	var values []string
	if !query.recent {
		err := tx.Distinct(column).Order(column + " asc").Limit(maxSuggestions).Pluck(column, &values).Error
		return values, err
	}

	if err := tx.Order("updated_at desc").Limit(recentSuggestionWindow).Pluck(column, &values).Error; err != nil {
		return nil, err
	}
	unique := make([]string, 0, maxSuggestions)
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		if seen[value] {
			continue
		}
		seen[value] = true
		unique = append(unique, value)
		if len(unique) == maxSuggestions {
			break
		}
	}
	return unique, nil
}

// certificateKindSuggestions collects certificate kinds from the JSON
// certificate lists, sorted alphabetically.
func certificateKindSuggestions(ctx context.Context, query suggestionQuery) ([]string, error) {
	tx := database.WithContext(ctx).Model(&models.Product{}).Select("ean", "certificates").Where("certificates IS NOT NULL")
	if query.excludeEAN != nil {
		tx = tx.Where("ean <> ?", *query.excludeEAN)
	}
	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, err
	}

	search := strings.ToLower(query.search)
	kinds := make(map[string]bool)
	for _, product := range products {
		for _, certificate := range product.Certificates {
			kind := strings.TrimSpace(certificate.Kind)
			if kind == "" || !strings.Contains(strings.ToLower(kind), search) {
				continue
			}
			kinds[kind] = true
		}
	}

	suggestions := make([]string, 0, len(kinds))
	for kind := range kinds {
		suggestions = append(suggestions, kind)
	}
	sort.Strings(suggestions)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}
