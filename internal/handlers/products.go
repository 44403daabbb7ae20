package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"specyfikacje/internal/derive"
	applog "specyfikacje/internal/log"
	"specyfikacje/models"
)

const (
	productsPrefix = "/app/api/products"
	// emptyEANPath addresses a product stored with an empty EAN.
	emptyEANPath    = "~"
	suggestionsPath = "suggestions"
)

type compositionLineRequest struct {
	RawMaterialID uint    `json:"raw_material_id"`
	Percent       float64 `json:"percent"`
}

type productRequest struct {
	models.Product
	Composition []compositionLineRequest `json:"composition"`
}

type productResponse struct {
	models.Product
	Warnings []derive.Warning `json:"warnings"`
}

type productSummary struct {
	EAN         string `json:"ean"`
	InternalID  string `json:"internal_id"`
	NamePL      string `json:"name_pl"`
	NameEN      string `json:"name_en"`
	Category    string `json:"category"`
	ProductType string `json:"product_type"`
}

// ProductResource handles CRUD for finished products and serves their derived analysis.
func ProductResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r) {
		return
	}

	segments := splitResourcePath(r, productsPrefix)
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listProducts(w, r)
		case http.MethodPost:
			createProduct(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if len(segments) == 1 && segments[0] == suggestionsPath {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		listSuggestions(w, r)
		return
	}

	if len(segments) > 2 {
		http.NotFound(w, r)
		return
	}
	ean := eanFromPath(segments[0])

	if len(segments) == 2 {
		if segments[1] != "analysis" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		showProductAnalysis(w, r, ean)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showProduct(w, r, ean)
	case http.MethodPut:
		updateProduct(w, r, ean)
	case http.MethodDelete:
		deleteProduct(w, r, ean)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func eanFromPath(segment string) string {
	if segment == emptyEANPath {
		return ""
	}
	return strings.TrimSpace(segment)
}

// EANPath renders ean as a URL path segment.
func EANPath(ean string) string {
	if ean == "" {
		return emptyEANPath
	}
	return ean
}

func listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	products, err := findProducts(ctx, r.URL.Query().Get("q"))
	if err != nil {
		applog.Error(ctx, "failed to list products", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load products")
		return
	}

	summaries := make([]productSummary, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, productSummary{
			EAN:         product.EAN,
			InternalID:  product.InternalID,
			NamePL:      product.NamePL,
			NameEN:      product.NameEN,
			Category:    product.Category,
			ProductType: product.ProductType,
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func findProducts(ctx context.Context, search string) ([]models.Product, error) {
	query := database.WithContext(ctx).Order("name_pl asc")
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name_pl) LIKE ? OR LOWER(name_en) LIKE ? OR ean LIKE ?", pattern, pattern, pattern)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func showProduct(w http.ResponseWriter, r *http.Request, ean string) {
	product, err := loadProduct(r.Context(), database, ean)
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productResponse{Product: product, Warnings: derive.CheckComposition(product.Composition)})
}

func showProductAnalysis(w http.ResponseWriter, r *http.Request, ean string) {
	product, err := loadProduct(r.Context(), database, ean)
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, derive.Analyze(product))
}

func createProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload productRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := payload.Product
	product.EAN = strings.TrimSpace(product.EAN)
	if err := prepareProduct(&product); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	derive.RefreshLogistics(nil, &product.Logistics)

	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Product{}).Where("ean = ?", product.EAN).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errDuplicateEAN
		}
		if err := tx.Omit("Composition").Create(&product).Error; err != nil {
			return err
		}
		return replaceComposition(tx, product.EAN, payload.Composition)
	})
	if err != nil {
		writeProductError(w, r, err)
		return
	}

	saved, err := loadProduct(ctx, database, product.EAN)
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	warnings := derive.CheckComposition(saved.Composition)
	applog.Info(ctx, "product created", "ean", saved.EAN, "lines", len(saved.Composition), "warnings", len(warnings))
	putFlash(r, fmt.Sprintf("Dodano wyrób %q.", saved.NamePL))
	writeJSON(w, http.StatusCreated, productResponse{Product: saved, Warnings: warnings})
}

// updateProduct replaces the product fields and its composition. Derived
// logistics are refreshed against the stored state so only changed inputs
// trigger a recomputation.
func updateProduct(w http.ResponseWriter, r *http.Request, ean string) {
	ctx := r.Context()
	var payload productRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	incoming := payload.Product
	incoming.EAN = ean
	if err := prepareProduct(&incoming); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var countsRecomputed, heightRecomputed bool
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored models.Product
		if err := tx.First(&stored, "ean = ?", ean).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errProductNotFound
			}
			return err
		}

		countsRecomputed, heightRecomputed = derive.RefreshLogistics(&stored.Logistics, &incoming.Logistics)

		err := tx.Model(&models.Product{}).
			Where("ean = ?", ean).
			Select("*").
			Omit("EAN", "CreatedAt", "Composition").
			Updates(&incoming).Error
		if err != nil {
			return err
		}
		return replaceComposition(tx, ean, payload.Composition)
	})
	if err != nil {
		writeProductError(w, r, err)
		return
	}

	saved, err := loadProduct(ctx, database, ean)
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	warnings := derive.CheckComposition(saved.Composition)
	applog.Info(ctx, "product updated", "ean", ean, "lines", len(saved.Composition),
		"counts_recomputed", countsRecomputed, "height_recomputed", heightRecomputed, "warnings", len(warnings))
	if len(warnings) > 0 {
		applog.Warn(ctx, "product composition has warnings", "ean", ean, "first", warnings[0].Code)
	}
	putFlash(r, fmt.Sprintf("Zapisano wyrób %q.", saved.NamePL))
	writeJSON(w, http.StatusOK, productResponse{Product: saved, Warnings: warnings})
}

func deleteProduct(w http.ResponseWriter, r *http.Request, ean string) {
	ctx := r.Context()
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("ean = ?", ean).Delete(&models.Product{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errProductNotFound
		}
		return tx.Where("product_ean = ?", ean).Delete(&models.CompositionLine{}).Error
	})
	if err != nil {
		writeProductError(w, r, err)
		return
	}

	applog.Info(ctx, "product deleted", "ean", ean)
	w.WriteHeader(http.StatusNoContent)
}

// replaceComposition swaps the stored lines of a product for lines, keeping
// their submitted order as positions.
func replaceComposition(tx *gorm.DB, ean string, lines []compositionLineRequest) error {
	if err := tx.Where("product_ean = ?", ean).Delete(&models.CompositionLine{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.RawMaterialID)
	}
	var known []uint
	if err := tx.Model(&models.RawMaterial{}).Where("id IN ?", ids).Pluck("id", &known).Error; err != nil {
		return err
	}
	exists := make(map[uint]bool, len(known))
	for _, id := range known {
		exists[id] = true
	}

	records := make([]models.CompositionLine, 0, len(lines))
	for i, line := range lines {
		if !exists[line.RawMaterialID] {
			return &unknownRawMaterialError{id: line.RawMaterialID}
		}
		records = append(records, models.CompositionLine{
			ProductEAN:    ean,
			RawMaterialID: line.RawMaterialID,
			Percent:       line.Percent,
			Position:      i + 1,
		})
	}
	return tx.Omit("RawMaterial").Create(&records).Error
}

type unknownRawMaterialError struct {
	id uint
}

func (e *unknownRawMaterialError) Error() string {
	return fmt.Sprintf("raw material %d does not exist", e.id)
}

func loadProduct(ctx context.Context, db *gorm.DB, ean string) (models.Product, error) {
	var product models.Product
	err := db.WithContext(ctx).
		Preload("Composition", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc, id asc")
		}).
		Preload("Composition.RawMaterial").
		First(&product, "ean = ?", ean).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product, errProductNotFound
		}
		return product, err
	}
	return product, nil
}

// prepareProduct normalises a submitted product and rejects unusable input.
func prepareProduct(product *models.Product) error {
	product.NamePL = strings.TrimSpace(product.NamePL)
	product.ProductType = strings.TrimSpace(product.ProductType)
	if product.ProductType == "" {
		product.ProductType = "inne"
	}
	product.Composition = nil
	product.CreatedAt = time.Time{}
	if product.NamePL == "" {
		return errors.New("name_pl is required")
	}
	if len(product.EAN) > 13 {
		return errors.New("ean must have at most 13 characters")
	}
	if product.EAN == suggestionsPath || product.EAN == emptyEANPath {
		return fmt.Errorf("ean %q is reserved", product.EAN)
	}
	return nil
}

func writeProductError(w http.ResponseWriter, r *http.Request, err error) {
	var unknown *unknownRawMaterialError
	switch {
	case errors.Is(err, errProductNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errDuplicateEAN):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.As(err, &unknown):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		applog.Error(r.Context(), "product request failed", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to process product")
	}
}
