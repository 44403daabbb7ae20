package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"specyfikacje/internal/derive"
	applog "specyfikacje/internal/log"
	"specyfikacje/models"
)

const rawMaterialsPrefix = "/app/api/raw-materials"

type rawMaterialRequest struct {
	Name              string                    `json:"name"`
	NameEN            string                    `json:"name_en"`
	Category          string                    `json:"category"`
	OriginCountries   string                    `json:"origin_countries"`
	CompositionPL     string                    `json:"composition_pl"`
	CompositionEN     string                    `json:"composition_en"`
	IngredientShares  []models.IngredientShare  `json:"ingredient_shares"`
	IngredientOrigins []models.IngredientOrigin `json:"ingredient_origins"`
	Nutrition         models.NutritionFacts     `json:"nutrition"`
	Allergens         models.AllergenProfile    `json:"allergens"`
}

type syncIngredientsRequest struct {
	Text string `json:"text"`
}

type syncIngredientsResponse struct {
	RawMaterial models.RawMaterial `json:"raw_material"`
	Changed     bool               `json:"changed"`
}

// RawMaterialResource handles CRUD and ingredient-list maintenance for raw materials.
func RawMaterialResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r) {
		return
	}

	segments := splitResourcePath(r, rawMaterialsPrefix)
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listRawMaterials(w, r)
		case http.MethodPost:
			createRawMaterial(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil || len(segments) > 2 {
		applog.Debug(r.Context(), "invalid raw material path", "path", r.URL.Path, "error", err)
		http.NotFound(w, r)
		return
	}
	materialID := uint(idValue)

	if len(segments) == 2 {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch segments[1] {
		case "sync-ingredients":
			syncRawMaterialIngredients(w, r, materialID)
		case "import-pdf":
			importRawMaterialPDF(w, r, materialID)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		showRawMaterial(w, r, materialID)
	case http.MethodPut:
		updateRawMaterial(w, r, materialID)
	case http.MethodDelete:
		deleteRawMaterial(w, r, materialID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listRawMaterials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := database.WithContext(ctx).Order("name asc")
	if search := strings.TrimSpace(r.URL.Query().Get("q")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(name_en) LIKE ?", pattern, pattern)
	}
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		query = query.Where("category = ?", category)
	}

	var materials []models.RawMaterial
	if err := query.Find(&materials).Error; err != nil {
		applog.Error(ctx, "failed to list raw materials", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load raw materials")
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

func showRawMaterial(w http.ResponseWriter, r *http.Request, materialID uint) {
	material, err := loadRawMaterial(r.Context(), materialID)
	if err != nil {
		writeRawMaterialError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, material)
}

func createRawMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload rawMaterialRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateRawMaterialPayload(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	material := models.RawMaterial{}
	applyRawMaterialPayload(&material, payload)
	if len(material.IngredientShares) == 0 {
		material.IngredientShares, material.IngredientOrigins, _ = derive.SyncIngredientLists(material.CompositionPL, nil, material.IngredientOrigins)
	}

	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, material.Name, 0); err != nil {
			return err
		}
		return tx.Create(&material).Error
	})
	if err != nil {
		writeRawMaterialError(w, r, err)
		return
	}

	applog.Info(ctx, "raw material created", "raw_material_id", material.ID, "name", material.Name)
	putFlash(r, fmt.Sprintf("Dodano surowiec %q.", material.Name))
	writeJSON(w, http.StatusCreated, material)
}

func updateRawMaterial(w http.ResponseWriter, r *http.Request, materialID uint) {
	ctx := r.Context()
	var payload rawMaterialRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateRawMaterialPayload(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var material models.RawMaterial
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&material, materialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRawMaterialNotFound
			}
			return err
		}
		if err := ensureUniqueName(tx, strings.TrimSpace(payload.Name), materialID); err != nil {
			return err
		}
		applyRawMaterialPayload(&material, payload)
		return tx.Save(&material).Error
	})
	if err != nil {
		writeRawMaterialError(w, r, err)
		return
	}

	applog.Info(ctx, "raw material updated", "raw_material_id", material.ID)
	putFlash(r, fmt.Sprintf("Zapisano surowiec %q.", material.Name))
	writeJSON(w, http.StatusOK, material)
}

func deleteRawMaterial(w http.ResponseWriter, r *http.Request, materialID uint) {
	ctx := r.Context()
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var material models.RawMaterial
		if err := tx.First(&material, materialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRawMaterialNotFound
			}
			return err
		}

		var references int64
		if err := tx.Model(&models.CompositionLine{}).Where("raw_material_id = ?", materialID).Count(&references).Error; err != nil {
			return err
		}
		if references > 0 {
			return errMaterialInUse
		}

		return tx.Unscoped().Delete(&material).Error
	})
	if err != nil {
		writeRawMaterialError(w, r, err)
		return
	}

	applog.Info(ctx, "raw material deleted", "raw_material_id", materialID)
	w.WriteHeader(http.StatusNoContent)
}

// syncRawMaterialIngredients rebuilds the percentage and origin lists from the
// submitted text, or from the stored Polish composition when none is given.
func syncRawMaterialIngredients(w http.ResponseWriter, r *http.Request, materialID uint) {
	ctx := r.Context()
	var payload syncIngredientsRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &payload); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	material, changed, err := applyIngredientText(ctx, materialID, payload.Text)
	if err != nil {
		writeRawMaterialError(w, r, err)
		return
	}

	if changed {
		putFlash(r, "Lista składników została zsynchronizowana.")
	}
	writeJSON(w, http.StatusOK, syncIngredientsResponse{RawMaterial: material, Changed: changed})
}

// applyIngredientText stores text as the Polish composition (when non-blank)
// and reconciles the ingredient lists against it.
func applyIngredientText(ctx context.Context, materialID uint, text string) (models.RawMaterial, bool, error) {
	var material models.RawMaterial
	changed := false
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&material, materialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRawMaterialNotFound
			}
			return err
		}

		if strings.TrimSpace(text) != "" {
			material.CompositionPL = strings.TrimSpace(text)
		}
		var shares []models.IngredientShare
		var origins []models.IngredientOrigin
		shares, origins, changed = derive.SyncIngredientLists(material.CompositionPL, material.IngredientShares, material.IngredientOrigins)
		if !changed {
			return nil
		}
		material.IngredientShares = shares
		material.IngredientOrigins = origins
		return tx.Save(&material).Error
	})
	if err == nil {
		applog.Info(ctx, "raw material ingredients synchronised", "raw_material_id", materialID, "changed", changed, "ingredients", len(material.IngredientShares))
	}
	return material, changed, err
}

func loadRawMaterial(ctx context.Context, materialID uint) (models.RawMaterial, error) {
	var material models.RawMaterial
	if err := database.WithContext(ctx).First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return material, errRawMaterialNotFound
		}
		return material, err
	}
	return material, nil
}

func ensureUniqueName(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	query := tx.Model(&models.RawMaterial{}).Where("name = ?", name)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errDuplicateName
	}
	return nil
}

func validateRawMaterialPayload(payload rawMaterialRequest) error {
	if strings.TrimSpace(payload.Name) == "" {
		return errors.New("name is required")
	}
	for _, share := range payload.IngredientShares {
		if share.Percent < 0 || share.Percent > 100 {
			return fmt.Errorf("ingredient %q: percent must be between 0 and 100", share.Name)
		}
	}
	return validateNutrition(payload.Nutrition)
}

func validateNutrition(n models.NutritionFacts) error {
	values := []struct {
		field string
		value float64
	}{
		{"energy_kj", n.EnergyKJ},
		{"energy_kcal", n.EnergyKcal},
		{"fat", n.Fat},
		{"saturated_fat", n.SaturatedFat},
		{"carbohydrate", n.Carbohydrate},
		{"sugar", n.Sugar},
		{"protein", n.Protein},
		{"salt", n.Salt},
		{"fiber", n.Fiber},
	}
	for _, v := range values {
		if v.value < 0 || math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("nutrition %s must be a non-negative number", v.field)
		}
	}
	return nil
}

func applyRawMaterialPayload(material *models.RawMaterial, payload rawMaterialRequest) {
	material.Name = strings.TrimSpace(payload.Name)
	material.NameEN = strings.TrimSpace(payload.NameEN)
	material.Category = strings.TrimSpace(payload.Category)
	if material.Category == "" {
		material.Category = "Inne"
	}
	material.OriginCountries = strings.TrimSpace(payload.OriginCountries)
	material.CompositionPL = strings.TrimSpace(payload.CompositionPL)
	material.CompositionEN = strings.TrimSpace(payload.CompositionEN)
	material.IngredientShares = payload.IngredientShares
	material.IngredientOrigins = payload.IngredientOrigins
	material.Nutrition = payload.Nutrition
	material.Allergens = payload.Allergens
}

func writeRawMaterialError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errRawMaterialNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errDuplicateName), errors.Is(err, errMaterialInUse):
		writeJSONError(w, http.StatusConflict, err.Error())
	default:
		applog.Error(r.Context(), "raw material request failed", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to process raw material")
	}
}
