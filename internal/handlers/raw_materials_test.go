package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"specyfikacje/models"
)

func TestRawMaterialCRUD(t *testing.T) {
	_, cleanupDB := withCatalogTestDatabase(t)
	t.Cleanup(cleanupDB)

	createPayload := map[string]any{
		"name":           "  Masa kakaowa ",
		"composition_pl": "Składniki: Kakao, Cukier",
		"nutrition":      map[string]any{"energy_kj": 2400, "fat": 53},
		"allergens":      map[string]any{"milk": "Może zawierać"},
	}
	w := httptest.NewRecorder()
	RawMaterialResource(w, jsonRequest(t, http.MethodPost, "/app/api/raw-materials", createPayload))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created models.RawMaterial
	decodeBody(t, w, &created)
	if created.Name != "Masa kakaowa" || created.Category != "Inne" {
		t.Fatalf("unexpected created material: %+v", created)
	}
	if len(created.IngredientShares) != 2 || created.IngredientShares[0].Name != "Kakao" || created.IngredientShares[1].Percent != 0 {
		t.Fatalf("expected ingredient shares parsed from composition, got %+v", created.IngredientShares)
	}
	if created.Allergens.Milk != models.AllergenMayContain {
		t.Fatalf("milk = %v, want may contain", created.Allergens.Milk)
	}
	if created.Nutrition.EnergyKJ != 2400 {
		t.Fatalf("energy = %v", created.Nutrition.EnergyKJ)
	}

	w = httptest.NewRecorder()
	RawMaterialResource(w, jsonRequest(t, http.MethodPost, "/app/api/raw-materials", map[string]any{"name": "Masa kakaowa"}))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for duplicate name, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	RawMaterialResource(w, httptest.NewRequest(http.MethodGet, "/app/api/raw-materials?q=KAKAO", nil))
	var listed []models.RawMaterial
	decodeBody(t, w, &listed)
	if w.Code != http.StatusOK || len(listed) != 1 {
		t.Fatalf("expected one listed material, got %d %+v", w.Code, listed)
	}

	updatePayload := map[string]any{
		"name":              "Masa kakaowa",
		"category":          "Kakao",
		"composition_pl":    "Kakao, Cukier",
		"ingredient_shares": []map[string]any{{"name": "Kakao", "percent": 70}, {"name": "Cukier", "percent": 30}},
		"allergens":         map[string]any{"milk": "Zawiera"},
	}
	target := fmt.Sprintf("/app/api/raw-materials/%d", created.ID)
	w = httptest.NewRecorder()
	RawMaterialResource(w, jsonRequest(t, http.MethodPut, target, updatePayload))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for update, got %d: %s", w.Code, w.Body.String())
	}
	var updated models.RawMaterial
	decodeBody(t, w, &updated)
	if updated.Category != "Kakao" || updated.IngredientShares[0].Percent != 70 || updated.Allergens.Milk != models.AllergenPresent {
		t.Fatalf("unexpected updated material: %+v", updated)
	}

	w = httptest.NewRecorder()
	RawMaterialResource(w, httptest.NewRequest(http.MethodGet, target, nil))
	var shown models.RawMaterial
	decodeBody(t, w, &shown)
	if w.Code != http.StatusOK || shown.IngredientShares[1].Name != "Cukier" {
		t.Fatalf("unexpected show response %d %+v", w.Code, shown)
	}

	w = httptest.NewRecorder()
	RawMaterialResource(w, httptest.NewRequest(http.MethodDelete, target, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for delete, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	RawMaterialResource(w, httptest.NewRequest(http.MethodGet, target, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", w.Code)
	}
}

func TestRawMaterialValidation(t *testing.T) {
	_, cleanupDB := withCatalogTestDatabase(t)
	t.Cleanup(cleanupDB)

	tests := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{"missing name", jsonRequest(t, http.MethodPost, "/app/api/raw-materials", map[string]any{"name": " "}), http.StatusBadRequest},
		{"share out of range", jsonRequest(t, http.MethodPost, "/app/api/raw-materials", map[string]any{"name": "X", "ingredient_shares": []map[string]any{{"name": "a", "percent": 120}}}), http.StatusBadRequest},
		{"negative nutrition", jsonRequest(t, http.MethodPost, "/app/api/raw-materials", map[string]any{"name": "X", "nutrition": map[string]any{"fat": -5}}), http.StatusBadRequest},
		{"negative nutrition on update", jsonRequest(t, http.MethodPut, "/app/api/raw-materials/999", map[string]any{"name": "X", "nutrition": map[string]any{"salt": -0.1}}), http.StatusBadRequest},
		{"invalid body", httptest.NewRequest(http.MethodPost, "/app/api/raw-materials", bytes.NewBufferString("{")), http.StatusBadRequest},
		{"invalid id", httptest.NewRequest(http.MethodGet, "/app/api/raw-materials/abc", nil), http.StatusNotFound},
		{"unknown action", httptest.NewRequest(http.MethodPost, "/app/api/raw-materials/1/unknown", nil), http.StatusNotFound},
		{"method not allowed", httptest.NewRequest(http.MethodPatch, "/app/api/raw-materials", nil), http.StatusMethodNotAllowed},
		{"update missing", jsonRequest(t, http.MethodPut, "/app/api/raw-materials/999", map[string]any{"name": "X"}), http.StatusNotFound},
		{"delete missing", httptest.NewRequest(http.MethodDelete, "/app/api/raw-materials/999", nil), http.StatusNotFound},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		RawMaterialResource(w, tt.req)
		if w.Code != tt.status {
			t.Fatalf("%s: expected status %d, got %d", tt.name, tt.status, w.Code)
		}
	}
}

func TestRawMaterialDeleteBlockedWhileInUse(t *testing.T) {
	db, cleanupDB := withCatalogTestDatabase(t)
	t.Cleanup(cleanupDB)

	_, milk := seedRawMaterials(t, db)
	line := models.CompositionLine{ProductEAN: "5901234123457", RawMaterialID: milk.ID, Percent: 100, Position: 1}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("failed to create composition line: %v", err)
	}

	w := httptest.NewRecorder()
	RawMaterialResource(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/app/api/raw-materials/%d", milk.ID), nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestRawMaterialSyncIngredients(t *testing.T) {
	db, cleanupDB := withCatalogTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	material := models.RawMaterial{
		Name:              "Baza",
		IngredientShares:  []models.IngredientShare{{Name: "Cukier", Percent: 60}, {Name: "Aromat", Percent: 5}},
		IngredientOrigins: []models.IngredientOrigin{{Name: "Cukier", Countries: "Polska"}},
	}
	if err := db.Create(&material).Error; err != nil {
		t.Fatalf("failed to create raw material: %v", err)
	}
	target := fmt.Sprintf("/app/api/raw-materials/%d/sync-ingredients", material.ID)

	req := withSession(t, sm, httptest.NewRequest(http.MethodPost, target, nil))
	w := httptest.NewRecorder()
	RawMaterialResource(w, req)
	var noop syncIngredientsResponse
	decodeBody(t, w, &noop)
	if w.Code != http.StatusOK || noop.Changed || len(noop.RawMaterial.IngredientShares) != 2 {
		t.Fatalf("expected blank composition to be a no-op, got %d %+v", w.Code, noop)
	}

	req = withSession(t, sm, jsonRequest(t, http.MethodPost, target, map[string]string{"text": "Składniki: Cukier;; Mleko"}))
	w = httptest.NewRecorder()
	RawMaterialResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var synced syncIngredientsResponse
	decodeBody(t, w, &synced)
	if !synced.Changed {
		t.Fatal("expected lists to change")
	}
	shares := synced.RawMaterial.IngredientShares
	if len(shares) != 2 || shares[0].Name != "Cukier" || shares[0].Percent != 60 || shares[1].Name != "Mleko" || shares[1].Percent != 0 {
		t.Fatalf("unexpected shares %+v", shares)
	}
	origins := synced.RawMaterial.IngredientOrigins
	if len(origins) != 2 || origins[0].Countries != "Polska" || origins[1].Countries != "" {
		t.Fatalf("unexpected origins %+v", origins)
	}
	if synced.RawMaterial.CompositionPL != "Składniki: Cukier;; Mleko" {
		t.Fatalf("composition = %q", synced.RawMaterial.CompositionPL)
	}
	if flash := sm.GetString(req.Context(), sessionFlashKey); flash == "" {
		t.Fatal("expected flash message after synchronisation")
	}

	var stored models.RawMaterial
	if err := db.First(&stored, material.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(stored.IngredientShares) != 2 || stored.IngredientShares[1].Name != "Mleko" {
		t.Fatalf("expected synchronised lists to be persisted, got %+v", stored.IngredientShares)
	}
}

func multipartUpload(t *testing.T, target, field string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "specyfikacja.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestRawMaterialImportPDFRejectsBadUploads(t *testing.T) {
	db, cleanupDB := withCatalogTestDatabase(t)
	t.Cleanup(cleanupDB)

	chocolate, _ := seedRawMaterials(t, db)
	target := fmt.Sprintf("/app/api/raw-materials/%d/import-pdf", chocolate.ID)

	tests := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{"no multipart body", httptest.NewRequest(http.MethodPost, target, nil), http.StatusBadRequest},
		{"wrong field", multipartUpload(t, target, "document", []byte("%PDF-1.4")), http.StatusBadRequest},
		{"not a pdf", multipartUpload(t, target, "file", []byte("Składniki: cukier")), http.StatusBadRequest},
		{"broken pdf", multipartUpload(t, target, "file", []byte("%PDF-1.4 broken")), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		RawMaterialResource(w, tt.req)
		if w.Code != tt.status {
			t.Fatalf("%s: expected status %d, got %d: %s", tt.name, tt.status, w.Code, w.Body.String())
		}
	}
}

func TestCompositionParagraph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "labelled paragraph",
			text: "Karta produktu\nNazwa: krem\n\nSkładniki: cukier, olej\npalmowy, kakao\n\nPrzechowywanie: sucho",
			want: "Składniki: cukier, olej palmowy, kakao",
		},
		{name: "no label", text: "  cukier,\n kakao  ", want: "cukier, kakao"},
		{name: "empty", text: "", want: ""},
	}
	for _, tt := range tests {
		if got := compositionParagraph(tt.text); got != tt.want {
			t.Fatalf("%s: compositionParagraph = %q, want %q", tt.name, got, tt.want)
		}
	}
}
