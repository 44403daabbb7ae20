package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"specyfikacje/models"
)

func TestHomeRedirectsToProducts(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	Home(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/app/products" {
		t.Fatalf("expected redirect to /app/products, got %q", loc)
	}

	w = httptest.NewRecorder()
	Home(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown path, got %d", w.Code)
	}
}

func TestProductPages(t *testing.T) {
	db, cleanupDB := withCatalogTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	chocolate, milk := seedRawMaterials(t, db)
	product := models.Product{EAN: testEAN, NamePL: "Czekolada mleczna", ProductType: "czekolada"}
	if err := db.Omit("Composition").Create(&product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	lines := []models.CompositionLine{
		{ProductEAN: testEAN, RawMaterialID: milk.ID, Percent: 20, Position: 2},
		{ProductEAN: testEAN, RawMaterialID: chocolate.ID, Percent: 80, Position: 1},
	}
	if err := db.Omit("RawMaterial").Create(&lines).Error; err != nil {
		t.Fatalf("failed to create composition: %v", err)
	}

	req := withSession(t, sm, httptest.NewRequest(http.MethodGet, "/app/products/"+testEAN, nil))
	putFlash(req, "Zapisano wyrób.")
	w := httptest.NewRecorder()
	ProductPages(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Czekolada mleczna</title>",
		"Zapisano wyrób.",
		"<strong>Mleko</strong> w proszku (20%)",
		`<span class="badge badge-present">Mleko</span>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in product page:\n%s", want, body)
		}
	}

	fragmentReq := httptest.NewRequest(http.MethodGet, "/app/products/"+testEAN, nil)
	fragmentReq.Header.Set("HX-Request", "true")
	w = httptest.NewRecorder()
	ProductPages(w, fragmentReq)
	if strings.Contains(w.Body.String(), "<!DOCTYPE html>") || !strings.Contains(w.Body.String(), `id="product-card"`) {
		t.Fatalf("expected bare card fragment for htmx request:\n%s", w.Body.String())
	}

	w = httptest.NewRecorder()
	ProductPages(w, withSession(t, sm, httptest.NewRequest(http.MethodGet, "/app/products?q=czekolada", nil)))
	if !strings.Contains(w.Body.String(), `href="/app/products/`+testEAN+`"`) {
		t.Fatalf("expected product link in index:\n%s", w.Body.String())
	}

	w = httptest.NewRecorder()
	ProductPages(w, httptest.NewRequest(http.MethodGet, "/app/products/0000000000000", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown product, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	ProductPages(w, httptest.NewRequest(http.MethodPost, "/app/products", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", w.Code)
	}
}

func TestRawMaterialPages(t *testing.T) {
	db, cleanupDB := withCatalogTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	chocolate, _ := seedRawMaterials(t, db)

	w := httptest.NewRecorder()
	RawMaterialPages(w, withSession(t, sm, httptest.NewRequest(http.MethodGet, "/app/raw-materials", nil)))
	if !strings.Contains(w.Body.String(), fmt.Sprintf(`href="/app/raw-materials/%d"`, chocolate.ID)) {
		t.Fatalf("expected raw material link in index:\n%s", w.Body.String())
	}

	w = httptest.NewRecorder()
	RawMaterialPages(w, withSession(t, sm, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/app/raw-materials/%d", chocolate.ID), nil)))
	body := w.Body.String()
	if w.Code != http.StatusOK || !strings.Contains(body, "<h1>Masa czekoladowa</h1>") || !strings.Contains(body, "<td>Ghana</td>") {
		t.Fatalf("unexpected raw material page %d:\n%s", w.Code, body)
	}

	for _, path := range []string{"/app/raw-materials/abc", "/app/raw-materials/999", "/app/raw-materials/1/extra"} {
		w = httptest.NewRecorder()
		RawMaterialPages(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: expected status 404, got %d", path, w.Code)
		}
	}
}
