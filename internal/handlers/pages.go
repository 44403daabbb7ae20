package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	applog "specyfikacje/internal/log"
	"specyfikacje/internal/views/layout"
	"specyfikacje/internal/views/pages"
	"specyfikacje/models"
)

// Home redirects to the product index.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/app/products", http.StatusSeeOther)
}

// ProductPages serves the product index and product specification cards.
func ProductPages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireDatabase(w, r) {
		return
	}

	ctx := r.Context()
	segments := splitResourcePath(r, "/app/products")
	switch len(segments) {
	case 0:
		search := r.URL.Query().Get("q")
		products, err := findProducts(ctx, search)
		if err != nil {
			applog.Error(ctx, "failed to list products", "error", err)
			http.Error(w, "unable to load products", http.StatusInternalServerError)
			return
		}
		links := make([]pages.ProductLink, 0, len(products))
		for _, product := range products {
			links = append(links, pages.ProductLink{Product: product, Path: EANPath(product.EAN)})
		}
		renderPage(w, r, "Wyroby", "products", pages.ProductList(links, search))
	case 1:
		product, err := loadProduct(ctx, database, eanFromPath(segments[0]))
		if err != nil {
			if errors.Is(err, errProductNotFound) {
				http.NotFound(w, r)
				return
			}
			applog.Error(ctx, "failed to load product card", "error", err)
			http.Error(w, "unable to load product", http.StatusInternalServerError)
			return
		}
		renderPage(w, r, product.NamePL, "products", pages.ProductCard(pages.NewProductCardData(product)))
	default:
		http.NotFound(w, r)
	}
}

// RawMaterialPages serves the raw material index and raw material cards.
func RawMaterialPages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireDatabase(w, r) {
		return
	}

	ctx := r.Context()
	segments := splitResourcePath(r, "/app/raw-materials")
	switch len(segments) {
	case 0:
		var materials []models.RawMaterial
		if err := database.WithContext(ctx).Order("name asc").Find(&materials).Error; err != nil {
			applog.Error(ctx, "failed to list raw materials", "error", err)
			http.Error(w, "unable to load raw materials", http.StatusInternalServerError)
			return
		}
		renderPage(w, r, "Surowce", "raw-materials", pages.RawMaterialList(materials))
	case 1:
		idValue, err := strconv.ParseUint(strings.TrimSpace(segments[0]), 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		material, err := loadRawMaterial(ctx, uint(idValue))
		if err != nil {
			if errors.Is(err, errRawMaterialNotFound) {
				http.NotFound(w, r)
				return
			}
			applog.Error(ctx, "failed to load raw material card", "error", err)
			http.Error(w, "unable to load raw material", http.StatusInternalServerError)
			return
		}
		renderPage(w, r, material.Name, "raw-materials", pages.RawMaterialCard(material))
	default:
		http.NotFound(w, r)
	}
}

// renderPage renders content alone for htmx requests and inside the
// document layout otherwise.
func renderPage(w http.ResponseWriter, r *http.Request, title, section string, content templ.Component) {
	if isHTMX(r) {
		renderComponent(w, r, content)
		return
	}
	renderComponent(w, r, layout.Layout(title, layout.DefaultNav(section), popFlash(r), content))
}
