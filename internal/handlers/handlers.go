package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	applog "specyfikacje/internal/log"
)

const sessionFlashKey = "flash"

// Sentinel errors mapped onto HTTP status codes by the resources.
var (
	errProductNotFound     = errors.New("product not found")
	errRawMaterialNotFound = errors.New("raw material not found")
	errDuplicateEAN        = errors.New("a product with this EAN already exists")
	errDuplicateName       = errors.New("a raw material with this name already exists")
	errMaterialInUse       = errors.New("raw material is used in a product composition")
)

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, db *gorm.DB) {
	sessionManager = sm
	database = db
}

// putFlash stores a one-shot notification shown on the next rendered card.
func putFlash(r *http.Request, message string) {
	if sessionManager == nil || strings.TrimSpace(message) == "" {
		return
	}
	sessionManager.Put(r.Context(), sessionFlashKey, message)
}

func popFlash(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.PopString(r.Context(), sessionFlashKey)
}

func requireDatabase(w http.ResponseWriter, r *http.Request) bool {
	if database != nil {
		return true
	}
	applog.Debug(r.Context(), "request without database", "path", r.URL.Path)
	http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	return false
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// splitResourcePath trims prefix from the request path and returns the
// remaining non-empty segments.
func splitResourcePath(r *http.Request, prefix string) []string {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
