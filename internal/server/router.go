package server

import (
	"context"
	"net/http"

	"specyfikacje/internal/handlers"
	applog "specyfikacje/internal/log"
)

func newRouter(staticDir string) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"/healthz", handlers.Health},
		{"/app/api/raw-materials", handlers.RawMaterialResource},
		{"/app/api/raw-materials/", handlers.RawMaterialResource},
		{"/app/api/products", handlers.ProductResource},
		{"/app/api/products/", handlers.ProductResource},
		{"/app/products", handlers.ProductPages},
		{"/app/products/", handlers.ProductPages},
		{"/app/raw-materials", handlers.RawMaterialPages},
		{"/app/raw-materials/", handlers.RawMaterialPages},
		{"/", handlers.Home},
	}
	for _, route := range routes {
		mux.HandleFunc(route.pattern, route.handler)
		applog.Debug(context.Background(), "route registered", "path", route.pattern)
	}

	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(staticDir))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	return mux
}
