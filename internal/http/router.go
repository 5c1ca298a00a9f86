package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(WithRequestID, WithLogging)

	r.Get("/users/{id}", app.getUserHandler)
	r.Get("/products", app.getProductsHandler)
	r.Put("/products/{id}", app.putProductHandler)
	r.Get("/healthz", app.healthHandler)
	r.Get("/openapi.yaml", app.openapiHandler)
	r.Get("/docs", app.docsHandler)
	return r
}
