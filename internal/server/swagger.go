package server

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SpecPath is where Swagger UI loads the generated OpenAPI document from
const SpecPath = "/api/downloads/veeq-ai-openapi.json"

// SwaggerHandler returns a handler that serves the Swagger UI
func SwaggerHandler() http.HandlerFunc {
	handler := httpSwagger.Handler(
		httpSwagger.URL(SpecPath),
		httpSwagger.DeepLinking(true),
	)
	return func(w http.ResponseWriter, r *http.Request) {
		// When accessed directly, redirect to the UI path
		if r.URL.Path == "/swagger" {
			http.Redirect(w, r, "/swagger/index.html", http.StatusFound)
			return
		}
		handler.ServeHTTP(w, r)
	}
}
