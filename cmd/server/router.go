package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/quickai/quickai-api/internal/api"
	apiMiddleware "github.com/quickai/quickai-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	aiHandler := api.NewAIHandler(app.creationService)
	userHandler := api.NewUserHandler(app.creationService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.identityProvider)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Generation endpoints
			r.Post("/ai/generate-article", aiHandler.GenerateArticle)
			r.Post("/ai/generate-email", aiHandler.GenerateEmail)
			r.Post("/ai/generate-image", aiHandler.GenerateImage)
			r.Post("/ai/remove-image-background", aiHandler.RemoveImageBackground)
			r.Post("/ai/remove-image-object", aiHandler.RemoveImageObject)

			// Creation read endpoints
			r.Get("/user/get-user-creations", userHandler.GetUserCreations)
			r.Get("/user/get-published-creations", userHandler.GetPublishedCreations)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
