package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires middleware and every endpoint
func NewRouter(h *Handler, corsOrigin string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(h.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: corsOrigin != "*",
		MaxAge:           300,
	}))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/healthz", h.Health)

	// Public endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/sign-up", h.SignUp)
		r.Post("/login", h.Login)
		r.Post("/refrest-jwt-token", h.RefreshToken)
	})

	// Protected endpoints (require JWT)
	r.Group(func(r chi.Router) {
		r.Use(h.JWTAuthMiddleware)
		r.Post("/trades", h.CreateTrade)
		r.Get("/trades", h.ListTrades)
		if h.Feed != nil {
			r.Method(http.MethodGet, "/trades/stream", h.Feed)
		}
		r.Get("/trades/{id}", h.GetTrade)
		r.Post("/trades/{id}", h.MethodNotAllowed)
		r.Delete("/trades/{id}", h.MethodNotAllowed)
		r.Put("/trades/{id}", h.MethodNotAllowed)
		r.Patch("/trades/{id}", h.MethodNotAllowed)
	})

	return r
}
