package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nurdn/binarytalk-be/internal/api/handlers"
	"github.com/nurdn/binarytalk-be/internal/auth"
	"github.com/nurdn/binarytalk-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(accountService services.AccountServiceProvider, tokens *auth.TokenManager, allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"User"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	accountHandler := handlers.NewAccountHandler(accountService)

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/", accountHandler.Register)
		r.Post("/login", accountHandler.Login)

		r.Route("/current", func(r chi.Router) {
			r.Use(tokens.Middleware(accountService))
			r.Get("/", accountHandler.Current)
			r.Patch("/", accountHandler.Update)
			r.Patch("/password", accountHandler.Password)
			r.Delete("/delete", accountHandler.Remove)
		})
	})

	return r
}
