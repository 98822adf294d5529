package handlers

import (
	"net/http"

	"github.com/MicahParks/keyfunc"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/indieneer/backend/internal/config"
	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/pkg/middleware"
)

// Handlers bundles every controller the router mounts.
type Handlers struct {
	Health         *HealthHandler
	Auth           *AuthHandler
	Profiles       *ProfileHandler
	Platforms      *PlatformHandler
	Products       *ProductHandler
	Tags           *TagHandler
	Affiliates     *AffiliateHandler
	GuessGames     *GuessGameHandler
	GameGuesses    *GameGuessHandler
	BackgroundJobs *BackgroundJobHandler
}

// NewRouter assembles the versioned route tree with logging, CORS and
// authentication wired around it.
func NewRouter(cfg *config.Config, jwks *keyfunc.JWKS, h *Handlers) http.Handler {
	r := mux.NewRouter()

	auth := middleware.AuthMiddleware(jwks, cfg)

	r.Handle("/health", httpx.Handler(h.Health.Health)).Methods(http.MethodGet)

	// Public v1 surface.
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Handle("/logins", httpx.Handler(h.Auth.Login)).Methods(http.MethodPost)
	v1.Handle("/logins/refresh", httpx.Handler(h.Auth.Refresh)).Methods(http.MethodPost)
	v1.Handle("/profiles", httpx.Handler(h.Profiles.Create)).Methods(http.MethodPost)
	v1.Handle("/platforms", httpx.Handler(h.Platforms.GetAll)).Methods(http.MethodGet)
	v1.Handle("/platforms/{id}", httpx.Handler(h.Platforms.Get)).Methods(http.MethodGet)
	v1.Handle("/platforms/{id}/os", httpx.Handler(h.Platforms.GetOS)).Methods(http.MethodGet)
	v1.Handle("/products", httpx.Handler(h.Products.GetAll)).Methods(http.MethodGet)
	v1.Handle("/products/{id}", httpx.Handler(h.Products.Get)).Methods(http.MethodGet)
	v1.Handle("/tags", httpx.Handler(h.Tags.GetAll)).Methods(http.MethodGet)
	v1.Handle("/search", httpx.Handler(h.Products.Search)).Methods(http.MethodGet)
	v1.Handle("/guess_games/today", httpx.Handler(h.GuessGames.GetToday)).Methods(http.MethodGet)
	v1.Handle("/guess_games/{id}/guesses", optionalAuth(auth)(httpx.Handler(h.GuessGames.SubmitGuess))).Methods(http.MethodPost)

	// Authenticated v1 surface.
	authed := r.PathPrefix("/v1").Subrouter()
	authed.Use(auth)
	authed.Handle("/profiles/me", httpx.Handler(h.Profiles.Me)).Methods(http.MethodGet)
	authed.Handle("/profiles/{id}", httpx.Handler(h.Profiles.PatchSelf)).Methods(http.MethodPatch)
	authed.Handle("/profiles/{id}", httpx.Handler(h.Profiles.DeleteSelf)).Methods(http.MethodDelete)

	// Admin v1 surface.
	admin := r.PathPrefix("/v1/admin").Subrouter()
	admin.Use(auth, middleware.RequireRole("admin"))
	admin.Handle("/profiles", httpx.Handler(h.Profiles.GetAll)).Methods(http.MethodGet)
	admin.Handle("/profiles/{id}", httpx.Handler(h.Profiles.Get)).Methods(http.MethodGet)
	admin.Handle("/profiles/{id}", httpx.Handler(h.Profiles.Patch)).Methods(http.MethodPatch)
	admin.Handle("/profiles/{id}", httpx.Handler(h.Profiles.Delete)).Methods(http.MethodDelete)
	admin.Handle("/platforms", httpx.Handler(h.Platforms.GetAll)).Methods(http.MethodGet)
	admin.Handle("/platforms", httpx.Handler(h.Platforms.Create)).Methods(http.MethodPost)
	admin.Handle("/platforms/{id}", httpx.Handler(h.Platforms.Get)).Methods(http.MethodGet)
	admin.Handle("/platforms/{id}", httpx.Handler(h.Platforms.Patch)).Methods(http.MethodPatch)
	admin.Handle("/platforms/{id}", httpx.Handler(h.Platforms.Delete)).Methods(http.MethodDelete)
	admin.Handle("/products", httpx.Handler(h.Products.GetAll)).Methods(http.MethodGet)
	admin.Handle("/products", httpx.Handler(h.Products.Create)).Methods(http.MethodPost)
	admin.Handle("/products/{id}", httpx.Handler(h.Products.Get)).Methods(http.MethodGet)
	admin.Handle("/products/{id}", httpx.Handler(h.Products.Patch)).Methods(http.MethodPatch)
	admin.Handle("/products/{id}", httpx.Handler(h.Products.Delete)).Methods(http.MethodDelete)
	admin.Handle("/affiliates", httpx.Handler(h.Affiliates.GetAll)).Methods(http.MethodGet)
	admin.Handle("/affiliates", httpx.Handler(h.Affiliates.Create)).Methods(http.MethodPost)
	admin.Handle("/affiliates/{id}", httpx.Handler(h.Affiliates.Get)).Methods(http.MethodGet)
	admin.Handle("/affiliates/{id}", httpx.Handler(h.Affiliates.Patch)).Methods(http.MethodPatch)
	admin.Handle("/affiliates/{id}", httpx.Handler(h.Affiliates.Delete)).Methods(http.MethodDelete)
	admin.Handle("/guess_games", httpx.Handler(h.GuessGames.GetAll)).Methods(http.MethodGet)
	admin.Handle("/guess_games", httpx.Handler(h.GuessGames.Create)).Methods(http.MethodPost)
	admin.Handle("/guess_games/{id}", httpx.Handler(h.GuessGames.Get)).Methods(http.MethodGet)
	admin.Handle("/guess_games/{id}", httpx.Handler(h.GuessGames.Patch)).Methods(http.MethodPatch)
	admin.Handle("/guess_games/{id}", httpx.Handler(h.GuessGames.Delete)).Methods(http.MethodDelete)
	admin.Handle("/game_guesses", httpx.Handler(h.GameGuesses.GetAll)).Methods(http.MethodGet)
	admin.Handle("/game_guesses/{id}", httpx.Handler(h.GameGuesses.Get)).Methods(http.MethodGet)
	admin.Handle("/game_guesses/{id}", httpx.Handler(h.GameGuesses.Patch)).Methods(http.MethodPatch)
	admin.Handle("/game_guesses/{id}", httpx.Handler(h.GameGuesses.Delete)).Methods(http.MethodDelete)
	admin.Handle("/background_jobs", httpx.Handler(h.BackgroundJobs.GetAll)).Methods(http.MethodGet)

	// v2 carries only the paginated search.
	v2 := r.PathPrefix("/v2").Subrouter()
	v2.Handle("/search", httpx.Handler(h.Products.Search)).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return middleware.LoggingMiddleware(middleware.LoggingOptions{
		RequestID: true,
		LogBodies: true,
	})(c.Handler(r))
}

// optionalAuth runs the auth middleware only when the caller sent an
// Authorization header, so anonymous requests pass through unbound.
func optionalAuth(auth func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		wrapped := auth(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			wrapped.ServeHTTP(w, r)
		})
	}
}
