package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/footdata/worldcup-api/docs"
	"github.com/footdata/worldcup-api/handlers"
	"github.com/footdata/worldcup-api/middleware"
	"github.com/footdata/worldcup-api/models"
)

// SetupRoutes mounts every API route on the router. Read endpoints are
// public; mutations require a bearer token and the role noted per group.
func SetupRoutes(
	router *chi.Mux,
	authn *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	wsHandler *handlers.WebSocketHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", healthHandler.Check)
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Get("/profile", authHandler.Profile)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.ListTeams)
		r.Get("/{teamID}", teamHandler.GetTeamByID)

		// Team mutations are reserved for admins.
		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Post("/", teamHandler.CreateTeam)
			r.Put("/{teamID}", teamHandler.UpdateTeam)
			r.Delete("/{teamID}", teamHandler.DeleteTeam)
			r.Post("/{teamID}/flag", teamHandler.UploadFlag)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayers)
		r.Get("/{playerID}", playerHandler.GetPlayerByID)
		r.Get("/team/{teamID}", playerHandler.ListPlayersByTeam)

		// Any authenticated user may manage rosters.
		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Use(middleware.RequireRole(models.RoleUser))

			r.Post("/", playerHandler.CreatePlayer)
			r.Put("/{playerID}", playerHandler.UpdatePlayer)
			r.Delete("/{playerID}", playerHandler.DeletePlayer)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.ListMatches)
		r.Get("/upcoming", matchHandler.ListUpcomingMatches)
		r.Get("/{matchID}", matchHandler.GetMatchByID)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Post("/", matchHandler.CreateMatch)
			r.Put("/{matchID}", matchHandler.UpdateMatch)
			r.Delete("/{matchID}", matchHandler.DeleteMatch)
		})
	})

	router.Get("/ws/matches/{matchID}", wsHandler.ServeMatch)
}
