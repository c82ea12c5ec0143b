package routes

import (
	"github.com/Dosada05/matchplay/handlers"
	"github.com/Dosada05/matchplay/metrics"
	"github.com/Dosada05/matchplay/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	tournamentHandler *handlers.TournamentHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Handle("/metrics", metrics.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/players", func(r chi.Router) {
		// Публичный просмотр подборок
		r.Get("/{playerID}/suggestions", playerHandler.GetSuggestions)

		// События посещаемости фиксирует организатор или администратор
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.Authorize("organizer", "admin"))

			r.Post("/{playerID}/attendance", playerHandler.RecordAttendance)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))
		r.Use(middleware.Authorize("organizer", "admin"))

		r.Post("/results", matchHandler.CompleteMatch)
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра сетки
		r.Get("/{tournamentID}/bracket", tournamentHandler.GetBracket)
		r.Get("/{tournamentID}/rounds", tournamentHandler.GetRoundLabels)

		// Защищённые маршруты только для организаторов
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.Authorize("organizer", "admin"))

			r.Post("/{tournamentID}/bracket", tournamentHandler.GenerateBracket)
			r.Post("/matches/{matchID}/result", tournamentHandler.RecordMatchResult)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
