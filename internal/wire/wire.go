package wire

import (
	"net/http"

	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/cache"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/event"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the assembled HTTP application.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes. rdb may be nil, which turns
// off the hall cache and the order rate limit.
func Wiring(
	repo *repository.Repository,
	rdb redis.UniversalClient,
	publisher event.Publisher,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	var halls usecase.HallResolver = repo.MovieSession
	if rdb != nil {
		halls = cache.NewHallCache(rdb, repo.MovieSession, config.Redis.HallCacheTTL, logger)
	}

	service := usecase.NewService(repo, halls, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, rdb, config, logger),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	rdb redis.UniversalClient,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireOrder(r, handler.Order, rdb, config, logger)
	wireMovieSession(r, handler.MovieSession)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
