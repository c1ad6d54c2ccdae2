package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	rdb redis.UniversalClient,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.JWTAuth(config.JWT.Secret, log))

		// POST /api/orders - Create an order, rate limited per user
		r.With(middleware.RateLimit(rdb, "orders", config.RateLimit.Orders, config.RateLimit.Window, log)).
			Post("/", orderHandler.CreateOrder)

		// GET /api/orders - The user's orders, newest first
		r.Get("/", orderHandler.ListOrders)
	})
}
