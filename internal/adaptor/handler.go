package adaptor

import (
	"cinema-reservation/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Order        *OrderHandler
	MovieSession *MovieSessionHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Order:        NewOrderHandler(service.Order, log),
		MovieSession: NewMovieSessionHandler(service.Session, log),
	}
}
