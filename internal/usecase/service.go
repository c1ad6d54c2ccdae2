package usecase

import (
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/event"

	"go.uber.org/zap"
)

type Service struct {
	Order   OrderService
	Session SessionService
}

// NewService wires the use cases. halls is the session -> hall lookup used
// by order validation, either the repository itself or a cache in front of it.
func NewService(repo *repository.Repository, halls HallResolver, publisher event.Publisher, log *zap.Logger) *Service {
	return &Service{
		Order:   NewOrderService(repo, halls, publisher, log),
		Session: NewSessionService(repo, log),
	}
}
