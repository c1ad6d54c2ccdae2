package repository

import (
	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tx           Transactor
	CinemaHall   CinemaHallRepository
	Movie        MovieRepository
	MovieSession MovieSessionRepository
	Order        OrderRepository
	Ticket       TicketRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:           NewTransactor(db),
		CinemaHall:   NewCinemaHallRepository(db, log),
		Movie:        NewMovieRepository(db, log),
		MovieSession: NewMovieSessionRepository(db, log),
		Order:        NewOrderRepository(db, log),
		Ticket:       NewTicketRepository(db, log),
	}
}
