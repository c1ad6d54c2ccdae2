package entity

import "time"

// MovieSession is one screening of a movie in a cinema hall.
type MovieSession struct {
	ID           int64     `db:"id"`
	ShowTime     time.Time `db:"show_time"`
	MovieID      int64     `db:"movie_id"`
	CinemaHallID int64     `db:"cinema_hall_id"`
}

// SessionSummary is the compact session view used by listings.
type SessionSummary struct {
	ID                 int64     `db:"id"`
	ShowTime           time.Time `db:"show_time"`
	MovieTitle         string    `db:"movie_title"`
	CinemaHallName     string    `db:"cinema_hall_name"`
	CinemaHallCapacity int       `db:"cinema_hall_capacity"`
}

// SessionAvailability is a SessionSummary with its sold ticket count.
type SessionAvailability struct {
	SessionSummary
	SoldTickets int64 `db:"sold_tickets"`
}

// TicketsAvailable is capacity minus sold, clamped at zero.
func (s *SessionAvailability) TicketsAvailable() int64 {
	left := int64(s.CinemaHallCapacity) - s.SoldTickets
	if left < 0 {
		return 0
	}
	return left
}
