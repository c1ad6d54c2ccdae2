package entity

import "github.com/google/uuid"

// Ticket is a sold seat. (MovieSessionID, Row, Seat) is unique.
type Ticket struct {
	ID             uuid.UUID `db:"id"`
	OrderID        uuid.UUID `db:"order_id"`
	MovieSessionID int64     `db:"movie_session_id"`
	Row            int       `db:"row"`
	Seat           int       `db:"seat"`
	Position       int       `db:"position"`

	// Session is only populated by listing queries.
	Session *SessionSummary `db:"-"`
}

// SeatPosition is a (row, seat) coordinate inside a hall.
type SeatPosition struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

func (t *Ticket) Coordinate() SeatPosition {
	return SeatPosition{Row: t.Row, Seat: t.Seat}
}
