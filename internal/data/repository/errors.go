package repository

import "errors"

// ErrSeatTaken is returned when an insert hits the unique
// (movie_session_id, row, seat) constraint, i.e. a concurrent order won.
var ErrSeatTaken = errors.New("seat already taken")

// TicketSeatConstraint is the unique constraint guarding seat assignment.
const TicketSeatConstraint = "tickets_session_row_seat_key"
