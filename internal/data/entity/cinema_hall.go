package entity

// CinemaHall is the physical seat grid a movie session is played in.
type CinemaHall struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	Rows       int    `db:"rows" json:"rows"`
	SeatsInRow int    `db:"seats_in_row" json:"seats_in_row"`
}

// Capacity is the number of seats in the hall grid.
func (h *CinemaHall) Capacity() int {
	return h.Rows * h.SeatsInRow
}

// IsValidSeat reports whether (row, seat) lies inside the hall grid.
// Rows and seats are numbered from 1.
func (h *CinemaHall) IsValidSeat(row, seat int) bool {
	return h.ValidRow(row) && h.ValidSeatNumber(seat)
}

func (h *CinemaHall) ValidRow(row int) bool {
	return row >= 1 && row <= h.Rows
}

func (h *CinemaHall) ValidSeatNumber(seat int) bool {
	return seat >= 1 && seat <= h.SeatsInRow
}

// Availability returns how many seats of the hall are still unsold.
// Never negative, even if more tickets than seats were recorded.
func (h *CinemaHall) Availability(sold int64) int64 {
	left := int64(h.Capacity()) - sold
	if left < 0 {
		return 0
	}
	return left
}
