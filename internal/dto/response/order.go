package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type SessionCompactResponse struct {
	ID                 int64     `json:"id"`
	ShowTime           time.Time `json:"show_time"`
	MovieTitle         string    `json:"movie_title"`
	CinemaHallName     string    `json:"cinema_hall_name"`
	CinemaHallCapacity int       `json:"cinema_hall_capacity"`
}

type TicketResponse struct {
	ID             string                  `json:"id"`
	Row            int                     `json:"row"`
	Seat           int                     `json:"seat"`
	MovieSessionID int64                   `json:"movie_session_id"`
	MovieSession   *SessionCompactResponse `json:"movie_session,omitempty"`
}

type OrderResponse struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

// Helper converters
func SessionSummaryToResponse(s *entity.SessionSummary) SessionCompactResponse {
	return SessionCompactResponse{
		ID:                 s.ID,
		ShowTime:           s.ShowTime,
		MovieTitle:         s.MovieTitle,
		CinemaHallName:     s.CinemaHallName,
		CinemaHallCapacity: s.CinemaHallCapacity,
	}
}

func TicketToResponse(t *entity.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:             t.ID.String(),
		Row:            t.Row,
		Seat:           t.Seat,
		MovieSessionID: t.MovieSessionID,
	}
	if t.Session != nil {
		session := SessionSummaryToResponse(t.Session)
		resp.MovieSession = &session
	}
	return resp
}

func OrderToResponse(order *entity.Order) OrderResponse {
	tickets := make([]TicketResponse, len(order.Tickets))
	for i, t := range order.Tickets {
		tickets[i] = TicketToResponse(t)
	}

	return OrderResponse{
		ID:        order.ID.String(),
		CreatedAt: order.CreatedAt,
		Tickets:   tickets,
	}
}
