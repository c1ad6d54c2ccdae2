package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type SessionListItemResponse struct {
	SessionCompactResponse
	TicketsAvailable int64 `json:"tickets_available"`
}

type MovieResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Duration    int     `json:"duration"`
}

type CinemaHallResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	Capacity   int    `json:"capacity"`
}

type SessionDetailResponse struct {
	ID               int64                 `json:"id"`
	ShowTime         time.Time             `json:"show_time"`
	Movie            MovieResponse         `json:"movie"`
	CinemaHall       CinemaHallResponse    `json:"cinema_hall"`
	TakenPlaces      []entity.SeatPosition `json:"taken_places"`
	TicketsAvailable int64                 `json:"tickets_available"`
}

type AvailabilityResponse struct {
	MovieSessionID   int64 `json:"movie_session_id"`
	TicketsAvailable int64 `json:"tickets_available"`
}

// Helper converters
func SessionAvailabilityToResponse(s *entity.SessionAvailability) SessionListItemResponse {
	return SessionListItemResponse{
		SessionCompactResponse: SessionSummaryToResponse(&s.SessionSummary),
		TicketsAvailable:       s.TicketsAvailable(),
	}
}

func MovieToResponse(m *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration,
	}
}

func CinemaHallToResponse(h *entity.CinemaHall) CinemaHallResponse {
	return CinemaHallResponse{
		ID:         h.ID,
		Name:       h.Name,
		Rows:       h.Rows,
		SeatsInRow: h.SeatsInRow,
		Capacity:   h.Capacity(),
	}
}
