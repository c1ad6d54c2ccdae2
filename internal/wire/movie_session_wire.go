package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovieSession(r chi.Router, sessionHandler *adaptor.MovieSessionHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/movie-sessions", func(r chi.Router) {
		// GET /api/movie-sessions?movie=&date=YYYY-MM-DD
		r.Get("/", sessionHandler.ListSessions)

		// GET /api/movie-sessions/{id} - Detail with taken places
		r.Get("/{id}", sessionHandler.GetSession)

		// GET /api/movie-sessions/{id}/taken-seats - Sold seats
		r.Get("/{id}/taken-seats", sessionHandler.TakenSeats)

		// GET /api/movie-sessions/{id}/availability - Unsold seat count
		r.Get("/{id}/availability", sessionHandler.Availability)
	})
}
