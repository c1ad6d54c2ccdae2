package adaptor

import (
	"net/http"
	"strconv"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieSessionHandler struct {
	service usecase.SessionService
	log     *zap.Logger
}

func NewMovieSessionHandler(service usecase.SessionService, log *zap.Logger) *MovieSessionHandler {
	return &MovieSessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie_session")),
	}
}

// ListSessions handles GET /api/movie-sessions?movie=&date=
func (h *MovieSessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.SessionFilterRequest{
		Movie: query.Get("movie"),
		Date:  query.Get("date"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	sessions, err := h.service.ListSessions(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "list movie sessions")
		return
	}

	utils.ResponseSuccess(w, "success", sessions)
}

// GetSession handles GET /api/movie-sessions/{id}
func (h *MovieSessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	session, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, h.log, err, "get movie session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// TakenSeats handles GET /api/movie-sessions/{id}/taken-seats
func (h *MovieSessionHandler) TakenSeats(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	seats, err := h.service.TakenSeats(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, h.log, err, "get taken seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// Availability handles GET /api/movie-sessions/{id}/availability
func (h *MovieSessionHandler) Availability(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	available, err := h.service.Availability(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", response.AvailabilityResponse{
		MovieSessionID:   sessionID,
		TicketsAvailable: available,
	})
}

func sessionIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		utils.ResponseBadRequest(w, "Invalid movie session ID", nil)
		return 0, false
	}
	return id, true
}
