package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"

	"go.uber.org/zap"
)

type SessionService interface {
	ListSessions(ctx context.Context, req *request.SessionFilterRequest) ([]response.SessionListItemResponse, error)
	GetSession(ctx context.Context, sessionID int64) (*response.SessionDetailResponse, error)
	TakenSeats(ctx context.Context, sessionID int64) ([]entity.SeatPosition, error)
	Availability(ctx context.Context, sessionID int64) (int64, error)
}

type sessionService struct {
	sessions repository.MovieSessionRepository
	halls    repository.CinemaHallRepository
	movies   repository.MovieRepository
	tickets  repository.TicketRepository
	log      *zap.Logger
}

func NewSessionService(repo *repository.Repository, log *zap.Logger) SessionService {
	return &sessionService{
		sessions: repo.MovieSession,
		halls:    repo.CinemaHall,
		movies:   repo.Movie,
		tickets:  repo.Ticket,
		log:      log.With(zap.String("service", "movie_session")),
	}
}

func (s *sessionService) ListSessions(ctx context.Context, req *request.SessionFilterRequest) ([]response.SessionListItemResponse, error) {
	var filter repository.SessionFilter

	if req.Movie != "" {
		movieID, err := strconv.ParseInt(req.Movie, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: movie %q", ErrInvalidInput, req.Movie)
		}
		filter.MovieID = &movieID
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", ErrInvalidInput, req.Date)
		}
		filter.Date = &date
	}

	sessions, err := s.sessions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list movie sessions: %w", err)
	}

	result := make([]response.SessionListItemResponse, len(sessions))
	for i, session := range sessions {
		result[i] = response.SessionAvailabilityToResponse(session)
	}

	return result, nil
}

func (s *sessionService) GetSession(ctx context.Context, sessionID int64) (*response.SessionDetailResponse, error) {
	session, hall, err := s.sessionWithHall(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	movie, err := s.movies.FindByID(ctx, session.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", session.MovieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d for session %d: %w", session.MovieID, sessionID, ErrNotFound)
	}

	taken, err := s.tickets.FindTakenBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get taken seats: %w", err)
	}

	return &response.SessionDetailResponse{
		ID:               session.ID,
		ShowTime:         session.ShowTime,
		Movie:            response.MovieToResponse(movie),
		CinemaHall:       response.CinemaHallToResponse(hall),
		TakenPlaces:      taken,
		TicketsAvailable: hall.Availability(int64(len(taken))),
	}, nil
}

func (s *sessionService) TakenSeats(ctx context.Context, sessionID int64) ([]entity.SeatPosition, error) {
	if _, _, err := s.sessionWithHall(ctx, sessionID); err != nil {
		return nil, err
	}

	taken, err := s.tickets.FindTakenBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get taken seats: %w", err)
	}

	return taken, nil
}

// Availability is hall capacity minus committed tickets, never negative.
func (s *sessionService) Availability(ctx context.Context, sessionID int64) (int64, error) {
	_, hall, err := s.sessionWithHall(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	sold, err := s.tickets.CountBySession(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("count sold tickets: %w", err)
	}

	return hall.Availability(sold), nil
}

func (s *sessionService) sessionWithHall(ctx context.Context, sessionID int64) (*entity.MovieSession, *entity.CinemaHall, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("get movie session %d: %w", sessionID, err)
	}
	if session == nil {
		return nil, nil, fmt.Errorf("movie session %d: %w", sessionID, ErrNotFound)
	}

	hall, err := s.halls.FindByID(ctx, session.CinemaHallID)
	if err != nil {
		return nil, nil, fmt.Errorf("get cinema hall %d: %w", session.CinemaHallID, err)
	}
	if hall == nil {
		return nil, nil, fmt.Errorf("cinema hall %d: %w", session.CinemaHallID, ErrNotFound)
	}

	return session, hall, nil
}
