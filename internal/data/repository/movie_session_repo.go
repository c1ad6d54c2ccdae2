package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionFilter narrows List. Nil fields are not applied.
type SessionFilter struct {
	MovieID *int64
	Date    *time.Time
}

type MovieSessionRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.MovieSession, error)
	List(ctx context.Context, filter SessionFilter) ([]*entity.SessionAvailability, error)

	// Booking queries
	FindHallsBySessionIDs(ctx context.Context, ids []int64) (map[int64]*entity.CinemaHall, error)
	LockForBooking(ctx context.Context, q database.Querier, ids []int64) ([]int64, error)
}

type movieSessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieSessionRepository(db database.PgxIface, log *zap.Logger) MovieSessionRepository {
	return &movieSessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_session")),
	}
}

func (r *movieSessionRepository) FindByID(ctx context.Context, id int64) (*entity.MovieSession, error) {
	query := `
		SELECT id, show_time, movie_id, cinema_hall_id
		FROM movie_sessions
		WHERE id = $1
	`

	var session entity.MovieSession
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.ShowTime,
		&session.MovieID,
		&session.CinemaHallID,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie session by ID",
			zap.Error(err),
			zap.Int64("movie_session_id", id),
		)
		return nil, fmt.Errorf("find movie session by ID %d: %w", id, err)
	}

	return &session, nil
}

func (r *movieSessionRepository) List(ctx context.Context, filter SessionFilter) ([]*entity.SessionAvailability, error) {
	query := `
		SELECT ms.id, ms.show_time, m.title, h.name, h."rows" * h.seats_in_row,
		       (SELECT COUNT(*) FROM tickets t WHERE t.movie_session_id = ms.id)
		FROM movie_sessions ms
		INNER JOIN movies m ON m.id = ms.movie_id
		INNER JOIN cinema_halls h ON h.id = ms.cinema_hall_id
		WHERE ($1::bigint IS NULL OR ms.movie_id = $1)
		  AND ($2::date IS NULL OR ms.show_time::date = $2)
		ORDER BY ms.show_time, ms.id
	`

	rows, err := r.db.Query(ctx, query, filter.MovieID, filter.Date)
	if err != nil {
		r.log.Error("Failed to list movie sessions", zap.Error(err))
		return nil, fmt.Errorf("list movie sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*entity.SessionAvailability
	for rows.Next() {
		var s entity.SessionAvailability
		err := rows.Scan(
			&s.ID,
			&s.ShowTime,
			&s.MovieTitle,
			&s.CinemaHallName,
			&s.CinemaHallCapacity,
			&s.SoldTickets,
		)
		if err != nil {
			r.log.Error("Failed to scan movie session row", zap.Error(err))
			return nil, fmt.Errorf("scan movie session row: %w", err)
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie session rows: %w", err)
	}

	return sessions, nil
}

// FindHallsBySessionIDs resolves each session to its hall geometry. Sessions
// that do not exist are absent from the result.
func (r *movieSessionRepository) FindHallsBySessionIDs(ctx context.Context, ids []int64) (map[int64]*entity.CinemaHall, error) {
	halls := make(map[int64]*entity.CinemaHall, len(ids))
	if len(ids) == 0 {
		return halls, nil
	}

	query := `
		SELECT ms.id, h.id, h.name, h."rows", h.seats_in_row
		FROM movie_sessions ms
		INNER JOIN cinema_halls h ON h.id = ms.cinema_hall_id
		WHERE ms.id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to resolve halls for sessions",
			zap.Error(err),
			zap.Int64s("movie_session_ids", ids),
		)
		return nil, fmt.Errorf("find halls by session IDs %v: %w", ids, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID int64
		var hall entity.CinemaHall
		if err := rows.Scan(&sessionID, &hall.ID, &hall.Name, &hall.Rows, &hall.SeatsInRow); err != nil {
			r.log.Error("Failed to scan session hall row", zap.Error(err))
			return nil, fmt.Errorf("scan session hall row: %w", err)
		}
		halls[sessionID] = &hall
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session hall rows: %w", err)
	}

	return halls, nil
}

// LockForBooking takes a row lock on every listed session, always in id
// order so two multi-session orders cannot deadlock. It returns the ids
// that exist.
func (r *movieSessionRepository) LockForBooking(ctx context.Context, q database.Querier, ids []int64) ([]int64, error) {
	query := `
		SELECT id
		FROM movie_sessions
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to lock movie sessions",
			zap.Error(err),
			zap.Int64s("movie_session_ids", ids),
		)
		return nil, fmt.Errorf("lock movie sessions %v: %w", ids, err)
	}
	defer rows.Close()

	var locked []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan locked session row: %w", err)
		}
		locked = append(locked, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locked session rows: %w", err)
	}

	return locked, nil
}
