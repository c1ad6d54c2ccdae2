package repository

import (
	"context"
	"fmt"
	"strings"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketRepository interface {
	// CreateBatch inserts all tickets in one statement. A seat collision
	// with a committed ticket yields ErrSeatTaken.
	CreateBatch(ctx context.Context, q database.Querier, tickets []*entity.Ticket) error
	FindTakenInRows(ctx context.Context, q database.Querier, sessionID int64, rows []int) ([]entity.SeatPosition, error)

	CountBySession(ctx context.Context, sessionID int64) (int64, error)
	FindTakenBySession(ctx context.Context, sessionID int64) ([]entity.SeatPosition, error)
	FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]*entity.Ticket, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = 6

func (r *ticketRepository) CreateBatch(ctx context.Context, q database.Querier, tickets []*entity.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO tickets (id, order_id, movie_session_id, "row", seat, position) VALUES `)
	args := make([]any, 0, len(tickets)*ticketColumns)

	for i, t := range tickets {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * ticketColumns
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6)

		args = append(args, t.ID, t.OrderID, t.MovieSessionID, t.Row, t.Seat, t.Position)
	}

	_, err := q.Exec(ctx, sb.String(), args...)
	if database.IsUniqueViolation(err, TicketSeatConstraint) {
		r.log.Warn("Ticket insert lost a seat race",
			zap.Error(err),
			zap.String("order_id", tickets[0].OrderID.String()),
		)
		return fmt.Errorf("create tickets for order %s: %w", tickets[0].OrderID, ErrSeatTaken)
	}
	if err != nil {
		r.log.Error("Failed to create tickets",
			zap.Error(err),
			zap.String("order_id", tickets[0].OrderID.String()),
			zap.Int("count", len(tickets)),
		)
		return fmt.Errorf("create tickets for order %s: %w", tickets[0].OrderID, err)
	}

	return nil
}

// FindTakenInRows returns the sold seats of a session restricted to the
// given rows.
func (r *ticketRepository) FindTakenInRows(ctx context.Context, q database.Querier, sessionID int64, rows []int) ([]entity.SeatPosition, error) {
	query := `
		SELECT "row", seat
		FROM tickets
		WHERE movie_session_id = $1 AND "row" = ANY($2)
	`

	return r.scanSeats(ctx, q, "find taken seats in rows", sessionID, query, sessionID, rows)
}

func (r *ticketRepository) FindTakenBySession(ctx context.Context, sessionID int64) ([]entity.SeatPosition, error) {
	query := `
		SELECT "row", seat
		FROM tickets
		WHERE movie_session_id = $1
		ORDER BY "row", seat
	`

	return r.scanSeats(ctx, r.db, "find taken seats", sessionID, query, sessionID)
}

func (r *ticketRepository) scanSeats(ctx context.Context, q database.Querier, op string, sessionID int64, query string, args ...any) ([]entity.SeatPosition, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op,
			zap.Error(err),
			zap.Int64("movie_session_id", sessionID),
		)
		return nil, fmt.Errorf("%s for session %d: %w", op, sessionID, err)
	}
	defer rows.Close()

	seats := []entity.SeatPosition{}
	for rows.Next() {
		var seat entity.SeatPosition
		if err := rows.Scan(&seat.Row, &seat.Seat); err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seat rows: %w", err)
	}

	return seats, nil
}

func (r *ticketRepository) CountBySession(ctx context.Context, sessionID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE movie_session_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, sessionID).Scan(&count); err != nil {
		r.log.Error("Failed to count tickets by session",
			zap.Error(err),
			zap.Int64("movie_session_id", sessionID),
		)
		return 0, fmt.Errorf("count tickets by session %d: %w", sessionID, err)
	}

	return count, nil
}

// FindByOrderIDs loads the tickets of several orders with their session
// summary, in order then position order.
func (r *ticketRepository) FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]*entity.Ticket, error) {
	if len(orderIDs) == 0 {
		return []*entity.Ticket{}, nil
	}

	query := `
		SELECT t.id, t.order_id, t.movie_session_id, t."row", t.seat, t.position,
		       ms.show_time, m.title, h.name, h."rows" * h.seats_in_row
		FROM tickets t
		INNER JOIN movie_sessions ms ON ms.id = t.movie_session_id
		INNER JOIN movies m ON m.id = ms.movie_id
		INNER JOIN cinema_halls h ON h.id = ms.cinema_hall_id
		WHERE t.order_id = ANY($1)
		ORDER BY t.order_id, t.position
	`

	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		r.log.Error("Failed to find tickets by order IDs",
			zap.Error(err),
			zap.Int("order_count", len(orderIDs)),
		)
		return nil, fmt.Errorf("find tickets by %d order IDs: %w", len(orderIDs), err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		var t entity.Ticket
		var s entity.SessionSummary
		err := rows.Scan(
			&t.ID,
			&t.OrderID,
			&t.MovieSessionID,
			&t.Row,
			&t.Seat,
			&t.Position,
			&s.ShowTime,
			&s.MovieTitle,
			&s.CinemaHallName,
			&s.CinemaHallCapacity,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		s.ID = t.MovieSessionID
		t.Session = &s
		tickets = append(tickets, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticket rows: %w", err)
	}

	return tickets, nil
}
