package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/event"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error)
}

type orderService struct {
	tx        repository.Transactor
	sessions  repository.MovieSessionRepository
	orders    repository.OrderRepository
	tickets   repository.TicketRepository
	validator *ReservationValidator
	publisher event.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewOrderService(repo *repository.Repository, halls HallResolver, publisher event.Publisher, log *zap.Logger) OrderService {
	return &orderService{
		tx:        repo.Tx,
		sessions:  repo.MovieSession,
		orders:    repo.Order,
		tickets:   repo.Ticket,
		validator: NewReservationValidator(halls),
		publisher: publisher,
		log:       log.With(zap.String("service", "order")),
		now:       time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	plan, err := s.validator.Validate(ctx, req.Tickets)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			s.log.Warn("Order request rejected",
				zap.String("user_id", userID.String()),
				zap.String("kind", string(vErr.Kind)),
			)
		}
		return nil, err
	}

	order, err := s.commit(ctx, userID, plan)
	if err != nil {
		return nil, err
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("ticket_count", len(order.Tickets)),
		zap.Int64s("movie_session_ids", plan.SessionIDs()),
	)

	if err := s.publisher.PublishOrderCreated(ctx, event.NewOrderCreatedEvent(order)); err != nil {
		s.log.Warn("Order created event not published",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
	}

	// Attach session summaries for the response; the order is committed
	// either way.
	if loaded, err := s.tickets.FindByOrderIDs(ctx, []uuid.UUID{order.ID}); err == nil && len(loaded) == len(order.Tickets) {
		order.Tickets = loaded
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// commit runs the conflict check and the inserts as one transaction. The
// sessions are locked first so concurrent commits on the same session
// serialise; the unique seat constraint backs this up.
func (s *orderService) commit(ctx context.Context, userID uuid.UUID, plan *ReservationPlan) (*entity.Order, error) {
	order := &entity.Order{
		ID:      uuid.New(),
		UserID:  userID,
		Tickets: make([]*entity.Ticket, len(plan.Seats)),
	}
	for i, seat := range plan.Seats {
		order.Tickets[i] = &entity.Ticket{
			ID:             uuid.New(),
			OrderID:        order.ID,
			MovieSessionID: seat.MovieSessionID,
			Row:            seat.Row,
			Seat:           seat.Seat,
			Position:       i,
		}
	}

	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		ids := plan.SessionIDs()
		locked, err := s.sessions.LockForBooking(ctx, tx, ids)
		if err != nil {
			return err
		}
		if missing := missingIDs(ids, locked); len(missing) > 0 {
			return &ValidationError{Kind: KindUnknownSession, SessionIDs: missing}
		}

		var conflicts []SeatRef
		for _, g := range plan.Groups {
			taken, err := s.tickets.FindTakenInRows(ctx, tx, g.SessionID, g.Rows())
			if err != nil {
				return err
			}
			conflicts = append(conflicts, conflictsIn(g, taken)...)
		}
		if len(conflicts) > 0 {
			return &ValidationError{Kind: KindTaken, Seats: conflicts}
		}

		order.CreatedAt = s.now().UTC()
		if err := s.orders.Create(ctx, tx, order); err != nil {
			return err
		}
		return s.tickets.CreateBatch(ctx, tx, order.Tickets)
	})

	switch {
	case err == nil:
		return order, nil

	case errors.Is(err, repository.ErrSeatTaken):
		// A concurrent order committed between our check and insert.
		conflicts, rErr := s.committedConflicts(ctx, plan)
		if rErr != nil {
			return nil, fmt.Errorf("read seats after conflict: %w", rErr)
		}
		if len(conflicts) == 0 {
			return nil, fmt.Errorf("create order: %w", err)
		}
		s.log.Warn("Order lost a seat race",
			zap.String("user_id", userID.String()),
			zap.Int("conflicts", len(conflicts)),
		)
		return nil, &ValidationError{Kind: KindTaken, Seats: conflicts}

	default:
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			s.log.Warn("Order rejected at commit",
				zap.String("user_id", userID.String()),
				zap.String("kind", string(vErr.Kind)),
			)
			return nil, err
		}
		s.log.Error("Failed to commit order",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("create order: %w", err)
	}
}

func (s *orderService) committedConflicts(ctx context.Context, plan *ReservationPlan) ([]SeatRef, error) {
	var conflicts []SeatRef
	for _, g := range plan.Groups {
		taken, err := s.tickets.FindTakenBySession(ctx, g.SessionID)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, conflictsIn(g, taken)...)
	}
	return conflicts, nil
}

func conflictsIn(g *SessionGroup, taken []entity.SeatPosition) []SeatRef {
	if len(taken) == 0 {
		return nil
	}
	set := make(map[entity.SeatPosition]struct{}, len(taken))
	for _, p := range taken {
		set[p] = struct{}{}
	}

	var conflicts []SeatRef
	for _, seat := range g.Seats {
		if _, ok := set[seat.Coordinate()]; ok {
			conflicts = append(conflicts, seat.Ref())
		}
	}
	return conflicts
}

func missingIDs(want, got []int64) []int64 {
	present := make(map[int64]struct{}, len(got))
	for _, id := range got {
		present[id] = struct{}{}
	}
	var missing []int64
	for _, id := range want {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	result := make([]response.OrderResponse, 0, len(orders))
	if len(orders) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	tickets, err := s.tickets.FindByOrderIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list order tickets: %w", err)
	}

	byOrder := make(map[uuid.UUID][]*entity.Ticket, len(orders))
	for _, t := range tickets {
		byOrder[t.OrderID] = append(byOrder[t.OrderID], t)
	}

	for _, o := range orders {
		o.Tickets = byOrder[o.ID]
		result = append(result, response.OrderToResponse(o))
	}

	return result, nil
}
