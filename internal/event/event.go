package event

import (
	"context"
	"time"

	"cinema-reservation/internal/data/entity"
)

type TicketPayload struct {
	MovieSession int64 `json:"movie_session"`
	Row          int   `json:"row"`
	Seat         int   `json:"seat"`
}

// OrderCreatedEvent is emitted once an order and its tickets are committed.
type OrderCreatedEvent struct {
	OrderID   string          `json:"order_id"`
	UserID    string          `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	Tickets   []TicketPayload `json:"tickets"`
}

func NewOrderCreatedEvent(order *entity.Order) OrderCreatedEvent {
	tickets := make([]TicketPayload, len(order.Tickets))
	for i, t := range order.Tickets {
		tickets[i] = TicketPayload{
			MovieSession: t.MovieSessionID,
			Row:          t.Row,
			Seat:         t.Seat,
		}
	}

	return OrderCreatedEvent{
		OrderID:   order.ID.String(),
		UserID:    order.UserID.String(),
		CreatedAt: order.CreatedAt,
		Tickets:   tickets,
	}
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, evt OrderCreatedEvent) error
	Close() error
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, OrderCreatedEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
