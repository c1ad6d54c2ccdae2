package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order owns one or more tickets bought together by a user.
type Order struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	Tickets   []*Ticket `db:"-"`
}
