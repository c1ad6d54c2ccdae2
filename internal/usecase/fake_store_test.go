package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeStore is an in-memory store whose transactions run one at a time,
// like commits serialised by the session row locks. A failed transaction
// restores the state it started from.
type fakeStore struct {
	txMu sync.Mutex

	mu       sync.Mutex
	sessions map[int64]*entity.MovieSession
	halls    map[int64]*entity.CinemaHall
	movies   map[int64]*entity.Movie
	orders   []*entity.Order
	tickets  []*entity.Ticket
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: map[int64]*entity.MovieSession{},
		halls:    map[int64]*entity.CinemaHall{},
		movies:   map[int64]*entity.Movie{},
	}
}

func (f *fakeStore) addSession(id int64, hall *entity.CinemaHall) {
	f.halls[hall.ID] = hall
	f.movies[1] = &entity.Movie{ID: 1, Title: "Dune", Duration: 155}
	f.sessions[id] = &entity.MovieSession{ID: id, MovieID: 1, CinemaHallID: hall.ID}
}

func (f *fakeStore) repository() *repository.Repository {
	return &repository.Repository{
		Tx:           f,
		CinemaHall:   fakeHalls{f},
		Movie:        fakeMovies{f},
		MovieSession: fakeSessions{f},
		Order:        fakeOrders{f},
		Ticket:       fakeTickets{f},
	}
}

func (f *fakeStore) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	f.mu.Lock()
	orders := append([]*entity.Order(nil), f.orders...)
	tickets := append([]*entity.Ticket(nil), f.tickets...)
	f.mu.Unlock()

	if err := fn(nil); err != nil {
		f.mu.Lock()
		f.orders, f.tickets = orders, tickets
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeStore) ticketCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickets)
}

type fakeSessions struct{ *fakeStore }

func (f fakeSessions) FindByID(_ context.Context, id int64) (*entity.MovieSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[id], nil
}

func (f fakeSessions) List(context.Context, repository.SessionFilter) ([]*entity.SessionAvailability, error) {
	return nil, nil
}

func (f fakeSessions) FindHallsBySessionIDs(_ context.Context, ids []int64) (map[int64]*entity.CinemaHall, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int64]*entity.CinemaHall)
	for _, id := range ids {
		if s, ok := f.sessions[id]; ok {
			out[id] = f.halls[s.CinemaHallID]
		}
	}
	return out, nil
}

func (f fakeSessions) LockForBooking(_ context.Context, _ database.Querier, ids []int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var locked []int64
	for _, id := range ids {
		if _, ok := f.sessions[id]; ok {
			locked = append(locked, id)
		}
	}
	sort.Slice(locked, func(i, j int) bool { return locked[i] < locked[j] })
	return locked, nil
}

type fakeHalls struct{ *fakeStore }

func (f fakeHalls) FindByID(_ context.Context, id int64) (*entity.CinemaHall, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.halls[id], nil
}

type fakeMovies struct{ *fakeStore }

func (f fakeMovies) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.movies[id], nil
}

type fakeOrders struct{ *fakeStore }

func (f fakeOrders) Create(_ context.Context, _ database.Querier, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, order)
	return nil
}

func (f fakeOrders) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Order
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID == userID {
			out = append(out, &entity.Order{ID: f.orders[i].ID, UserID: userID, CreatedAt: f.orders[i].CreatedAt})
		}
	}
	return out, nil
}

type fakeTickets struct{ *fakeStore }

// CreateBatch enforces the unique (session, row, seat) constraint and
// inserts all or nothing.
func (f fakeTickets) CreateBatch(_ context.Context, _ database.Querier, tickets []*entity.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	type key struct {
		session   int64
		row, seat int
	}
	taken := make(map[key]struct{}, len(f.tickets))
	for _, t := range f.tickets {
		taken[key{t.MovieSessionID, t.Row, t.Seat}] = struct{}{}
	}
	for _, t := range tickets {
		k := key{t.MovieSessionID, t.Row, t.Seat}
		if _, ok := taken[k]; ok {
			return fmt.Errorf("insert ticket: %w", repository.ErrSeatTaken)
		}
		taken[k] = struct{}{}
	}
	f.tickets = append(f.tickets, tickets...)
	return nil
}

func (f fakeTickets) FindTakenInRows(_ context.Context, _ database.Querier, sessionID int64, rows []int) ([]entity.SeatPosition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inRows := make(map[int]bool, len(rows))
	for _, r := range rows {
		inRows[r] = true
	}
	seats := []entity.SeatPosition{}
	for _, t := range f.tickets {
		if t.MovieSessionID == sessionID && inRows[t.Row] {
			seats = append(seats, t.Coordinate())
		}
	}
	return seats, nil
}

func (f fakeTickets) CountBySession(_ context.Context, sessionID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, t := range f.tickets {
		if t.MovieSessionID == sessionID {
			n++
		}
	}
	return n, nil
}

func (f fakeTickets) FindTakenBySession(_ context.Context, sessionID int64) ([]entity.SeatPosition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seats := []entity.SeatPosition{}
	for _, t := range f.tickets {
		if t.MovieSessionID == sessionID {
			seats = append(seats, t.Coordinate())
		}
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Seat < seats[j].Seat
	})
	return seats, nil
}

func (f fakeTickets) FindByOrderIDs(_ context.Context, orderIDs []uuid.UUID) ([]*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(orderIDs))
	for _, id := range orderIDs {
		want[id] = true
	}
	out := []*entity.Ticket{}
	for _, t := range f.tickets {
		if want[t.OrderID] {
			copied := *t
			copied.Session = &entity.SessionSummary{ID: t.MovieSessionID, MovieTitle: "Dune"}
			out = append(out, &copied)
		}
	}
	return out, nil
}
