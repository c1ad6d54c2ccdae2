package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCommitFixture() (*fakeStore, OrderService, SessionService) {
	store := newFakeStore()
	store.addSession(1, &entity.CinemaHall{ID: 1, Name: "Red", Rows: 10, SeatsInRow: 15})
	store.addSession(2, &entity.CinemaHall{ID: 2, Name: "Blue", Rows: 2, SeatsInRow: 2})

	repo := store.repository()
	orders := NewOrderService(repo, repo.MovieSession, event.NoopPublisher{}, zap.NewNop())
	sessions := NewSessionService(repo, zap.NewNop())
	return store, orders, sessions
}

// race submits all requests at once and returns how many succeeded and how
// many were rejected as taken.
func race(t *testing.T, svc OrderService, reqs ...*request.CreateOrderRequest) (succeeded, taken int) {
	t.Helper()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		start = make(chan struct{})
		other []error
	)
	for _, req := range reqs {
		wg.Add(1)
		go func(req *request.CreateOrderRequest) {
			defer wg.Done()
			<-start
			_, err := svc.CreateOrder(context.Background(), uuid.New(), req)

			mu.Lock()
			defer mu.Unlock()
			var vErr *ValidationError
			switch {
			case err == nil:
				succeeded++
			case errors.As(err, &vErr) && vErr.Kind == KindTaken:
				taken++
			default:
				other = append(other, err)
			}
		}(req)
	}
	close(start)
	wg.Wait()

	require.Empty(t, other)
	return succeeded, taken
}

func TestCreateOrder_ConcurrentSameSeat(t *testing.T) {
	for i := 0; i < 50; i++ {
		store, svc, _ := newCommitFixture()
		req := orderRequest(`{"movie_session": 1, "row": 4, "seat": 4}`)

		succeeded, taken := race(t, svc, req, req)

		require.Equal(t, 1, succeeded)
		require.Equal(t, 1, taken)
		require.Equal(t, 1, store.ticketCount())
	}
}

func TestCreateOrder_ManyContenders(t *testing.T) {
	store, svc, _ := newCommitFixture()

	reqs := make([]*request.CreateOrderRequest, 16)
	for i := range reqs {
		reqs[i] = orderRequest(`{"movie_session": 1, "row": 4, "seat": 4}`)
	}

	succeeded, taken := race(t, svc, reqs...)

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 15, taken)
	assert.Equal(t, 1, store.ticketCount())
}

func TestCreateOrder_OverlappingOrdersAreAllOrNothing(t *testing.T) {
	for i := 0; i < 20; i++ {
		store, svc, sessions := newCommitFixture()

		a := orderRequest(
			`{"movie_session": 1, "row": 1, "seat": 1}`,
			`{"movie_session": 1, "row": 1, "seat": 2}`,
		)
		b := orderRequest(
			`{"movie_session": 1, "row": 1, "seat": 2}`,
			`{"movie_session": 1, "row": 1, "seat": 3}`,
		)

		succeeded, taken := race(t, svc, a, b)

		require.Equal(t, 1, succeeded)
		require.Equal(t, 1, taken)
		require.Equal(t, 2, store.ticketCount())

		seats, err := sessions.TakenSeats(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, seats, 2)
		require.Contains(t, seats, entity.SeatPosition{Row: 1, Seat: 2})
	}
}

func TestCreateOrder_DisjointSeatsBothSucceed(t *testing.T) {
	store, svc, _ := newCommitFixture()

	succeeded, taken := race(t, svc,
		orderRequest(`{"movie_session": 1, "row": 1, "seat": 1}`),
		orderRequest(`{"movie_session": 1, "row": 1, "seat": 2}`),
	)

	assert.Equal(t, 2, succeeded)
	assert.Zero(t, taken)
	assert.Equal(t, 2, store.ticketCount())
}

func TestCreateOrder_SequentialRetakeIsRejected(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newCommitFixture()
	req := orderRequest(`{"movie_session": 1, "row": 4, "seat": 4}`)

	_, err := svc.CreateOrder(ctx, uuid.New(), req)
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, uuid.New(), orderRequest(
		`{"movie_session": 1, "row": 4, "seat": 5}`,
		`{"movie_session": 1, "row": 4, "seat": 4}`,
	))

	vErr := requireKind(t, err, KindTaken)
	assert.Equal(t, []SeatRef{{MovieSession: 1, Row: 4, Seat: 4}}, vErr.Seats)
	assert.Equal(t, 1, store.ticketCount())
}

func TestCreateOrder_TakenSeatsAndAvailability(t *testing.T) {
	ctx := context.Background()
	_, svc, sessions := newCommitFixture()

	before, err := sessions.Availability(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(150), before)

	userID := uuid.New()
	order, err := svc.CreateOrder(ctx, userID, orderRequest(
		`{"movie_session": 1, "row": 1, "seat": 1}`,
		`{"movie_session": 1, "row": 1, "seat": 2}`,
	))
	require.NoError(t, err)
	assert.Len(t, order.Tickets, 2)

	seats, err := sessions.TakenSeats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []entity.SeatPosition{{Row: 1, Seat: 1}, {Row: 1, Seat: 2}}, seats)

	after, err := sessions.Availability(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, before-2, after)

	listed, err := svc.ListOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, order.ID, listed[0].ID)
	assert.Len(t, listed[0].Tickets, 2)
}

func TestCreateOrder_MultiSessionOrderIsAtomic(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newCommitFixture()

	_, err := svc.CreateOrder(ctx, uuid.New(), orderRequest(`{"movie_session": 2, "row": 2, "seat": 2}`))
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, uuid.New(), orderRequest(
		`{"movie_session": 1, "row": 1, "seat": 1}`,
		`{"movie_session": 2, "row": 2, "seat": 2}`,
	))

	requireKind(t, err, KindTaken)
	assert.Equal(t, 1, store.ticketCount())
}
