package usecase

import (
	"context"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/event"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type mockTransactor struct {
	mock.Mock
}

// WithinTx runs fn with a nil transaction unless an error is configured.
func (m *mockTransactor) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(nil)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id int64) (*entity.MovieSession, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.MovieSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) List(ctx context.Context, filter repository.SessionFilter) ([]*entity.SessionAvailability, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*entity.SessionAvailability), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) FindHallsBySessionIDs(ctx context.Context, ids []int64) (map[int64]*entity.CinemaHall, error) {
	args := m.Called(ctx, ids)
	if v := args.Get(0); v != nil {
		return v.(map[int64]*entity.CinemaHall), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) LockForBooking(ctx context.Context, q database.Querier, ids []int64) ([]int64, error) {
	args := m.Called(ctx, q, ids)
	if v := args.Get(0); v != nil {
		return v.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockHallRepo struct {
	mock.Mock
}

func (m *mockHallRepo) FindByID(ctx context.Context, id int64) (*entity.CinemaHall, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.CinemaHall), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMovieRepo struct {
	mock.Mock
}

func (m *mockMovieRepo) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, q database.Querier, order *entity.Order) error {
	return m.Called(ctx, q, order).Error(0)
}

func (m *mockOrderRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*entity.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTicketRepo struct {
	mock.Mock
}

func (m *mockTicketRepo) CreateBatch(ctx context.Context, q database.Querier, tickets []*entity.Ticket) error {
	return m.Called(ctx, q, tickets).Error(0)
}

func (m *mockTicketRepo) FindTakenInRows(ctx context.Context, q database.Querier, sessionID int64, rows []int) ([]entity.SeatPosition, error) {
	args := m.Called(ctx, q, sessionID, rows)
	if v := args.Get(0); v != nil {
		return v.([]entity.SeatPosition), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) CountBySession(ctx context.Context, sessionID int64) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTicketRepo) FindTakenBySession(ctx context.Context, sessionID int64) ([]entity.SeatPosition, error) {
	args := m.Called(ctx, sessionID)
	if v := args.Get(0); v != nil {
		return v.([]entity.SeatPosition), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]*entity.Ticket, error) {
	args := m.Called(ctx, orderIDs)
	if v := args.Get(0); v != nil {
		return v.([]*entity.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishOrderCreated(ctx context.Context, evt event.OrderCreatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

type mocks struct {
	tx        *mockTransactor
	sessions  *mockSessionRepo
	halls     *mockHallRepo
	movies    *mockMovieRepo
	orders    *mockOrderRepo
	tickets   *mockTicketRepo
	publisher *mockPublisher
}

func newMocks() *mocks {
	return &mocks{
		tx:        new(mockTransactor),
		sessions:  new(mockSessionRepo),
		halls:     new(mockHallRepo),
		movies:    new(mockMovieRepo),
		orders:    new(mockOrderRepo),
		tickets:   new(mockTicketRepo),
		publisher: new(mockPublisher),
	}
}

func (m *mocks) repository() *repository.Repository {
	return &repository.Repository{
		Tx:           m.tx,
		CinemaHall:   m.halls,
		Movie:        m.movies,
		MovieSession: m.sessions,
		Order:        m.orders,
		Ticket:       m.tickets,
	}
}
