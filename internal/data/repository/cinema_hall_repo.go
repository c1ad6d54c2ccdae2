package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CinemaHallRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.CinemaHall, error)
}

type cinemaHallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCinemaHallRepository(db database.PgxIface, log *zap.Logger) CinemaHallRepository {
	return &cinemaHallRepository{
		db:  db,
		log: log.With(zap.String("repository", "cinema_hall")),
	}
}

func (r *cinemaHallRepository) FindByID(ctx context.Context, id int64) (*entity.CinemaHall, error) {
	query := `
		SELECT id, name, "rows", seats_in_row
		FROM cinema_halls
		WHERE id = $1
	`

	var hall entity.CinemaHall
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Rows,
		&hall.SeatsInRow,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cinema hall by ID",
			zap.Error(err),
			zap.Int64("cinema_hall_id", id),
		)
		return nil, fmt.Errorf("find cinema hall by ID %d: %w", id, err)
	}

	return &hall, nil
}
