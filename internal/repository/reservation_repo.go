package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"reservewise/internal/entities"
)

type ReservationPostgresRepository struct {
	DB *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationPostgresRepository {
	return &ReservationPostgresRepository{DB: db}
}

const reservationColumns = `id, customer_id, customer_name, service, date, status`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (entities.Reservation, error) {
	var res entities.Reservation
	var date sql.NullTime
	var status string
	if err := row.Scan(&res.ID, &res.CustomerID, &res.CustomerName, &res.Service, &date, &status); err != nil {
		return entities.Reservation{}, err
	}
	res.Date = date.Time
	res.Status = entities.Status(status)
	return res, nil
}

func (r *ReservationPostgresRepository) List(ctx context.Context, statuses ...entities.Status) ([]entities.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations`
	args := []any{}
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = string(s)
		}
		query += ` WHERE status = ANY($1)`
		args = append(args, pq.Array(names))
	}
	query += ` ORDER BY date DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	reservations := []entities.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservations: %w", err)
	}
	return reservations, nil
}

func (r *ReservationPostgresRepository) Get(ctx context.Context, id string) (*entities.Reservation, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying reservation %s: %w", id, err)
	}
	return &res, nil
}

func (r *ReservationPostgresRepository) Create(ctx context.Context, res *entities.Reservation) error {
	query := `
		INSERT INTO reservations (id, customer_id, customer_name, service, date, status)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		res.ID,
		res.CustomerID,
		res.CustomerName,
		res.Service,
		res.Date,
		string(res.Status),
	)
	if err != nil {
		return fmt.Errorf("error inserting reservation: %w", err)
	}
	return nil
}

// Update overwrites every column. Last writer wins; there is no version check.
func (r *ReservationPostgresRepository) Update(ctx context.Context, res *entities.Reservation) error {
	query := `
		UPDATE reservations
		SET customer_id = $2,
			customer_name = $3,
			service = $4,
			date = $5,
			status = $6,
			updated_at = NOW()
		WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query,
		res.ID,
		res.CustomerID,
		res.CustomerName,
		res.Service,
		res.Date,
		string(res.Status),
	)
	if err != nil {
		return fmt.Errorf("error updating reservation %s: %w", res.ID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
