package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reservewise/internal/entities"
)

type CustomerPostgresRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerPostgresRepository {
	return &CustomerPostgresRepository{DB: db}
}

func (r *CustomerPostgresRepository) List(ctx context.Context) ([]entities.Customer, error) {
	query := `
		SELECT id, name, email, phone, address, created_at
		FROM customers
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying customers: %w", err)
	}
	defer rows.Close()

	customers := []entities.Customer{}
	for rows.Next() {
		var c entities.Customer
		var createdAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		c.CreatedAt = createdAt.Time
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerPostgresRepository) Get(ctx context.Context, id string) (*entities.Customer, error) {
	var c entities.Customer
	var createdAt sql.NullTime
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, email, phone, address, created_at FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying customer %s: %w", id, err)
	}
	c.CreatedAt = createdAt.Time
	return &c, nil
}

func (r *CustomerPostgresRepository) Create(ctx context.Context, c *entities.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	return r.DB.QueryRowContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Address,
		c.CreatedAt,
	).Scan(&c.CreatedAt)
}

func (r *CustomerPostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting customer %s: %w", id, err)
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
