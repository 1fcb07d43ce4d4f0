// Package repository stores customers and reservations for the development
// API server. The dashboard itself never touches it.
package repository

import (
	"context"
	"errors"

	"reservewise/internal/entities"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

type CustomerRepository interface {
	List(ctx context.Context) ([]entities.Customer, error)
	Get(ctx context.Context, id string) (*entities.Customer, error)
	Create(ctx context.Context, c *entities.Customer) error
	Delete(ctx context.Context, id string) error
}

type ReservationRepository interface {
	// List returns reservations newest first, optionally filtered by status.
	List(ctx context.Context, statuses ...entities.Status) ([]entities.Reservation, error)
	Get(ctx context.Context, id string) (*entities.Reservation, error)
	Create(ctx context.Context, r *entities.Reservation) error
	Update(ctx context.Context, r *entities.Reservation) error
}
