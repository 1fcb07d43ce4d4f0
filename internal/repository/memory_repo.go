package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"reservewise/internal/entities"
)

type memoryCustomerRepository struct {
	mu    sync.RWMutex
	items []entities.Customer // newest first
}

// NewMemoryCustomerRepository returns an in-memory store holding a copy of seed.
func NewMemoryCustomerRepository(seed []entities.Customer) CustomerRepository {
	items := slices.Clone(seed)
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return &memoryCustomerRepository{items: items}
}

func (r *memoryCustomerRepository) List(ctx context.Context) ([]entities.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items), nil
}

func (r *memoryCustomerRepository) Get(ctx context.Context, id string) (*entities.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryCustomerRepository) Create(ctx context.Context, c *entities.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]entities.Customer{*c}, r.items...)
	return nil
}

func (r *memoryCustomerRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.items {
		if c.ID == id {
			r.items = slices.Delete(r.items, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}

type memoryReservationRepository struct {
	mu    sync.RWMutex
	items []entities.Reservation
}

func NewMemoryReservationRepository(seed []entities.Reservation) ReservationRepository {
	items := slices.Clone(seed)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return &memoryReservationRepository{items: items}
}

func (r *memoryReservationRepository) List(ctx context.Context, statuses ...entities.Status) ([]entities.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Reservation, 0, len(r.items))
	for _, res := range r.items {
		if len(statuses) > 0 && !slices.Contains(statuses, res.Status) {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *memoryReservationRepository) Get(ctx context.Context, id string) (*entities.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, res := range r.items {
		if res.ID == id {
			return &res, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryReservationRepository) Create(ctx context.Context, res *entities.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]entities.Reservation{*res}, r.items...)
	return nil
}

// Update overwrites the stored record. Last writer wins; there is no version
// check.
func (r *memoryReservationRepository) Update(ctx context.Context, res *entities.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == res.ID {
			r.items[i] = *res
			return nil
		}
	}
	return ErrNotFound
}
