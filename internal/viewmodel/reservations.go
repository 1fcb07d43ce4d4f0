package viewmodel

import (
	"context"
	"fmt"

	"reservewise/internal/entities"
)

type ReservationSource interface {
	Source[entities.Reservation]
	Update(ctx context.Context, r entities.Reservation) (entities.Reservation, error)
}

// Reservations is the reservation page's collection.
type Reservations struct {
	*List[entities.Reservation]
	src ReservationSource
}

func NewReservations(src ReservationSource) *Reservations {
	return &Reservations{List: NewList[entities.Reservation](src), src: src}
}

func (r *Reservations) ByID(id string) (entities.Reservation, bool) {
	return r.Find(func(it entities.Reservation) bool { return it.ID == id })
}

// SetStatus sends the full reservation with the new status, then refetches.
// The reservation must be in the loaded collection.
func (r *Reservations) SetStatus(ctx context.Context, id string, status entities.Status) error {
	if !status.Valid() {
		return fmt.Errorf("set status: invalid status %q", status)
	}
	current, ok := r.ByID(id)
	if !ok {
		return fmt.Errorf("set status: reservation %s is not in the list", id)
	}
	return r.Mutate(ctx, func(ctx context.Context) error {
		if _, err := r.src.Update(ctx, current.WithStatus(status)); err != nil {
			return fmt.Errorf("update reservation %s: %w", id, err)
		}
		return nil
	})
}
