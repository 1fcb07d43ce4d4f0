package client

import (
	"context"

	"reservewise/internal/entities"
)

// CustomerSource adapts the client to the customer view model.
type CustomerSource struct{ C *Client }

func (s CustomerSource) List(ctx context.Context) ([]entities.Customer, error) {
	return s.C.ListCustomers(ctx)
}

func (s CustomerSource) Create(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	return s.C.CreateCustomer(ctx, c)
}

func (s CustomerSource) Delete(ctx context.Context, id string) error {
	return s.C.DeleteCustomer(ctx, id)
}

// ReservationSource adapts the client to the reservation view model.
type ReservationSource struct{ C *Client }

func (s ReservationSource) List(ctx context.Context) ([]entities.Reservation, error) {
	return s.C.ListReservations(ctx)
}

func (s ReservationSource) Create(ctx context.Context, r entities.Reservation) (entities.Reservation, error) {
	return s.C.CreateReservation(ctx, r)
}

func (s ReservationSource) Update(ctx context.Context, r entities.Reservation) (entities.Reservation, error) {
	return s.C.UpdateReservation(ctx, r)
}
