package devapi

import (
	"context"
	"fmt"
	"time"

	"reservewise/internal/entities"
	"reservewise/internal/repository"
)

// SeedCustomers returns the demo customer list.
func SeedCustomers() []entities.Customer {
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []entities.Customer{
		{ID: "1", Name: "Alice Johnson", Phone: "123-456-7890", Email: "alice@example.com", CreatedAt: day("2023-10-01")},
		{ID: "2", Name: "Bob Williams", Phone: "234-567-8901", Email: "bob@example.com", CreatedAt: day("2023-10-05")},
		{ID: "3", Name: "Charlie Brown", Phone: "345-678-9012", Email: "charlie@example.com", CreatedAt: day("2023-10-12")},
		{ID: "4", Name: "Diana Miller", Phone: "456-789-0123", Email: "diana@example.com", CreatedAt: day("2023-11-20")},
		{ID: "5", Name: "Ethan Davis", Phone: "567-890-1234", Email: "ethan@example.com", CreatedAt: day("2023-11-21")},
	}
}

// SeedReservations returns demo reservations spread around now.
func SeedReservations(now time.Time) []entities.Reservation {
	at := func(days int) time.Time { return now.AddDate(0, 0, days) }
	return []entities.Reservation{
		{ID: "res1", CustomerID: "1", CustomerName: "Alice Johnson", Service: "Haircut", Date: at(-5), Status: entities.StatusConfirmed},
		{ID: "res2", CustomerID: "2", CustomerName: "Bob Williams", Service: "Manicure", Date: at(-3), Status: entities.StatusConfirmed},
		{ID: "res3", CustomerID: "3", CustomerName: "Charlie Brown", Service: "Pedicure", Date: at(-1), Status: entities.StatusPending},
		{ID: "res4", CustomerID: "1", CustomerName: "Alice Johnson", Service: "Facial", Date: at(2), Status: entities.StatusConfirmed},
		{ID: "res5", CustomerID: "4", CustomerName: "Diana Miller", Service: "Massage", Date: at(5), Status: entities.StatusPending},
		{ID: "res6", CustomerID: "5", CustomerName: "Ethan Davis", Service: "Haircut & Shave", Date: at(7), Status: entities.StatusConfirmed},
		{ID: "res7", CustomerID: "2", CustomerName: "Bob Williams", Service: "Consultation", Date: at(-10), Status: entities.StatusCancelled},
	}
}

// SeedIfEmpty loads the demo data into empty repositories.
func SeedIfEmpty(ctx context.Context, customers repository.CustomerRepository, reservations repository.ReservationRepository, now time.Time) error {
	existing, err := customers.List(ctx)
	if err != nil {
		return fmt.Errorf("error checking for existing customers: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, c := range SeedCustomers() {
		if err := customers.Create(ctx, &c); err != nil {
			return fmt.Errorf("error seeding customer %s: %w", c.ID, err)
		}
	}
	for _, r := range SeedReservations(now) {
		if err := reservations.Create(ctx, &r); err != nil {
			return fmt.Errorf("error seeding reservation %s: %w", r.ID, err)
		}
	}
	return nil
}
