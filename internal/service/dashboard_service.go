package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"reservewise/internal/entities"
	"reservewise/internal/utils"
)

type CustomerLister interface {
	ListCustomers(ctx context.Context) ([]entities.Customer, error)
}

type ReservationLister interface {
	ListReservations(ctx context.Context) ([]entities.Reservation, error)
}

type DashboardService struct {
	customers    CustomerLister
	reservations ReservationLister
	now          func() time.Time
}

func NewDashboardService(customers CustomerLister, reservations ReservationLister) *DashboardService {
	return &DashboardService{customers: customers, reservations: reservations, now: time.Now}
}

// Summary fetches both collections concurrently and aggregates them. Either
// fetch failing fails the summary.
func (s *DashboardService) Summary(ctx context.Context) (entities.DashboardSummary, error) {
	var (
		customers    []entities.Customer
		reservations []entities.Reservation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = s.customers.ListCustomers(gctx)
		if err != nil {
			return fmt.Errorf("error listing customers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		reservations, err = s.reservations.ListReservations(gctx)
		if err != nil {
			return fmt.Errorf("error listing reservations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return entities.DashboardSummary{}, err
	}
	return BuildSummary(customers, reservations, s.now()), nil
}

// BuildSummary computes the dashboard figures as of now.
func BuildSummary(customers []entities.Customer, reservations []entities.Reservation, now time.Time) entities.DashboardSummary {
	sum := entities.DashboardSummary{
		TotalCustomers:    len(customers),
		TotalReservations: len(reservations),
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, c := range customers {
		if !c.CreatedAt.IsZero() && !c.CreatedAt.Before(monthStart) {
			sum.NewCustomersMonth++
		}
	}

	today := utils.StartOfDay(now)
	buckets := make([]entities.DayCount, 7)
	index := make(map[string]int, 7)
	for i := range buckets {
		day := today.AddDate(0, 0, i-6)
		label := day.Format("Jan 02")
		buckets[i] = entities.DayCount{Label: label}
		index[label] = i
	}

	for _, r := range reservations {
		if r.Date.IsZero() {
			continue
		}
		if r.Status == entities.StatusConfirmed && r.Date.After(now) {
			sum.UpcomingReservations++
		}
		local := r.Date.In(now.Location())
		day := utils.StartOfDay(local)
		if day.After(today) || day.Before(today.AddDate(0, 0, -6)) {
			continue
		}
		if i, ok := index[local.Format("Jan 02")]; ok {
			buckets[i].Total++
		}
	}
	sum.LastSevenDays = buckets
	return sum
}
