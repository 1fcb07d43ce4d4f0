package service

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"reservewise/internal/entities"
	"reservewise/internal/metrics"
	"reservewise/internal/utils"
)

//go:embed templates/reminder_email.html
var reminderEmailHTML string

var reminderEmail = template.Must(template.New("reminder").Parse(reminderEmailHTML))

type reminderData struct {
	CustomerName  string
	Service       string
	When          string
	ReservationID string
	Year          int
	Business      string
}

// ReminderService notifies customers the day before a confirmed reservation.
type ReminderService struct {
	customers    CustomerLister
	reservations ReservationLister
	email        EmailSender
	sms          SMSSender
	metrics      *metrics.Collector
	logger       *slog.Logger
	business     string
	now          func() time.Time
}

func NewReminderService(customers CustomerLister, reservations ReservationLister, email EmailSender, sms SMSSender, m *metrics.Collector, logger *slog.Logger) *ReminderService {
	return &ReminderService{
		customers:    customers,
		reservations: reservations,
		email:        email,
		sms:          sms,
		metrics:      m,
		logger:       logger,
		business:     "ReserveWise",
		now:          time.Now,
	}
}

// DueTomorrow returns the confirmed reservations dated tomorrow.
func DueTomorrow(reservations []entities.Reservation, now time.Time) []entities.Reservation {
	start := utils.StartOfDay(now).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 1)
	var due []entities.Reservation
	for _, r := range reservations {
		if r.Status != entities.StatusConfirmed || r.Date.IsZero() {
			continue
		}
		d := r.Date.In(now.Location())
		if !d.Before(start) && d.Before(end) {
			due = append(due, r)
		}
	}
	return due
}

// SendDueReminders sends tomorrow's reminders and reports how many
// reservations were notified on at least one channel. Send failures are
// logged and joined into the returned error; they do not stop the run.
func (s *ReminderService) SendDueReminders(ctx context.Context) (int, error) {
	reservations, err := s.reservations.ListReservations(ctx)
	if err != nil {
		return 0, fmt.Errorf("reminders: error listing reservations: %w", err)
	}
	due := DueTomorrow(reservations, s.now())
	if len(due) == 0 {
		s.logger.Info("reminders: nothing due tomorrow")
		return 0, nil
	}

	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return 0, fmt.Errorf("reminders: error listing customers: %w", err)
	}
	byID := make(map[string]entities.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	var (
		sent int
		errs []error
	)
	for _, r := range due {
		c, ok := byID[r.CustomerID]
		if !ok {
			s.logger.Warn("reminders: customer not found", "reservation", r.ID, "customer", r.CustomerID)
			continue
		}
		notified := false
		if c.Email != "" {
			err := s.sendEmail(ctx, c, r)
			s.metrics.ObserveReminder("email", err)
			if err != nil {
				errs = append(errs, err)
			} else {
				notified = true
			}
		}
		if c.Phone != "" {
			err := s.sendSMS(ctx, c, r)
			s.metrics.ObserveReminder("sms", err)
			if err != nil {
				errs = append(errs, err)
			} else {
				notified = true
			}
		}
		if notified {
			sent++
		}
	}

	s.logger.Info("reminders: run finished", "due", len(due), "notified", sent, "failures", len(errs))
	return sent, errors.Join(errs...)
}

func (s *ReminderService) sendEmail(ctx context.Context, c entities.Customer, r entities.Reservation) error {
	data := reminderData{
		CustomerName:  c.Name,
		Service:       r.Service,
		When:          utils.FormatLongDate(r.Date) + " " + r.Date.Format("15:04"),
		ReservationID: r.ID,
		Year:          s.now().Year(),
		Business:      s.business,
	}
	var html bytes.Buffer
	if err := reminderEmail.Execute(&html, data); err != nil {
		return fmt.Errorf("error rendering reminder email for %s: %w", r.ID, err)
	}
	text := fmt.Sprintf("Hello %s,\n\nThis is a reminder of your %s reservation on %s.\nReference: %s\n\n%s",
		c.Name, r.Service, data.When, r.ID, s.business)

	err := s.email.SendEmail(ctx, Message{
		ToName:    c.Name,
		ToAddress: c.Email,
		Subject:   fmt.Sprintf("Reminder: %s tomorrow", r.Service),
		Text:      text,
		HTML:      html.String(),
	})
	if err != nil {
		s.logger.Error("reminders: email failed", "reservation", r.ID, "to", c.Email, "error", err)
		return fmt.Errorf("email for reservation %s: %w", r.ID, err)
	}
	return nil
}

func (s *ReminderService) sendSMS(ctx context.Context, c entities.Customer, r entities.Reservation) error {
	body := fmt.Sprintf("%s: reminder of your %s reservation tomorrow at %s. Ref %s.",
		s.business, r.Service, r.Date.Format("15:04"), r.ID)
	if err := s.sms.SendSMS(ctx, c.Phone, body); err != nil {
		s.logger.Error("reminders: sms failed", "reservation", r.ID, "to", c.Phone, "error", err)
		return fmt.Errorf("sms for reservation %s: %w", r.ID, err)
	}
	return nil
}

// Schedule registers the reminder run on c.
func (s *ReminderService) Schedule(c *cron.Cron, spec string, timeout time.Duration) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := s.SendDueReminders(ctx); err != nil {
			s.logger.Error("reminders: run failed", "error", err)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("error scheduling reminders %q: %w", spec, err)
	}
	return id, nil
}
