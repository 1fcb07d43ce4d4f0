package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"

	"reservewise/internal/entities"
)

var now = time.Date(2024, 7, 15, 12, 0, 0, 0, time.Local)

type fakeAPI struct {
	customers       []entities.Customer
	reservations    []entities.Reservation
	customersErr    error
	reservationsErr error
}

func (f *fakeAPI) ListCustomers(ctx context.Context) ([]entities.Customer, error) {
	return f.customers, f.customersErr
}

func (f *fakeAPI) ListReservations(ctx context.Context) ([]entities.Reservation, error) {
	return f.reservations, f.reservationsErr
}

func at(days int, hour int) time.Time {
	return time.Date(2024, 7, 15+days, hour, 0, 0, 0, time.Local)
}

func TestBuildSummary(t *testing.T) {
	customers := []entities.Customer{
		{ID: "1", CreatedAt: at(-3, 9)},
		{ID: "2", CreatedAt: time.Date(2024, 6, 30, 9, 0, 0, 0, time.Local)},
		{ID: "3"},
	}
	reservations := []entities.Reservation{
		{ID: "a", Date: at(0, 9), Status: entities.StatusConfirmed},   // earlier today
		{ID: "b", Date: at(0, 18), Status: entities.StatusConfirmed},  // later today
		{ID: "c", Date: at(-6, 10), Status: entities.StatusPending},   // first bucket
		{ID: "d", Date: at(-7, 10), Status: entities.StatusConfirmed}, // outside chart
		{ID: "e", Date: at(10, 10), Status: entities.StatusConfirmed}, // upcoming
		{ID: "f", Date: at(45, 10), Status: entities.StatusConfirmed}, // far ahead
		{ID: "g", Date: at(2, 10), Status: entities.StatusPending},    // not confirmed
		{ID: "h", Status: entities.StatusConfirmed},                   // no date
	}

	sum := BuildSummary(customers, reservations, now)

	if sum.TotalCustomers != 3 || sum.TotalReservations != 8 {
		t.Errorf("totals = %d/%d", sum.TotalCustomers, sum.TotalReservations)
	}
	if sum.NewCustomersMonth != 1 {
		t.Errorf("new this month = %d, want 1", sum.NewCustomersMonth)
	}
	if sum.UpcomingReservations != 3 {
		t.Errorf("upcoming = %d, want 3 (b, e and f)", sum.UpcomingReservations)
	}
	if len(sum.LastSevenDays) != 7 {
		t.Fatalf("buckets = %d", len(sum.LastSevenDays))
	}
	first, last := sum.LastSevenDays[0], sum.LastSevenDays[6]
	if first.Label != "Jul 09" || first.Total != 1 {
		t.Errorf("first bucket = %+v", first)
	}
	if last.Label != "Jul 15" || last.Total != 2 {
		t.Errorf("last bucket = %+v", last)
	}
	if sum.MaxDay() != 2 {
		t.Errorf("MaxDay = %d", sum.MaxDay())
	}
}

func TestDashboardService_Summary(t *testing.T) {
	api := &fakeAPI{
		customers:    []entities.Customer{{ID: "1"}},
		reservations: []entities.Reservation{{ID: "a"}, {ID: "b"}},
	}
	svc := NewDashboardService(api, api)
	svc.now = func() time.Time { return now }

	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.TotalCustomers != 1 || sum.TotalReservations != 2 {
		t.Errorf("summary = %+v", sum)
	}

	api.reservationsErr = errors.New("boom")
	if _, err := svc.Summary(context.Background()); err == nil || !strings.Contains(err.Error(), "reservations") {
		t.Errorf("err = %v, want reservation listing failure", err)
	}
}

type recordingSender struct {
	mu       sync.Mutex
	emails   []Message
	sms      []string
	emailErr error
}

func (r *recordingSender) SendEmail(ctx context.Context, m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailErr != nil {
		return r.emailErr
	}
	r.emails = append(r.emails, m)
	return nil
}

func (r *recordingSender) SendSMS(ctx context.Context, to, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sms = append(r.sms, to)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDueTomorrow(t *testing.T) {
	reservations := []entities.Reservation{
		{ID: "a", Date: at(1, 0), Status: entities.StatusConfirmed},
		{ID: "b", Date: at(1, 23), Status: entities.StatusConfirmed},
		{ID: "c", Date: at(2, 0), Status: entities.StatusConfirmed},
		{ID: "d", Date: at(1, 10), Status: entities.StatusPending},
		{ID: "e", Date: at(0, 23), Status: entities.StatusConfirmed},
	}
	due := DueTomorrow(reservations, now)
	if len(due) != 2 || due[0].ID != "a" || due[1].ID != "b" {
		t.Errorf("due = %+v, want a and b", due)
	}
}

func TestSendDueReminders(t *testing.T) {
	api := &fakeAPI{
		customers: []entities.Customer{
			{ID: "1", Name: "Ana", Email: "ana@example.com", Phone: "+15551234567"},
			{ID: "2", Name: "Beto", Email: "beto@example.com"},
		},
		reservations: []entities.Reservation{
			{ID: "r1", CustomerID: "1", Service: "Haircut", Date: at(1, 10), Status: entities.StatusConfirmed},
			{ID: "r2", CustomerID: "2", Service: "Spa", Date: at(1, 15), Status: entities.StatusConfirmed},
			{ID: "r3", CustomerID: "missing", Service: "Spa", Date: at(1, 15), Status: entities.StatusConfirmed},
			{ID: "r4", CustomerID: "1", Service: "Nails", Date: at(3, 15), Status: entities.StatusConfirmed},
		},
	}
	sender := &recordingSender{}
	svc := NewReminderService(api, api, sender, sender, nil, discardLogger())
	svc.now = func() time.Time { return now }

	sent, err := svc.SendDueReminders(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sent != 2 {
		t.Errorf("sent = %d, want 2", sent)
	}
	if len(sender.emails) != 2 || len(sender.sms) != 1 {
		t.Fatalf("emails = %d sms = %d", len(sender.emails), len(sender.sms))
	}
	m := sender.emails[0]
	if m.ToAddress != "ana@example.com" || !strings.Contains(m.HTML, "Haircut") || !strings.Contains(m.Text, "r1") {
		t.Errorf("email = %+v", m)
	}
}

func TestSendDueReminders_FailuresAreJoined(t *testing.T) {
	api := &fakeAPI{
		customers: []entities.Customer{{ID: "1", Name: "Ana", Email: "ana@example.com", Phone: "+15551234567"}},
		reservations: []entities.Reservation{
			{ID: "r1", CustomerID: "1", Service: "Haircut", Date: at(1, 10), Status: entities.StatusConfirmed},
		},
	}
	sender := &recordingSender{emailErr: errors.New("quota")}
	svc := NewReminderService(api, api, sender, sender, nil, discardLogger())
	svc.now = func() time.Time { return now }

	sent, err := svc.SendDueReminders(context.Background())
	if err == nil || !strings.Contains(err.Error(), "quota") {
		t.Errorf("err = %v, want the email failure", err)
	}
	if sent != 1 || len(sender.sms) != 1 {
		t.Errorf("sent = %d sms = %d, want the SMS still delivered", sent, len(sender.sms))
	}
}

func TestReminderService_Schedule(t *testing.T) {
	svc := NewReminderService(&fakeAPI{}, &fakeAPI{}, LogSender{Logger: discardLogger()}, LogSender{Logger: discardLogger()}, nil, discardLogger())
	c := cron.New()
	if _, err := svc.Schedule(c, "0 9 * * *", time.Minute); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("entries = %d", len(c.Entries()))
	}
	if _, err := svc.Schedule(c, "not a schedule", time.Minute); err == nil {
		t.Error("bad spec should fail")
	}
}

func TestNewSenders_FallsBackToLogging(t *testing.T) {
	email, sms := NewSenders(NotifierConfig{}, discardLogger())
	if _, ok := email.(LogSender); !ok {
		t.Errorf("email sender = %T", email)
	}
	if _, ok := sms.(LogSender); !ok {
		t.Errorf("sms sender = %T", sms)
	}

	email, sms = NewSenders(NotifierConfig{
		SendGridAPIKey: "key", FromEmail: "noreply@example.com",
		TwilioAccountSID: "AC123", TwilioAuthToken: "tok", TwilioFromNumber: "+15550000000",
	}, discardLogger())
	if _, ok := email.(*SendGridSender); !ok {
		t.Errorf("email sender = %T", email)
	}
	if _, ok := sms.(*TwilioSender); !ok {
		t.Errorf("sms sender = %T", sms)
	}
}
