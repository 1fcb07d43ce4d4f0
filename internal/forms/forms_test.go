package forms

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"reservewise/internal/entities"
)

var fixedNow = time.Date(2024, 7, 15, 12, 0, 0, 0, time.Local)

func newTestValidator() *Validator {
	return NewValidator(func() time.Time { return fixedNow })
}

func TestCheck_Customer(t *testing.T) {
	v := newTestValidator()
	tests := []struct {
		name string
		form CustomerForm
		want Errors
	}{
		{"valid", CustomerForm{Name: "Ana", Email: "ana@example.com", Phone: "5551234567"}, nil},
		{"short name", CustomerForm{Name: "A", Email: "ana@example.com", Phone: "5551234567"},
			Errors{"name": "Name must be at least 2 characters."}},
		{"bad email", CustomerForm{Name: "Ana", Email: "nope", Phone: "5551234567"},
			Errors{"email": "Please enter a valid email."}},
		{"short phone", CustomerForm{Name: "Ana", Email: "ana@example.com", Phone: "555"},
			Errors{"phone": "Phone number must be at least 10 digits."}},
		{"all empty", CustomerForm{}, Errors{
			"name":  "Name must be at least 2 characters.",
			"email": "Please enter a valid email.",
			"phone": "Phone number must be at least 10 digits.",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Check(tt.form)
			if len(got) != len(tt.want) {
				t.Fatalf("Check = %v, want %v", got, tt.want)
			}
			for k, msg := range tt.want {
				if got[k] != msg {
					t.Errorf("%s = %q, want %q", k, got[k], msg)
				}
			}
		})
	}
}

func TestCheck_Reservation(t *testing.T) {
	v := newTestValidator()
	tests := []struct {
		name string
		form ReservationForm
		want Errors
	}{
		{"valid", ReservationForm{CustomerID: "1", Service: "Haircut", Date: "2024-07-20T10:00"}, nil},
		{"earlier today is allowed", ReservationForm{CustomerID: "1", Service: "Haircut", Date: "2024-07-15T08:00"}, nil},
		{"no customer", ReservationForm{Service: "Haircut", Date: "2024-07-20"},
			Errors{"customerId": "Please select a customer."}},
		{"short service", ReservationForm{CustomerID: "1", Service: "H", Date: "2024-07-20"},
			Errors{"service": "Service must be at least 2 characters."}},
		{"missing date", ReservationForm{CustomerID: "1", Service: "Haircut"},
			Errors{"date": "A date is required."}},
		{"garbage date", ReservationForm{CustomerID: "1", Service: "Haircut", Date: "soon"},
			Errors{"date": "A date is required."}},
		{"past date", ReservationForm{CustomerID: "1", Service: "Haircut", Date: "2024-07-14T23:59"},
			Errors{"date": "Date cannot be in the past."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Check(tt.form)
			if len(got) != len(tt.want) {
				t.Fatalf("Check = %v, want %v", got, tt.want)
			}
			for k, msg := range tt.want {
				if got[k] != msg {
					t.Errorf("%s = %q, want %q", k, got[k], msg)
				}
			}
		})
	}
}

func TestParseForms_TrimInput(t *testing.T) {
	c := ParseCustomerForm(url.Values{"name": {"  Ana  "}, "email": {"ana@example.com "}})
	if c.Name != "Ana" || c.Email != "ana@example.com" {
		t.Errorf("ParseCustomerForm = %+v", c)
	}
	r := ParseReservationForm(url.Values{"customerId": {"1"}, "service": {" Spa "}, "date": {"2024-07-20"}})
	if r.CustomerID != "1" || r.Service != "Spa" || r.Date != "2024-07-20" {
		t.Errorf("ParseReservationForm = %+v", r)
	}
}

func TestToCustomer(t *testing.T) {
	c := ToCustomer(CustomerForm{Name: "Ana", Email: "ana@example.com", Phone: "5551234567"}, fixedNow)
	if !c.IsNew() || !c.CreatedAt.Equal(fixedNow) || c.Name != "Ana" {
		t.Errorf("ToCustomer = %+v", c)
	}
}

func TestToReservation(t *testing.T) {
	customers := []entities.Customer{{ID: "1", Name: "Ana"}, {ID: "2", Name: "Beto"}}

	r, errs := ToReservation(ReservationForm{CustomerID: "2", Service: "Spa", Date: "2024-07-20T10:00"}, customers)
	if errs != nil {
		t.Fatalf("errors = %v", errs)
	}
	if !r.IsNew() || r.CustomerName != "Beto" || r.Status != entities.StatusPending {
		t.Errorf("ToReservation = %+v", r)
	}
	if want := time.Date(2024, 7, 20, 10, 0, 0, 0, time.Local); !r.Date.Equal(want) {
		t.Errorf("date = %v, want %v", r.Date, want)
	}

	_, errs = ToReservation(ReservationForm{CustomerID: "9", Service: "Spa", Date: "2024-07-20"}, customers)
	if !errs.Has("customerId") {
		t.Errorf("unknown customer should be a field error, got %v", errs)
	}
}

func TestDialog_Lifecycle(t *testing.T) {
	var d Dialog
	if d.IsOpen() {
		t.Fatal("zero dialog should be closed")
	}
	if err := d.Submit(func() Errors { return nil }); !errors.Is(err, ErrBadTransition) {
		t.Errorf("submit while closed: err = %v", err)
	}

	d.Open()
	if err := d.Submit(func() Errors { return Errors{"name": "bad"} }); err != nil {
		t.Fatal(err)
	}
	if d.State != OpenWithErrors || d.Ready() || !d.Errors.Has("name") {
		t.Fatalf("after invalid submit: %+v", d)
	}

	if err := d.Submit(func() Errors { return nil }); err != nil {
		t.Fatal(err)
	}
	if !d.Ready() {
		t.Fatalf("state = %s, want submitting", d.State)
	}
	if err := d.Fail("Something went wrong. Please try again.", nil); err != nil {
		t.Fatal(err)
	}
	if d.State != OpenWithErrors || d.Message == "" {
		t.Fatalf("after failure: %+v", d)
	}

	_ = d.Submit(func() Errors { return nil })
	if err := d.Succeed(); err != nil {
		t.Fatal(err)
	}
	if d.IsOpen() || d.Message != "" || d.Errors != nil {
		t.Errorf("after success: %+v", d)
	}
}

func TestDialog_CancelDiscards(t *testing.T) {
	var d Dialog
	d.Open()
	_ = d.Submit(func() Errors { return Errors{"email": "bad"} })
	d.Cancel()
	if d.IsOpen() || d.Errors != nil {
		t.Errorf("after cancel: %+v", d)
	}
	if err := d.Succeed(); !errors.Is(err, ErrBadTransition) {
		t.Errorf("succeed after cancel: err = %v", err)
	}
}
