// Package forms holds the create dialogs: their input shapes, validation
// and conversion into entities.
package forms

import (
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"reservewise/internal/entities"
	"reservewise/internal/utils"
)

type CustomerForm struct {
	Name  string `form:"name" validate:"required,min=2"`
	Email string `form:"email" validate:"required,email"`
	Phone string `form:"phone" validate:"required,min=10"`
}

type ReservationForm struct {
	CustomerID string `form:"customerId" validate:"required"`
	Service    string `form:"service" validate:"required,min=2"`
	Date       string `form:"date" validate:"required,isdate,notpast"`
}

// Errors maps a form field name to the message shown under it.
type Errors map[string]string

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

var messages = map[string]string{
	"name":         "Name must be at least 2 characters.",
	"email":        "Please enter a valid email.",
	"phone":        "Phone number must be at least 10 digits.",
	"customerId":   "Please select a customer.",
	"service":      "Service must be at least 2 characters.",
	"date":         "A date is required.",
	"date.notpast": "Date cannot be in the past.",
}

func message(field, tag string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	return messages[field]
}

// Validator checks forms before anything is sent. Dates are judged against
// the start of today from its clock.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	fv := &Validator{v: validator.New(validator.WithRequiredStructEnabled()), now: now}
	fv.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = fv.v.RegisterValidation("isdate", func(fl validator.FieldLevel) bool {
		return !utils.ParseTime(fl.Field().String()).IsZero()
	})
	_ = fv.v.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
		t := utils.ParseTime(fl.Field().String())
		return !t.Before(utils.StartOfDay(fv.now()))
	})
	return fv
}

// Check validates a form struct. A nil result means it passed.
func (fv *Validator) Check(form any) Errors {
	err := fv.v.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{"": err.Error()}
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe.Field(), fe.Tag())
	}
	return out
}

func ParseCustomerForm(v url.Values) CustomerForm {
	return CustomerForm{
		Name:  strings.TrimSpace(v.Get("name")),
		Email: strings.TrimSpace(v.Get("email")),
		Phone: strings.TrimSpace(v.Get("phone")),
	}
}

func ParseReservationForm(v url.Values) ReservationForm {
	return ReservationForm{
		CustomerID: strings.TrimSpace(v.Get("customerId")),
		Service:    strings.TrimSpace(v.Get("service")),
		Date:       strings.TrimSpace(v.Get("date")),
	}
}

// ToCustomer builds the create payload. The id stays empty for the server.
func ToCustomer(f CustomerForm, now time.Time) entities.Customer {
	return entities.Customer{
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		CreatedAt: now,
	}
}

// ToReservation builds the create payload, taking the customer name from the
// loaded customers. An unknown customer is reported against customerId.
func ToReservation(f ReservationForm, customers []entities.Customer) (entities.Reservation, Errors) {
	var customer *entities.Customer
	for i := range customers {
		if customers[i].ID == f.CustomerID {
			customer = &customers[i]
			break
		}
	}
	if customer == nil {
		return entities.Reservation{}, Errors{"customerId": messages["customerId"]}
	}
	return entities.Reservation{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Service:      f.Service,
		Date:         utils.ParseTime(f.Date),
		Status:       entities.StatusPending,
	}, nil
}
