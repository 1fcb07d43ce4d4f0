package entities

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every permitted reservation status.
var Statuses = []Status{StatusConfirmed, StatusPending, StatusCancelled}

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus accepts only the three enum values, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("invalid reservation status %q", raw)
	}
	return s, nil
}

// Reservation is the canonical reservation record. CustomerID is not checked
// against the customer collection on this side.
type Reservation struct {
	ID           string
	CustomerID   string
	CustomerName string
	Service      string
	Date         time.Time // zero when absent or unparseable
	Status       Status
}

func (r Reservation) IsNew() bool {
	return r.ID == ""
}

// WithStatus returns a copy of r carrying the new status.
func (r Reservation) WithStatus(s Status) Reservation {
	r.Status = s
	return r
}
