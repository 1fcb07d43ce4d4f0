package entities

import "time"

// Customer is the canonical customer record. Wire naming differences are
// resolved in the wire package before a Customer is built.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time // zero when absent or unparseable
}

// IsNew reports whether the remote store has not assigned an id yet.
func (c Customer) IsNew() bool {
	return c.ID == ""
}
