// Package wire adapts the remote API's field naming to the canonical entities.
//
// The API is mid-way through a rename from spanish to english field names.
// One Schema is authoritative for paths and request bodies; decoding accepts
// either name for every field so a half-migrated backend still reads cleanly.
package wire

import (
	"fmt"
	"strings"
)

type customerFields struct {
	ID, Name, Email, Phone, Address, CreatedAt string
}

type reservationFields struct {
	ID, CustomerID, CustomerName, Service, Date, Status string
}

// Schema names one naming convention for the remote API.
type Schema struct {
	Name             string
	CustomersPath    string
	ReservationsPath string

	customer    customerFields
	reservation reservationFields
}

var (
	English = Schema{
		Name:             "english",
		CustomersPath:    "/customers",
		ReservationsPath: "/reservations",
		customer: customerFields{
			ID: "id", Name: "name", Email: "email", Phone: "phone",
			Address: "address", CreatedAt: "createdAt",
		},
		reservation: reservationFields{
			ID: "id", CustomerID: "customerId", CustomerName: "customerName",
			Service: "service", Date: "date", Status: "status",
		},
	}

	Spanish = Schema{
		Name:             "spanish",
		CustomersPath:    "/clientes",
		ReservationsPath: "/reservas",
		customer: customerFields{
			ID: "id", Name: "nombre", Email: "email", Phone: "telefono",
			Address: "direccion", CreatedAt: "fecha_registro",
		},
		reservation: reservationFields{
			ID: "id", CustomerID: "cliente_id", CustomerName: "cliente_nombre",
			Service: "servicio", Date: "fecha", Status: "status",
		},
	}
)

// ParseSchema resolves a configured schema name. Empty means English.
func ParseSchema(name string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "english", "en":
		return English, nil
	case "spanish", "es":
		return Spanish, nil
	}
	return Schema{}, fmt.Errorf("unknown api schema %q", name)
}

// other returns the non-authoritative convention, used as a decode fallback.
func (s Schema) other() Schema {
	if s.Name == Spanish.Name {
		return English
	}
	return Spanish
}

// CustomerPath returns the item path for one customer.
func (s Schema) CustomerPath(id string) string {
	return s.CustomersPath + "/" + id
}

// ReservationPath returns the item path for one reservation.
func (s Schema) ReservationPath(id string) string {
	return s.ReservationsPath + "/" + id
}
