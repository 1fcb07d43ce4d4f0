// Package columns declares how customers and reservations appear in the
// dashboard tables. Nothing here talks to the remote API: row actions carry
// URLs produced by the injected Actions.
package columns

import (
	"reservewise/internal/entities"
	"reservewise/internal/table"
	"reservewise/internal/utils"
)

// Actions builds the URLs that row actions post to.
type Actions struct {
	DeleteCustomer       func(id string) string
	SetReservationStatus func(id string) string
}

var statusClasses = map[entities.Status]string{
	entities.StatusConfirmed: "badge badge-confirmed",
	entities.StatusPending:   "badge badge-pending",
	entities.StatusCancelled: "badge badge-cancelled",
}

// StatusBadge renders a reservation status. Values outside the enum render as
// plain text.
func StatusBadge(s entities.Status) table.Cell {
	return table.Cell{Text: string(s), Class: statusClasses[s]}
}

func Customers(a Actions) table.Definition[entities.Customer] {
	return table.Definition[entities.Customer]{
		Columns: []table.Column[entities.Customer]{
			{ID: "name", Header: "Name", Value: func(c entities.Customer) string { return c.Name }, Sortable: true},
			{ID: "email", Header: "Email", Value: func(c entities.Customer) string { return c.Email }, Sortable: true, Hideable: true},
			{ID: "phone", Header: "Phone", Value: func(c entities.Customer) string { return c.Phone }, Hideable: true},
			{
				ID:     "createdAt",
				Header: "Date Added",
				Value:  func(c entities.Customer) string { return utils.FormatISO(c.CreatedAt) },
				Cell: func(c entities.Customer) table.Cell {
					return table.Cell{Text: utils.FormatShortDate(c.CreatedAt)}
				},
				Sortable: true,
				Hideable: true,
			},
		},
		RowID: func(c entities.Customer) string { return c.ID },
		Actions: func(c entities.Customer) []table.Action {
			actions := []table.Action{{Label: "Copy customer ID", Kind: table.ActionCopy, Value: c.ID}}
			if a.DeleteCustomer != nil {
				actions = append(actions, table.Action{
					Label:   "Delete customer",
					Kind:    table.ActionPost,
					URL:     a.DeleteCustomer(c.ID),
					Confirm: "Are you sure you want to delete " + c.Name + "?",
					Danger:  true,
				})
			}
			return actions
		},
	}
}

func Reservations(a Actions) table.Definition[entities.Reservation] {
	return table.Definition[entities.Reservation]{
		Columns: []table.Column[entities.Reservation]{
			{ID: "customerName", Header: "Customer", Value: func(r entities.Reservation) string { return r.CustomerName }, Sortable: true},
			{ID: "service", Header: "Service", Value: func(r entities.Reservation) string { return r.Service }, Sortable: true, Hideable: true},
			{
				ID:     "date",
				Header: "Date",
				Value:  func(r entities.Reservation) string { return utils.FormatISO(r.Date) },
				Cell: func(r entities.Reservation) table.Cell {
					return table.Cell{Text: utils.FormatLongDate(r.Date)}
				},
				Sortable: true,
			},
			{
				ID:       "status",
				Header:   "Status",
				Value:    func(r entities.Reservation) string { return string(r.Status) },
				Cell:     func(r entities.Reservation) table.Cell { return StatusBadge(r.Status) },
				Sortable: true,
				Hideable: true,
			},
		},
		RowID: func(r entities.Reservation) string { return r.ID },
		Actions: func(r entities.Reservation) []table.Action {
			actions := []table.Action{{Label: "Copy reservation ID", Kind: table.ActionCopy, Value: r.ID}}
			if a.SetReservationStatus == nil {
				return actions
			}
			url := a.SetReservationStatus(r.ID)
			if r.Status != entities.StatusConfirmed {
				actions = append(actions, table.Action{
					Label:  "Mark as confirmed",
					Kind:   table.ActionPost,
					URL:    url,
					Fields: map[string]string{"status": string(entities.StatusConfirmed)},
				})
			}
			if r.Status != entities.StatusCancelled {
				actions = append(actions, table.Action{
					Label:  "Mark as cancelled",
					Kind:   table.ActionPost,
					URL:    url,
					Fields: map[string]string{"status": string(entities.StatusCancelled)},
					Danger: true,
				})
			}
			return actions
		},
	}
}
