package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"reservewise/internal/columns"
	"reservewise/internal/entities"
	"reservewise/internal/forms"
	"reservewise/internal/table"
	"reservewise/internal/viewmodel"
)

type ReservationHandler struct {
	base
	source    viewmodel.ReservationSource
	customers viewmodel.Source[entities.Customer]
	validator *forms.Validator
	columns   table.Definition[entities.Reservation]
}

func NewReservationHandler(source viewmodel.ReservationSource, customers viewmodel.Source[entities.Customer], validator *forms.Validator, renderer *Renderer) *ReservationHandler {
	return &ReservationHandler{
		base:      base{renderer: renderer, logger: renderer.logger, now: time.Now},
		source:    source,
		customers: customers,
		validator: validator,
		columns: columns.Reservations(columns.Actions{
			SetReservationStatus: func(id string) string { return pathFor("/reservas", id, "/status") },
		}),
	}
}

type reservationsView struct {
	Table     table.View
	Query     string
	Dialog    *forms.Dialog
	Form      forms.ReservationForm
	Customers []entities.Customer
	MinDate   string
}

type reservationsPage struct {
	vm        *viewmodel.Reservations
	customers *viewmodel.List[entities.Customer]
}

func (h *ReservationHandler) render(w http.ResponseWriter, r *http.Request, status int, p Page, rp reservationsPage, dialog *forms.Dialog, form forms.ReservationForm) {
	st := table.ParseState(r.URL.Query())
	p.Data = reservationsView{
		Table:     table.Build(rp.vm.Items(), h.columns, st),
		Query:     st.Encode(),
		Dialog:    dialog,
		Form:      form,
		Customers: rp.customers.Items(),
		MinDate:   h.now().Format("2006-01-02"),
	}
	h.renderer.Render(w, status, "reservations.html", p)
}

// load mounts both collections. They are independent, so they are fetched
// concurrently; the reservation list is the one that decides success.
func (h *ReservationHandler) load(r *http.Request, p *Page) (reservationsPage, bool) {
	rp := reservationsPage{
		vm:        viewmodel.NewReservations(h.source),
		customers: viewmodel.NewList(h.customers),
	}
	var g errgroup.Group
	g.Go(func() error { return rp.vm.Load(r.Context()) })
	g.Go(func() error {
		if err := rp.customers.Load(r.Context()); err != nil {
			h.remoteFailure(r, "list customers", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		h.remoteFailure(r, "list reservations", err)
		p.Toast = failureToast(err)
		return rp, false
	}
	return rp, true
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	p := h.page(r, "Reservas")
	rp, ok := h.load(r, &p)

	dialog := &forms.Dialog{}
	if r.URL.Query().Get("dialog") == "new" {
		dialog.Open()
	}
	status := http.StatusOK
	if !ok {
		status = http.StatusBadGateway
	}
	h.render(w, r, status, p, rp, dialog, forms.ReservationForm{})
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p := h.page(r, "Reservas")
	rp, _ := h.load(r, &p)

	form := forms.ParseReservationForm(r.PostForm)
	dialog := &forms.Dialog{}
	dialog.Open()

	var payload entities.Reservation
	_ = dialog.Submit(func() forms.Errors {
		if errs := h.validator.Check(form); errs != nil {
			return errs
		}
		res, errs := forms.ToReservation(form, rp.customers.Items())
		payload = res
		return errs
	})
	if !dialog.Ready() {
		h.render(w, r, http.StatusUnprocessableEntity, p, rp, dialog, form)
		return
	}

	created, err := rp.vm.Create(r.Context(), payload)
	if err != nil {
		h.remoteFailure(r, "create reservation", err)
		p.Toast = failureToast(err)
		_ = dialog.Fail(p.Toast.Description, nil)
		h.render(w, r, http.StatusBadGateway, p, rp, dialog, form)
		return
	}
	_ = dialog.Succeed()
	h.logger.Info("reservation created", "id", created.ID)
	p.Toast = successToast("New reservation has been created.")
	h.render(w, r, http.StatusOK, p, rp, dialog, forms.ReservationForm{})
}

// SetStatus marks a reservation confirmed or cancelled, then refetches.
func (h *ReservationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	p := h.page(r, "Reservas")
	rp, _ := h.load(r, &p)
	dialog := &forms.Dialog{}

	status, err := entities.ParseStatus(r.PostForm.Get("status"))
	if err != nil {
		p.Alert = "Unknown reservation status."
		h.render(w, r, http.StatusBadRequest, p, rp, dialog, forms.ReservationForm{})
		return
	}
	err = rp.vm.SetStatus(r.Context(), id, status)
	if errors.Is(err, viewmodel.ErrRefresh) {
		h.remoteFailure(r, "refresh reservations", err)
		p.Toast = successToast("Reservation marked as " + string(status) + ". " + staleNotice)
		h.render(w, r, http.StatusOK, p, rp, dialog, forms.ReservationForm{})
		return
	}
	if err != nil {
		h.remoteFailure(r, "update reservation status", err)
		p.Alert = "Could not update reservation: " + failureToast(err).Description
		h.render(w, r, http.StatusBadGateway, p, rp, dialog, forms.ReservationForm{})
		return
	}
	h.logger.Info("reservation status changed", "id", id, "status", status)
	p.Toast = successToast("Reservation marked as " + string(status) + ".")
	h.render(w, r, http.StatusOK, p, rp, dialog, forms.ReservationForm{})
}
