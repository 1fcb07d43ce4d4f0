package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"reservewise/internal/columns"
	"reservewise/internal/entities"
	"reservewise/internal/forms"
	"reservewise/internal/table"
	"reservewise/internal/viewmodel"
)

type CustomerHandler struct {
	base
	source    viewmodel.CustomerSource
	validator *forms.Validator
	columns   table.Definition[entities.Customer]
}

func NewCustomerHandler(source viewmodel.CustomerSource, validator *forms.Validator, renderer *Renderer) *CustomerHandler {
	return &CustomerHandler{
		base:      base{renderer: renderer, logger: renderer.logger, now: time.Now},
		source:    source,
		validator: validator,
		columns: columns.Customers(columns.Actions{
			DeleteCustomer: func(id string) string { return pathFor("/clientes", id, "/delete") },
		}),
	}
}

type customersView struct {
	Table  table.View
	Query  string
	Dialog *forms.Dialog
	Form   forms.CustomerForm
}

func (h *CustomerHandler) render(w http.ResponseWriter, r *http.Request, status int, p Page, vm *viewmodel.Customers, dialog *forms.Dialog, form forms.CustomerForm) {
	st := table.ParseState(r.URL.Query())
	p.Data = customersView{
		Table:  table.Build(vm.Items(), h.columns, st),
		Query:  st.Encode(),
		Dialog: dialog,
		Form:   form,
	}
	h.renderer.Render(w, status, "customers.html", p)
}

// load mounts the page's view model. A failed fetch leaves it empty and puts
// the failure on the page.
func (h *CustomerHandler) load(r *http.Request, p *Page) (*viewmodel.Customers, bool) {
	vm := viewmodel.NewCustomers(h.source)
	if err := vm.Load(r.Context()); err != nil {
		h.remoteFailure(r, "list customers", err)
		p.Toast = failureToast(err)
		return vm, false
	}
	return vm, true
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	p := h.page(r, "Clientes")
	vm, ok := h.load(r, &p)

	dialog := &forms.Dialog{}
	if r.URL.Query().Get("dialog") == "new" {
		dialog.Open()
	}
	status := http.StatusOK
	if !ok {
		status = http.StatusBadGateway
	}
	h.render(w, r, status, p, vm, dialog, forms.CustomerForm{})
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p := h.page(r, "Clientes")
	vm, _ := h.load(r, &p)

	form := forms.ParseCustomerForm(r.PostForm)
	dialog := &forms.Dialog{}
	dialog.Open()
	_ = dialog.Submit(func() forms.Errors { return h.validator.Check(form) })
	if !dialog.Ready() {
		h.render(w, r, http.StatusUnprocessableEntity, p, vm, dialog, form)
		return
	}

	created, err := vm.Create(r.Context(), forms.ToCustomer(form, h.now()))
	if err != nil {
		h.remoteFailure(r, "create customer", err)
		p.Toast = failureToast(err)
		_ = dialog.Fail(p.Toast.Description, nil)
		h.render(w, r, http.StatusBadGateway, p, vm, dialog, form)
		return
	}
	_ = dialog.Succeed()
	h.logger.Info("customer created", "id", created.ID)
	p.Toast = successToast("New customer has been added.")
	h.render(w, r, http.StatusOK, p, vm, dialog, forms.CustomerForm{})
}

// Delete runs after the browser's confirmation prompt. Success refetches the
// list; failure raises a blocking alert. A delete that went through but could
// not be refetched still reports success.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	p := h.page(r, "Clientes")
	vm, _ := h.load(r, &p)
	dialog := &forms.Dialog{}

	err := vm.Delete(r.Context(), id)
	if errors.Is(err, viewmodel.ErrRefresh) {
		h.remoteFailure(r, "refresh customers", err)
		p.Toast = successToast("Customer has been deleted. " + staleNotice)
		h.render(w, r, http.StatusOK, p, vm, dialog, forms.CustomerForm{})
		return
	}
	if err != nil {
		h.remoteFailure(r, "delete customer", err)
		p.Alert = "Could not delete customer: " + failureToast(err).Description
		h.render(w, r, http.StatusBadGateway, p, vm, dialog, forms.CustomerForm{})
		return
	}
	h.logger.Info("customer deleted", "id", id)
	p.Toast = successToast("Customer has been deleted.")
	h.render(w, r, http.StatusOK, p, vm, dialog, forms.CustomerForm{})
}
