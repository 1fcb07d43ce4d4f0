package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"reservewise/internal/auth"
	"reservewise/internal/metrics"
)

// Handlers groups the page handlers the router serves.
type Handlers struct {
	Auth         *AuthHandler
	Dashboard    *DashboardHandler
	Customers    *CustomerHandler
	Reservations *ReservationHandler
}

// NewRouter wires the public and signed-in routes. The metrics endpoint and
// health check are left unguarded.
func NewRouter(h Handlers, authenticator auth.Authenticator, m *metrics.Collector) *mux.Router {
	r := mux.NewRouter()
	if m != nil {
		r.Use(m.Middleware)
		r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// Public endpoints
	r.HandleFunc("/", h.Auth.Home).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Auth.LoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)

	// Signed-in endpoints
	app := r.NewRoute().Subrouter()
	app.Use(auth.RequireUser(authenticator))
	app.HandleFunc("/dashboard", h.Dashboard.Show).Methods(http.MethodGet)
	app.HandleFunc("/clientes", h.Customers.List).Methods(http.MethodGet)
	app.HandleFunc("/clientes", h.Customers.Create).Methods(http.MethodPost)
	app.HandleFunc("/clientes/{id}/delete", h.Customers.Delete).Methods(http.MethodPost)
	app.HandleFunc("/reservas", h.Reservations.List).Methods(http.MethodGet)
	app.HandleFunc("/reservas", h.Reservations.Create).Methods(http.MethodPost)
	app.HandleFunc("/reservas/{id}/status", h.Reservations.SetStatus).Methods(http.MethodPost)

	return r
}
