// Package devapi is a development stand-in for the external reservation API.
// It serves the same JSON contract the dashboard consumes so the dashboard
// can run and be tested without the real backend.
package devapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"reservewise/internal/entities"
	apperrors "reservewise/internal/errors"
	"reservewise/internal/repository"
	"reservewise/internal/wire"
)

const maxBodyBytes = int64(1 << 20)

type Server struct {
	customers    repository.CustomerRepository
	reservations repository.ReservationRepository
	schema       wire.Schema
	logger       *slog.Logger
	now          func() time.Time
}

func NewServer(customers repository.CustomerRepository, reservations repository.ReservationRepository, schema wire.Schema, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		customers:    customers,
		reservations: reservations,
		schema:       schema,
		logger:       logger,
		now:          time.Now,
	}
}

// NewMemoryServer returns a server over in-memory stores, optionally seeded
// with the demo data.
func NewMemoryServer(schema wire.Schema, seed bool) *Server {
	var cs []entities.Customer
	var rs []entities.Reservation
	if seed {
		cs = SeedCustomers()
		rs = SeedReservations(time.Now())
	}
	return NewServer(
		repository.NewMemoryCustomerRepository(cs),
		repository.NewMemoryReservationRepository(rs),
		schema, nil)
}

// Routes mounts the API on r using the server's schema paths.
func (s *Server) Routes(r *mux.Router) {
	r.HandleFunc(s.schema.CustomersPath, s.ListCustomers).Methods(http.MethodGet)
	r.HandleFunc(s.schema.CustomersPath, s.CreateCustomer).Methods(http.MethodPost)
	r.HandleFunc(s.schema.CustomersPath+"/{id}", s.DeleteCustomer).Methods(http.MethodDelete)

	r.HandleFunc(s.schema.ReservationsPath, s.ListReservations).Methods(http.MethodGet)
	r.HandleFunc(s.schema.ReservationsPath, s.CreateReservation).Methods(http.MethodPost)
	r.HandleFunc(s.schema.ReservationsPath+"/{id}", s.UpdateReservation).Methods(http.MethodPut)
}

// Handler returns a router serving the API.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	s.Routes(r)
	return r
}

func writeJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}

func writeError(w http.ResponseWriter, err *apperrors.HTTPError) {
	writeJSON(w, err.Code, wire.EncodeErrorDetail(err.Message))
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "devapi request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, apperrors.NewHTTPError(http.StatusInternalServerError, "Internal server error"))
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, apperrors.ErrBadRequest("Invalid request body"))
		return nil, false
	}
	return body, true
}

func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	body, err := s.schema.EncodeCustomers(customers)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func validateCustomer(c entities.Customer) string {
	if strings.TrimSpace(c.Name) == "" {
		return "Name is required"
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return "A valid email is required"
	}
	return ""
}

func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	c, err := s.schema.DecodeCustomer(body)
	if err != nil {
		writeError(w, apperrors.ErrBadRequest("Invalid request body"))
		return
	}
	if !c.IsNew() {
		writeError(w, apperrors.ErrUnprocessable("id is assigned by the server"))
		return
	}
	if msg := validateCustomer(c); msg != "" {
		writeError(w, apperrors.ErrUnprocessable(msg))
		return
	}
	c.ID = uuid.NewString()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now().UTC()
	}
	if err := s.customers.Create(r.Context(), &c); err != nil {
		s.internalError(w, r, err)
		return
	}
	out, err := s.schema.EncodeCustomer(c)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	err := s.customers.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, apperrors.ErrNotFound("Customer not found"))
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListReservations accepts an optional comma separated ?status= filter.
func (s *Server) ListReservations(w http.ResponseWriter, r *http.Request) {
	var statuses []entities.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st, err := entities.ParseStatus(part)
			if err != nil {
				writeError(w, apperrors.ErrUnprocessable(err.Error()))
				return
			}
			statuses = append(statuses, st)
		}
	}
	reservations, err := s.reservations.List(r.Context(), statuses...)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	body, err := s.schema.EncodeReservations(reservations)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func validateReservation(res entities.Reservation) string {
	switch {
	case res.CustomerID == "":
		return "customerId is required"
	case strings.TrimSpace(res.Service) == "":
		return "Service is required"
	case res.Date.IsZero():
		return "A valid date is required"
	case !res.Status.Valid():
		return "Status must be one of confirmed, pending, cancelled"
	}
	return ""
}

func (s *Server) CreateReservation(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	res, err := s.schema.DecodeReservation(body)
	if err != nil {
		writeError(w, apperrors.ErrBadRequest("Invalid request body"))
		return
	}
	if !res.IsNew() {
		writeError(w, apperrors.ErrUnprocessable("id is assigned by the server"))
		return
	}
	if res.Status == "" {
		res.Status = entities.StatusPending
	}
	if msg := validateReservation(res); msg != "" {
		writeError(w, apperrors.ErrUnprocessable(msg))
		return
	}
	res.ID = uuid.NewString()
	if err := s.reservations.Create(r.Context(), &res); err != nil {
		s.internalError(w, r, err)
		return
	}
	out, err := s.schema.EncodeReservation(res)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// UpdateReservation replaces the stored reservation with the request body.
// The path id wins over any id in the body.
func (s *Server) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	res, err := s.schema.DecodeReservation(body)
	if err != nil {
		writeError(w, apperrors.ErrBadRequest("Invalid request body"))
		return
	}
	res.ID = id
	if msg := validateReservation(res); msg != "" {
		writeError(w, apperrors.ErrUnprocessable(msg))
		return
	}
	err = s.reservations.Update(r.Context(), &res)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, apperrors.ErrNotFound("Reservation not found"))
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	out, err := s.schema.EncodeReservation(res)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
