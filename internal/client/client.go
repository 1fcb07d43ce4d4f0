// Package client talks to the external reservation API.
//
// Every call is attempted exactly once. A non-2xx answer comes back as
// *errors.HTTPError carrying the server's detail message when it sent one.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reservewise/internal/entities"
	apperrors "reservewise/internal/errors"
	"reservewise/internal/metrics"
	"reservewise/internal/wire"
)

const maxBodyBytes = 4 << 20

const (
	entityCustomers    = "customers"
	entityReservations = "reservations"
)

type Client struct {
	baseURL string
	schema  wire.Schema
	http    *http.Client
	metrics *metrics.Collector
	logger  *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client for the API at baseURL (scheme and host, optional path
// prefix) speaking the given naming schema.
func New(baseURL string, schema wire.Schema, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		schema:  schema,
		http:    &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Schema returns the naming schema the client encodes with.
func (c *Client) Schema() wire.Schema {
	return c.schema
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, entity, op, method, path string, body []byte) (respBody []byte, err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveRemote(entity, op, start, err)
		if err != nil {
			c.logger.WarnContext(ctx, "remote call failed",
				"entity", entity, "op", op, "method", method, "path", path, "error", err)
		}
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewHTTPError(resp.StatusCode, wire.DecodeErrorDetail(data))
	}
	return data, nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]entities.Customer, error) {
	data, err := c.do(ctx, entityCustomers, "list", http.MethodGet, c.schema.CustomersPath, nil)
	if err != nil {
		return nil, err
	}
	return c.schema.DecodeCustomers(data)
}

// CreateCustomer posts a new customer and returns the record as stored by
// the server, including its assigned id.
func (c *Client) CreateCustomer(ctx context.Context, in entities.Customer) (entities.Customer, error) {
	if !in.IsNew() {
		return entities.Customer{}, fmt.Errorf("create customer: id must be empty, got %q", in.ID)
	}
	body, err := c.schema.EncodeCustomer(in)
	if err != nil {
		return entities.Customer{}, fmt.Errorf("encode customer: %w", err)
	}
	data, err := c.do(ctx, entityCustomers, "create", http.MethodPost, c.schema.CustomersPath, body)
	if err != nil {
		return entities.Customer{}, err
	}
	return c.schema.DecodeCustomer(data)
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete customer: empty id")
	}
	_, err := c.do(ctx, entityCustomers, "delete", http.MethodDelete, c.schema.CustomerPath(url.PathEscape(id)), nil)
	return err
}

func (c *Client) ListReservations(ctx context.Context) ([]entities.Reservation, error) {
	data, err := c.do(ctx, entityReservations, "list", http.MethodGet, c.schema.ReservationsPath, nil)
	if err != nil {
		return nil, err
	}
	return c.schema.DecodeReservations(data)
}

// CreateReservation posts a new reservation. New reservations always start
// out pending regardless of the status on in.
func (c *Client) CreateReservation(ctx context.Context, in entities.Reservation) (entities.Reservation, error) {
	if !in.IsNew() {
		return entities.Reservation{}, fmt.Errorf("create reservation: id must be empty, got %q", in.ID)
	}
	in.Status = entities.StatusPending
	body, err := c.schema.EncodeReservation(in)
	if err != nil {
		return entities.Reservation{}, fmt.Errorf("encode reservation: %w", err)
	}
	data, err := c.do(ctx, entityReservations, "create", http.MethodPost, c.schema.ReservationsPath, body)
	if err != nil {
		return entities.Reservation{}, err
	}
	return c.schema.DecodeReservation(data)
}

// UpdateReservation PUTs the full reservation body.
func (c *Client) UpdateReservation(ctx context.Context, in entities.Reservation) (entities.Reservation, error) {
	if in.IsNew() {
		return entities.Reservation{}, fmt.Errorf("update reservation: empty id")
	}
	if !in.Status.Valid() {
		return entities.Reservation{}, fmt.Errorf("update reservation %s: invalid status %q", in.ID, in.Status)
	}
	body, err := c.schema.EncodeReservation(in)
	if err != nil {
		return entities.Reservation{}, fmt.Errorf("encode reservation: %w", err)
	}
	data, err := c.do(ctx, entityReservations, "update", http.MethodPut, c.schema.ReservationPath(url.PathEscape(in.ID)), body)
	if err != nil {
		return entities.Reservation{}, err
	}
	return c.schema.DecodeReservation(data)
}
