// Package api serves the dashboard pages. Every page view loads its
// collection from the reservation API through a view model, renders it with
// the table and column definitions, and applies create and row actions
// within the same request.
package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"reservewise/internal/auth"
	apperrors "reservewise/internal/errors"
)

// base carries what every page handler needs.
type base struct {
	renderer *Renderer
	logger   *slog.Logger
	now      func() time.Time
}

func (b base) page(r *http.Request, title string) Page {
	return Page{
		Title: title,
		Nav:   Nav(r.URL.Path),
		User:  auth.UserFromContext(r.Context()),
	}
}

// staleNotice follows a success whose refetch failed.
const staleNotice = "The list may be out of date; reload to refresh it."

func successToast(description string) *Toast {
	return &Toast{Title: "Success!", Description: description}
}

// failureToast shows the server's detail when it sent one, else the generic
// message.
func failureToast(err error) *Toast {
	return &Toast{Title: "Error", Description: apperrors.UserMessage(err), Error: true}
}

func (b base) remoteFailure(r *http.Request, action string, err error) {
	b.logger.Error("remote call failed",
		"action", action,
		"path", r.URL.Path,
		"status", apperrors.StatusCode(err),
		"error", err,
	)
}

func pathFor(prefix, id, suffix string) string {
	return prefix + "/" + url.PathEscape(id) + suffix
}
