package api

import (
	"context"
	"net/http"

	"reservewise/internal/entities"
)

type SummaryProvider interface {
	Summary(ctx context.Context) (entities.DashboardSummary, error)
}

type DashboardHandler struct {
	base
	summary SummaryProvider
}

func NewDashboardHandler(summary SummaryProvider, renderer *Renderer) *DashboardHandler {
	return &DashboardHandler{base: base{renderer: renderer, logger: renderer.logger}, summary: summary}
}

type dashboardView struct {
	Summary entities.DashboardSummary
}

func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	p := h.page(r, "Dashboard")
	status := http.StatusOK

	sum, err := h.summary.Summary(r.Context())
	if err != nil {
		h.remoteFailure(r, "dashboard summary", err)
		p.Toast = failureToast(err)
		status = http.StatusBadGateway
	}
	p.Data = dashboardView{Summary: sum}
	h.renderer.Render(w, status, "dashboard.html", p)
}
