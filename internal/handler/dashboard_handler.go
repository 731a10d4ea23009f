package handler

import (
	"net/http"

	"github.com/dealerops/rental-engine/internal/service"
	"github.com/dealerops/rental-engine/pkg/response"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats serves the cached dealer dashboard aggregate.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetStats(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, stats)
}
