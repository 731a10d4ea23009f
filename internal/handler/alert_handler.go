package handler

import (
	"net/http"

	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/service"
	"github.com/dealerops/rental-engine/pkg/response"
)

type AlertHandler struct {
	service *service.AlertService
}

func NewAlertHandler(service *service.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page, limit := pageParams(r)
	filter := domain.AlertFilter{
		Status:   query.Get("status"),
		Type:     query.Get("type"),
		Priority: query.Get("priority"),
		Page:     page,
		Limit:    limit,
	}

	alerts, total, err := h.service.ListAlerts(r.Context(), id, &filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Paginated(w, alerts, filter.Page, filter.Limit, total)
}

func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	alertID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid alert id", err)
		return
	}

	alert, err := h.service.GetAlert(r.Context(), id, alertID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, alert)
}

// UpdateStatus acknowledges or resolves an alert.
func (h *AlertHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	alertID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid alert id", err)
		return
	}

	var request struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	alert, err := h.service.UpdateAlertStatus(r.Context(), id, alertID, request.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, alert)
}
