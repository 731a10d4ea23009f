package handler

import (
	"net/http"

	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/service"
	"github.com/dealerops/rental-engine/pkg/response"
)

type EquipmentHandler struct {
	service *service.EquipmentService
}

func NewEquipmentHandler(service *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	var request domain.CreateEquipmentRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	equipment, err := h.service.CreateEquipment(r.Context(), id, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, equipment)
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page, limit := pageParams(r)
	filter := domain.EquipmentFilter{
		Search:        query.Get("search"),
		Kind:          query.Get("kind"),
		Availability:  query.Get("availability"),
		EquipmentType: query.Get("equipment_type"),
		Page:          page,
		Limit:         limit,
	}

	equipment, total, err := h.service.ListEquipment(r.Context(), id, &filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Paginated(w, equipment, filter.Page, filter.Limit, total)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	equipmentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid equipment id", err)
		return
	}

	detail, err := h.service.GetEquipment(r.Context(), id, equipmentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, detail)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	equipmentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid equipment id", err)
		return
	}

	var request domain.UpdateEquipmentRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	equipment, err := h.service.UpdateEquipment(r.Context(), id, equipmentID, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, equipment)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	equipmentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid equipment id", err)
		return
	}

	if err := h.service.DeleteEquipment(r.Context(), id, equipmentID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Equipment removed"})
}
