package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/service"
	"github.com/dealerops/rental-engine/pkg/response"
)

type RentalHandler struct {
	service *service.RentalService
}

func NewRentalHandler(service *service.RentalService) *RentalHandler {
	return &RentalHandler{service: service}
}

// Open creates a rental and claims the equipment.
func (h *RentalHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	var request domain.OpenRentalRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	rental, err := h.service.OpenRental(r.Context(), id, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page, limit := pageParams(r)
	filter := domain.RentalFilter{
		Status: query.Get("status"),
		Page:   page,
		Limit:  limit,
	}
	if raw := query.Get("customer_id"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid customer id", err)
			return
		}
		filter.CustomerID = &customerID
	}

	rentals, total, err := h.service.ListRentals(r.Context(), id, &filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Paginated(w, rentals, filter.Page, filter.Limit, total)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	rentalID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid rental id", err)
		return
	}

	detail, err := h.service.GetRental(r.Context(), id, rentalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, detail)
}

// Close completes an active rental and releases the equipment.
func (h *RentalHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	rentalID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid rental id", err)
		return
	}

	var request domain.CloseRentalRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	rental, err := h.service.CloseRental(r.Context(), id, rentalID, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, rental)
}

// Cancel voids a rental without touching the ledger.
func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	rentalID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid rental id", err)
		return
	}

	rental, err := h.service.CancelRental(r.Context(), id, rentalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, rental)
}
