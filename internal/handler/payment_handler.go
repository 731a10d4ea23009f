package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/service"
	"github.com/dealerops/rental-engine/pkg/response"
)

type PaymentHandler struct {
	service *service.PaymentService
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	var request domain.RecordPaymentRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	entry, err := h.service.RecordPayment(r.Context(), id, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, entry)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page, limit := pageParams(r)
	filter := domain.PaymentFilter{Page: page, Limit: limit}

	if raw := query.Get("customer_id"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid customer id", err)
			return
		}
		filter.CustomerID = &customerID
	}
	if raw := query.Get("rental_id"); raw != "" {
		rentalID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid rental id", err)
			return
		}
		filter.RentalID = &rentalID
	}

	entries, total, err := h.service.ListPayments(r.Context(), id, &filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Paginated(w, entries, filter.Page, filter.Limit, total)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	paymentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid payment id", err)
		return
	}

	entry, err := h.service.GetPayment(r.Context(), id, paymentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, entry)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	paymentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid payment id", err)
		return
	}

	var request domain.UpdatePaymentRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	entry, err := h.service.UpdatePayment(r.Context(), id, paymentID, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, entry)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	paymentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid payment id", err)
		return
	}

	if err := h.service.DeletePayment(r.Context(), id, paymentID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Payment removed"})
}
