package handler

import (
	"net/http"

	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/service"
	"github.com/dealerops/rental-engine/pkg/response"
)

type CustomerHandler struct {
	service *service.CustomerService
}

func NewCustomerHandler(service *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	var request domain.CreateCustomerRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), id, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, customer)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	page, limit := pageParams(r)
	filter := domain.CustomerFilter{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}

	customers, total, err := h.service.ListCustomers(r.Context(), id, &filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Paginated(w, customers, filter.Page, filter.Limit, total)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	customerID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid customer id", err)
		return
	}

	detail, err := h.service.GetCustomer(r.Context(), id, customerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, detail)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	customerID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid customer id", err)
		return
	}

	var request domain.UpdateCustomerRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), id, customerID, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, customer)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	customerID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid customer id", err)
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), id, customerID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Customer removed"})
}
