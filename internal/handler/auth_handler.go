package handler

import (
	"net/http"

	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/service"
	"github.com/dealerops/rental-engine/pkg/response"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates a dealer account and returns a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request domain.RegisterDealerRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	result, err := h.service.Register(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, result)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request domain.LoginRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	result, err := h.service.Login(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, result)
}

// Me returns the authenticated dealer's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	dealer, err := h.service.CurrentDealer(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, dealer)
}
