package handler

import (
	"net/http"

	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/service"
	"github.com/dealerops/rental-engine/pkg/response"
)

// SettingsHandler exposes the dealer's own account: profile and
// password.
type SettingsHandler struct {
	service *service.AuthService
}

func NewSettingsHandler(service *service.AuthService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) Profile(w http.ResponseWriter, r *http.Request) {
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

func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	var request domain.UpdateProfileRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	dealer, err := h.service.UpdateProfile(r.Context(), id, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, dealer)
}

func (h *SettingsHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	var request domain.ChangePasswordRequest
	if err := decodeBody(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), id, &request); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Password updated successfully"})
}
