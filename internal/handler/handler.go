package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dealerops/rental-engine/internal/middleware"
	customError "github.com/dealerops/rental-engine/pkg/errors"
	"github.com/dealerops/rental-engine/pkg/response"
)

// decodeBody parses the JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathID parses the named mux variable as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// dealerID pulls the authenticated dealer from the request context.
func dealerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.DealerID(r.Context())
	if !ok {
		response.Unauthorized(w, "Access denied. No token provided.")
	}
	return id, ok
}

// pageParams reads page and limit from the query string as given.
// Services normalize them to the configured bounds, writing the
// values the response reports back into the filter.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// writeServiceError maps service errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	message := "Internal server error"
	var bizErr *customError.BusinessError
	if errors.As(err, &bizErr) {
		message = bizErr.Message
	}

	switch {
	case customError.IsNotFound(err):
		response.NotFound(w, message)
	case customError.IsConflict(err):
		response.Conflict(w, message, nil)
	case customError.IsValidation(err):
		response.BadRequest(w, message, nil)
	case errors.Is(err, customError.ErrInvalidCredentials):
		response.Unauthorized(w, message)
	default:
		response.InternalServerError(w, message, nil)
	}
}
