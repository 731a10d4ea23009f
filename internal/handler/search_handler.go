package handler

import (
	"net/http"
	"strconv"

	"github.com/dealerops/rental-engine/internal/service"
	"github.com/dealerops/rental-engine/pkg/response"
)

type SearchHandler struct {
	service *service.SearchService
}

func NewSearchHandler(service *service.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))

	results, err := h.service.Search(r.Context(), id, query.Get("query"), query.Get("type"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	id, ok := dealerID(w, r)
	if !ok {
		return
	}

	suggestions, err := h.service.Suggest(r.Context(), id, r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, suggestions)
}
