package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/dealerops/rental-engine/internal/auth"
	"github.com/dealerops/rental-engine/internal/middleware"
	"github.com/dealerops/rental-engine/pkg/response"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Customer  *CustomerHandler
	Equipment *EquipmentHandler
	Rental    *RentalHandler
	Payment   *PaymentHandler
	Alert     *AlertHandler
	Dashboard *DashboardHandler
	Search    *SearchHandler
	Settings  *SettingsHandler
	Health    *HealthHandler
}

// NewRouter mounts all routes. Everything under /api/v1 except the
// auth endpoints sits behind the bearer-token middleware.
func NewRouter(h Handlers, tokens *auth.TokenManager, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware)
	router.Use(response.LoggingMiddleware(log))

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(tokens))

	protected.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)

	protected.HandleFunc("/customers", h.Customer.Create).Methods(http.MethodPost)
	protected.HandleFunc("/customers", h.Customer.List).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id}", h.Customer.Get).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id}", h.Customer.Update).Methods(http.MethodPut)
	protected.HandleFunc("/customers/{id}", h.Customer.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/equipment", h.Equipment.Create).Methods(http.MethodPost)
	protected.HandleFunc("/equipment", h.Equipment.List).Methods(http.MethodGet)
	protected.HandleFunc("/equipment/{id}", h.Equipment.Get).Methods(http.MethodGet)
	protected.HandleFunc("/equipment/{id}", h.Equipment.Update).Methods(http.MethodPut)
	protected.HandleFunc("/equipment/{id}", h.Equipment.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/rentals", h.Rental.Open).Methods(http.MethodPost)
	protected.HandleFunc("/rentals", h.Rental.List).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}", h.Rental.Get).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}/close", h.Rental.Close).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/cancel", h.Rental.Cancel).Methods(http.MethodPost)

	protected.HandleFunc("/payments", h.Payment.Record).Methods(http.MethodPost)
	protected.HandleFunc("/payments", h.Payment.List).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{id}", h.Payment.Get).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{id}", h.Payment.Update).Methods(http.MethodPut)
	protected.HandleFunc("/payments/{id}", h.Payment.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/alerts", h.Alert.List).Methods(http.MethodGet)
	protected.HandleFunc("/alerts/{id}", h.Alert.Get).Methods(http.MethodGet)
	protected.HandleFunc("/alerts/{id}/status", h.Alert.UpdateStatus).Methods(http.MethodPatch)

	protected.HandleFunc("/dashboard/stats", h.Dashboard.Stats).Methods(http.MethodGet)

	protected.HandleFunc("/search", h.Search.Search).Methods(http.MethodGet)
	protected.HandleFunc("/search/suggestions", h.Search.Suggestions).Methods(http.MethodGet)

	protected.HandleFunc("/settings/profile", h.Settings.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/settings/profile", h.Settings.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/settings/password", h.Settings.ChangePassword).Methods(http.MethodPut)

	return router
}
