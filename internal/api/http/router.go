// Package http exposes the JSON API consumed by the mobile client.
package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"totalpark-backend/internal/security"
	"totalpark-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth          service.AuthService
	Reservations  service.ReservationService
	Ledger        service.LedgerService
	Spaces        service.SpaceService
	Vehicles      service.VehicleService
	Notifications service.NotificationService
}

// NewRouter builds the full route table. Signup and login are public;
// everything else under /api/v1 requires a bearer token.
func NewRouter(svcs Services, tokens security.TokenManager, db *sql.DB) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", healthHandler(db)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	auth := NewAuthHandler(svcs.Auth)
	reservations := NewReservationHandler(svcs.Reservations)
	ledger := NewLedgerHandler(svcs.Ledger)
	spaces := NewSpaceHandler(svcs.Spaces)
	vehicles := NewVehicleHandler(svcs.Vehicles)
	notifications := NewNotificationHandler(svcs.Notifications)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/signup", auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tokens))

	protected.HandleFunc("/devices", auth.RegisterDevice).Methods(http.MethodPost)

	protected.HandleFunc("/reservations", reservations.Reserve).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", reservations.List).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}", reservations.Get).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}/extend", reservations.Extend).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{id}/end", reservations.End).Methods(http.MethodPost)

	protected.HandleFunc("/balance", ledger.GetBalance).Methods(http.MethodGet)
	protected.HandleFunc("/balance/deposits", ledger.Deposit).Methods(http.MethodPost)
	protected.HandleFunc("/payments", ledger.ListPayments).Methods(http.MethodGet)

	protected.HandleFunc("/zones", spaces.ListZones).Methods(http.MethodGet)
	protected.HandleFunc("/zones/{id}/spaces", spaces.ListSpacesByZone).Methods(http.MethodGet)
	protected.HandleFunc("/spaces", spaces.FindSpace).Methods(http.MethodGet).Queries("number", "{number}")
	protected.HandleFunc("/spaces/{id}", spaces.GetSpace).Methods(http.MethodGet)

	protected.HandleFunc("/vehicles", vehicles.Add).Methods(http.MethodPost)
	protected.HandleFunc("/vehicles", vehicles.List).Methods(http.MethodGet)

	protected.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}/read", notifications.MarkAsRead).Methods(http.MethodPost)

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unreachable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
