package http

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/service"
)

type ReservationHandler struct {
	reservations service.ReservationService
}

func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type reserveRequest struct {
	SpaceID         int32 `json:"space_id"`
	VehicleID       int32 `json:"vehicle_id"`
	DurationMinutes int32 `json:"duration_minutes"`
}

func (h *ReservationHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())

	var req reserveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	duration, err := minutesToDuration(req.DurationMinutes)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.reservations.Reserve(r.Context(), payerID, req.SpaceID, req.VehicleID, duration)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

type extendRequest struct {
	ExtraMinutes int32 `json:"extra_minutes"`
}

func (h *ReservationHandler) Extend(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())
	reservationID := mux.Vars(r)["id"]

	var req extendRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	extra, err := minutesToDuration(req.ExtraMinutes)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.reservations.Extend(r.Context(), payerID, reservationID, extra)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) End(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())
	reservationID := mux.Vars(r)["id"]

	if err := h.reservations.End(r.Context(), payerID, reservationID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())
	reservationID := mux.Vars(r)["id"]

	res, err := h.reservations.GetReservation(r.Context(), payerID, reservationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type reservationListResponse struct {
	Reservations []domain.Reservation `json:"reservations"`
	TotalCount   int32                `json:"total_count"`
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())
	page, pageSize := pagination(r)

	items, total, err := h.reservations.ListReservations(r.Context(), payerID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationListResponse{Reservations: items, TotalCount: total})
}

// minutesToDuration converts client-supplied minutes to a duration. The
// upper bound keeps the int64 multiplication from wrapping; anything near
// it is nonsense for a parking session anyway.
func minutesToDuration(minutes int32) (time.Duration, error) {
	if minutes <= 0 || int64(minutes) > math.MaxInt64/int64(time.Minute) {
		return 0, domain.ErrInvalidRequest
	}
	return time.Duration(minutes) * time.Minute, nil
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
