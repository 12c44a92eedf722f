package http

import (
	"net/http"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/service"
)

type VehicleHandler struct {
	vehicles service.VehicleService
}

func NewVehicleHandler(vehicles service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type addVehicleRequest struct {
	RegistrationPlate string `json:"registration_plate"`
	Model             string `json:"model"`
	Color             string `json:"color"`
}

func (h *VehicleHandler) Add(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())

	var req addVehicleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vehicle := &domain.Vehicle{
		PayerID:           payerID,
		RegistrationPlate: req.RegistrationPlate,
		Model:             req.Model,
		Color:             req.Color,
	}
	if err := h.vehicles.AddVehicle(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())

	vehicles, err := h.vehicles.ListVehicles(r.Context(), payerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}
