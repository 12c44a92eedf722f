package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/service"
)

type SpaceHandler struct {
	spaces service.SpaceService
}

func NewSpaceHandler(spaces service.SpaceService) *SpaceHandler {
	return &SpaceHandler{spaces: spaces}
}

func (h *SpaceHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.spaces.ListZones(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, zones)
}

func (h *SpaceHandler) ListSpacesByZone(w http.ResponseWriter, r *http.Request) {
	zoneID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	spaces, err := h.spaces.ListSpacesByZone(r.Context(), zoneID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spaces)
}

// GetSpace resolves a space by id, or by number when the request carries a
// number query parameter instead (the scan-a-sign flow).
func (h *SpaceHandler) GetSpace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	space, err := h.spaces.GetSpace(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, space)
}

func (h *SpaceHandler) FindSpace(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	space, err := h.spaces.FindSpaceByNumber(r.Context(), number)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, space)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, domain.ErrInvalidRequest
	}
	return int32(v), nil
}
