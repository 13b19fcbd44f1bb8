package history

import (
	"encoding/json"
	"log"
	"net/http"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList - GET /api/history?session=...
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		json.NewEncoder(w).Encode(ListResponse{
			Success:      false,
			ErrorMessage: "session parameter is required",
		})
		return
	}

	assets, err := h.service.List(r.Context(), sessionID)
	if err != nil {
		log.Printf("❌ [History] List failed: %v", err)
		json.NewEncoder(w).Encode(ListResponse{
			Success:      false,
			ErrorMessage: "Failed to load history",
		})
		return
	}

	json.NewEncoder(w).Encode(ListResponse{
		Success: true,
		Assets:  assets,
	})
}

// HandleClear - DELETE /api/history?session=...
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		json.NewEncoder(w).Encode(ClearResponse{
			Success:      false,
			ErrorMessage: "session parameter is required",
		})
		return
	}

	if err := h.service.Clear(r.Context(), sessionID); err != nil {
		log.Printf("❌ [History] Clear failed: %v", err)
		json.NewEncoder(w).Encode(ClearResponse{
			Success:      false,
			ErrorMessage: "Failed to clear history",
		})
		return
	}

	json.NewEncoder(w).Encode(ClearResponse{Success: true})
}
