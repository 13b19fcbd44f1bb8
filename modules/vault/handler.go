package vault

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleList - GET /api/vault?session=...
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
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

	chars, err := h.service.List(r.Context(), sessionID)
	if err != nil {
		log.Printf("❌ [Vault] List failed: %v", err)
		json.NewEncoder(w).Encode(ListResponse{
			Success:      false,
			ErrorMessage: "Failed to load vault",
		})
		return
	}

	json.NewEncoder(w).Encode(ListResponse{
		Success:    true,
		Characters: chars,
	})
}

// HandleUpload - POST /api/vault
// 이미지 업로드로 캐릭터 등록
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Vault] Invalid upload request: %v", err)
		json.NewEncoder(w).Encode(CharacterResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
		})
		return
	}

	if req.SessionID == "" {
		json.NewEncoder(w).Encode(CharacterResponse{
			Success:      false,
			ErrorMessage: "sessionId is required",
		})
		return
	}

	char, err := h.service.Add(r.Context(), req.SessionID, req.Name, req.Image)
	if err != nil {
		log.Printf("❌ [Vault] Upload failed: %v", err)
		json.NewEncoder(w).Encode(CharacterResponse{
			Success:      false,
			ErrorMessage: err.Error(),
		})
		return
	}

	json.NewEncoder(w).Encode(CharacterResponse{
		Success:   true,
		Character: char,
	})
}

// HandlePromote - POST /api/vault/promote
// 히스토리 생성물을 캐릭터로 승격
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Vault] Invalid promote request: %v", err)
		json.NewEncoder(w).Encode(CharacterResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
		})
		return
	}

	if req.SessionID == "" || req.AssetID == "" {
		json.NewEncoder(w).Encode(CharacterResponse{
			Success:      false,
			ErrorMessage: "sessionId and assetId are required",
		})
		return
	}

	char, err := h.service.Promote(r.Context(), req.SessionID, req.AssetID, req.Name)
	if err != nil {
		log.Printf("❌ [Vault] Promote failed: %v", err)
		json.NewEncoder(w).Encode(CharacterResponse{
			Success:      false,
			ErrorMessage: err.Error(),
		})
		return
	}

	json.NewEncoder(w).Encode(CharacterResponse{
		Success:   true,
		Character: char,
	})
}

// HandleDelete - DELETE /api/vault/{id}?session=...
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	characterID := mux.Vars(r)["id"]
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" || characterID == "" {
		json.NewEncoder(w).Encode(DeleteResponse{
			Success:      false,
			ErrorMessage: "session and character id are required",
		})
		return
	}

	if err := h.service.Delete(r.Context(), sessionID, characterID); err != nil {
		log.Printf("❌ [Vault] Delete failed: %v", err)
		json.NewEncoder(w).Encode(DeleteResponse{
			Success:      false,
			ErrorMessage: err.Error(),
		})
		return
	}

	json.NewEncoder(w).Encode(DeleteResponse{Success: true})
}
