package generate

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"cinebanana-studio-server/modules/common/gemini"
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
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleGenerate - POST /api/generate
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Generate] Invalid request: %v", err)
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
		})
		return
	}

	if req.SessionID == "" {
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "sessionId is required",
		})
		return
	}
	if strings.TrimSpace(req.SceneText) == "" {
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "sceneText is required",
		})
		return
	}

	asset, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(GenerateResponse{
		Success: true,
		Asset:   asset,
	})
}

// HandleEdit - POST /api/edit
// 히스토리 생성물의 보존된 페이로드를 원본으로 후속 편집
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Generate] Invalid edit request: %v", err)
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
		})
		return
	}

	if req.SessionID == "" || req.AssetID == "" {
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "sessionId and assetId are required",
		})
		return
	}
	if strings.TrimSpace(req.Instruction) == "" {
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "instruction is required",
		})
		return
	}

	asset, err := h.service.Edit(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(GenerateResponse{
		Success: true,
		Asset:   asset,
	})
}

// writeError - 에러 분류에 따라 복구 코드를 붙여 응답
// 자동 재시도는 하지 않음 - 모든 실패는 사용자의 명시적 재시도를 기다림
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBusy):
		log.Printf("⏳ [Generate] Rejected: %v", err)
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "A generation is already in progress for this session",
			ErrorCode:    ErrorCodeBusy,
		})
	case errors.Is(err, gemini.ErrPermissionDenied):
		log.Printf("🚫 [Generate] Permission denied: %v", err)
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: "Gemini rejected the API key. Please re-select your credentials.",
			ErrorCode:    ErrorCodePermissionDenied,
		})
	default:
		log.Printf("❌ [Generate] Failed: %v", err)
		json.NewEncoder(w).Encode(GenerateResponse{
			Success:      false,
			ErrorMessage: err.Error(),
			ErrorCode:    ErrorCodeGeneration,
		})
	}
}
