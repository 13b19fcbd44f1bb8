package compose

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// HandlePreview - POST /api/compose/preview
// SPA의 프롬프트 미리보기 패널용 - 실제 생성 없이 최종 프롬프트만 조립
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	// OPTIONS 요청 처리
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	// POST만 허용
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Request 파싱
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Compose] Invalid request: %v", err)
		json.NewEncoder(w).Encode(PreviewResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
		})
		return
	}

	// 요청 검증
	if strings.TrimSpace(req.SceneText) == "" {
		json.NewEncoder(w).Encode(PreviewResponse{
			Success:      false,
			ErrorMessage: "Scene text is required",
		})
		return
	}

	prompt := BuildPrompt(req.Config, req.SceneText)

	log.Printf("📝 [Compose] Preview built: %d chars, %d characters, style=%q",
		len(prompt), len(req.Config.CharacterNames), req.Config.Style)

	json.NewEncoder(w).Encode(PreviewResponse{
		Success: true,
		Prompt:  prompt,
	})
}
