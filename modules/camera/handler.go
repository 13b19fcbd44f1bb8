package camera

import (
	"encoding/json"
	"log"
	"net/http"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// HandleDescribe - POST /api/camera/describe
// 카메라 위젯 상태를 샷 설명 블록으로 변환 (위젯이 움직일 때마다 호출됨)
func (h *Handler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
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
	var req DescribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Camera] Invalid request: %v", err)
		json.NewEncoder(w).Encode(DescribeResponse{
			Success:      false,
			ErrorMessage: "Invalid request format",
		})
		return
	}

	// 변환은 순수 함수 - 실패 케이스 없음
	desc := Describe(req.Camera)

	log.Printf("🎥 [Camera] Described: %s / %s / %s",
		desc.LensType, desc.PositionLabel, desc.VerticalAngle)

	json.NewEncoder(w).Encode(DescribeResponse{
		Success:     true,
		Description: &desc,
	})
}
