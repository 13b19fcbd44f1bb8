package history

import "time"

// AssetType - 생성물 분류 태그
type AssetType string

const (
	AssetTypeCharacter AssetType = "character"
	AssetTypeScene     AssetType = "scene"
)

// GeneratedAsset - 생성된 이미지 1건의 기록
// 생성 직후 만들어지고 이후 절대 변경되지 않음 (히스토리 전체 삭제로만 제거)
type GeneratedAsset struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`       // 표시용 URL (Storage 업로드 성공 시) 또는 data URI
	ImageData string    `json:"imageData"` // base64 원본 페이로드 - 후속 편집용으로 보존
	MimeType  string    `json:"mimeType"`
	Prompt    string    `json:"prompt"` // 이 이미지를 만든 최종 프롬프트
	Type      AssetType `json:"type"`   // character | scene
	CreatedAt time.Time `json:"createdAt"`
}

// ListResponse - GET /api/history 응답
type ListResponse struct {
	Success      bool             `json:"success"`
	Assets       []GeneratedAsset `json:"assets"`
	ErrorMessage string           `json:"errorMessage,omitempty"`
}

// ClearResponse - DELETE /api/history 응답
type ClearResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}
