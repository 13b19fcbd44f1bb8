package vault

import "time"

// Character - 금고에 저장된 이름 있는 레퍼런스 캐릭터
// 업로드 또는 히스토리 승격으로 생성되고, 개별 삭제 외에는 불변
type Character struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageData string    `json:"imageData"` // base64 인코딩된 레퍼런스 이미지
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadRequest - POST /api/vault 요청 (파일 업로드 경계: data URI 수용)
type UploadRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
	Image     string `json:"image"` // data URI 또는 맨 base64
}

// PromoteRequest - POST /api/vault/promote 요청 (히스토리 생성물을 금고로 승격)
type PromoteRequest struct {
	SessionID string `json:"sessionId"`
	AssetID   string `json:"assetId"`
	Name      string `json:"name"`
}

// CharacterResponse - 캐릭터 1건 응답
type CharacterResponse struct {
	Success      bool       `json:"success"`
	Character    *Character `json:"character,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
}

// ListResponse - GET /api/vault 응답
type ListResponse struct {
	Success      bool        `json:"success"`
	Characters   []Character `json:"characters"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
}

// DeleteResponse - DELETE /api/vault/{id} 응답
type DeleteResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}
