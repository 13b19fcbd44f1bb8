package generate

import (
	"cinebanana-studio-server/modules/compose"
	"cinebanana-studio-server/modules/history"
)

// GenerateRequest - 이미지 생성 요청
type GenerateRequest struct {
	SessionID    string                   `json:"sessionId"`
	SceneText    string                   `json:"sceneText"`
	Config       compose.GenerationConfig `json:"config"`
	CharacterIDs []string                 `json:"characterIds,omitempty"` // 금고 캐릭터를 레퍼런스로 첨부 (지정 순서 유지)
	References   []compose.InputImage     `json:"references,omitempty"`   // 수동 업로드 레퍼런스 (캐릭터 뒤에 붙음)
	Type         history.AssetType        `json:"type,omitempty"`         // character | scene (기본 scene)
}

// EditRequest - 기존 생성물 기반 편집 요청
// 히스토리에 보존된 원본 페이로드를 첫 레퍼런스로 붙여 후속 편집을 수행
type EditRequest struct {
	SessionID   string                   `json:"sessionId"`
	AssetID     string                   `json:"assetId"`
	Instruction string                   `json:"instruction"`
	Config      compose.GenerationConfig `json:"config"`
}

// GenerateResponse - 생성/편집 응답
type GenerateResponse struct {
	Success      bool                    `json:"success"`
	Asset        *history.GeneratedAsset `json:"asset,omitempty"`
	ErrorMessage string                  `json:"errorMessage,omitempty"`
	ErrorCode    string                  `json:"errorCode,omitempty"`
}

// 에러 코드 - SPA가 복구 동작을 분기하는 기준
const (
	ErrorCodeBusy             = "BUSY"              // 같은 세션의 생성이 진행 중
	ErrorCodePermissionDenied = "PERMISSION_DENIED" // API 키 재선택 유도
	ErrorCodeGeneration       = "GENERATION_FAILED" // 일반 생성 실패
)
