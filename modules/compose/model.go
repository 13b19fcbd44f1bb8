package compose

// OptionNone - 선택 옵션의 센티널 값 ("None"이면 해당 섹션 미출력)
const OptionNone = "None"

// ModelTier - 사용할 이미지 모델 등급
type ModelTier string

const (
	TierFlash ModelTier = "flash"
	TierPro   ModelTier = "pro"
)

// ConsistencyStrength - 레퍼런스 캐릭터 유지 강도 (3단계)
type ConsistencyStrength string

const (
	ConsistencyLow    ConsistencyStrength = "Low"
	ConsistencyMedium ConsistencyStrength = "Medium"
	ConsistencyHigh   ConsistencyStrength = "High"
)

// Photographic - 조명/렌즈/피사계심도 3종 세트 (각각 독립적으로 선택)
type Photographic struct {
	Lighting     string `json:"lighting,omitempty"`
	LensType     string `json:"lensType,omitempty"`
	DepthOfField string `json:"depthOfField,omitempty"`
}

// InputImage - 요청에 첨부되는 인라인 이미지
type InputImage struct {
	Data     string `json:"data"`     // base64 인코딩된 이미지 데이터
	MimeType string `json:"mimeType"` // image/jpeg, image/png 등
}

// GenerationConfig - 요청 1건의 생성 옵션 (모두 선택적)
type GenerationConfig struct {
	AspectRatio         string              `json:"aspectRatio,omitempty"` // 고정 비율 집합 중 하나
	ModelTier           ModelTier           `json:"modelTier,omitempty"`   // flash | pro
	Resolution          string              `json:"resolution,omitempty"`  // 1K/2K/4K - pro 전용
	UseGrounding        bool                `json:"useGrounding,omitempty"`
	Style               string              `json:"style,omitempty"`
	Photographic        *Photographic       `json:"photographic,omitempty"`
	ConsistencyStrength ConsistencyStrength `json:"consistencyStrength,omitempty"`
	CharacterNames      []string            `json:"characterNames,omitempty"`
	EnhancePhysics      bool                `json:"enhancePhysics,omitempty"`
	SketchImage         *InputImage         `json:"sketchImage,omitempty"`
	SketchPerspective   string              `json:"sketchPerspective,omitempty"`
	CameraDescription   string              `json:"cameraDescription,omitempty"` // camera 모듈의 강제 지시 블록
}

// Part - 생성 API에 보내는 파트 (이미지 또는 텍스트)
// genai 의존 없이 순수 데이터로 유지해서 합성 로직을 단위 테스트 가능하게 함
type Part struct {
	Text  string      `json:"text,omitempty"`
	Image *InputImage `json:"image,omitempty"`
}

// PreviewRequest - POST /api/compose/preview 요청
type PreviewRequest struct {
	Config    GenerationConfig `json:"config"`
	SceneText string           `json:"sceneText"`
}

// PreviewResponse - POST /api/compose/preview 응답
type PreviewResponse struct {
	Success      bool   `json:"success"`
	Prompt       string `json:"prompt,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// 지원하는 종횡비 집합 (고정)
var validAspectRatios = map[string]bool{
	"1:1":  true,
	"16:9": true,
	"9:16": true,
	"4:3":  true,
	"3:4":  true,
	"21:9": true,
}

// NormalizeAspectRatio - 허용된 비율이면 그대로, 아니면 기본값 1:1
func NormalizeAspectRatio(ratio string) string {
	if validAspectRatios[ratio] {
		return ratio
	}
	return "1:1"
}

// 지원하는 해상도 집합 (pro 전용)
var validResolutions = map[string]bool{
	"1K": true,
	"2K": true,
	"4K": true,
}

// NormalizeResolution - pro 등급에서만 의미 있음, 허용 외 값은 빈 문자열
func NormalizeResolution(tier ModelTier, resolution string) string {
	if tier != TierPro {
		return ""
	}
	if validResolutions[resolution] {
		return resolution
	}
	return ""
}
