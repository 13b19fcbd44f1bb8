package compose

import (
	"fmt"
	"strings"
)

// 캐릭터 레퍼런스의 포즈와 출력 포즈를 분리하는 고정 지시문
const poseDecouplingInstruction = `The attached reference images define each character's IDENTITY only (face, hair, outfit, colors).
Do NOT copy the pose, head angle, expression or camera distance from the reference images.
Re-pose each character naturally so they fit this scene.`

// 캐릭터가 2명 이상일 때 추가되는 구분 지시문
const distinctnessInstruction = `Keep every character visually distinct - never blend or merge features between characters.`

// 물리 사실성 강화 지시문
const physicsInstruction = `PHYSICS REALISM: render accurate tension, grip and contact wherever bodies and objects interact.
Weight, balance and gravity must look physically believable.`

// 스케치 구도 가이드 지시문
const sketchGuideInstruction = `STRUCTURAL SKETCH GUIDE: the first attached image is a rough sketch.
Treat it as a STRICT composition guide - preserve the placement, scale and pose of every element drawn in it.
Do not reproduce the sketch's drawing style; render the final image fully.`

// 유지 강도 3단계 고정 문구
var consistencyTexts = map[ConsistencyStrength]string{
	ConsistencyLow:    "Character consistency: LOW - a loose resemblance to the reference characters is acceptable.",
	ConsistencyMedium: "Character consistency: MEDIUM - keep the recognizable facial features and hairstyle of each reference character.",
	ConsistencyHigh:   "Character consistency: HIGH - faces, hairstyles and signature outfits must match the reference characters exactly.",
}

// BuildPrompt - 설정과 씬 텍스트를 고정 순서로 조립하는 순수 함수
// 같은 입력이면 항상 바이트 단위로 같은 출력 (회귀 테스트 전제)
// 미설정 또는 "None"인 옵션은 섹션 자체를 출력하지 않음
func BuildPrompt(cfg GenerationConfig, sceneText string) string {
	var sections []string

	// (1) 강제 카메라 블록, 없으면 단순 시점 한 줄
	if cfg.CameraDescription != "" {
		sections = append(sections, cfg.CameraDescription)
	} else if isSet(cfg.SketchPerspective) {
		sections = append(sections, fmt.Sprintf("Camera perspective: %s.", cfg.SketchPerspective))
	}

	// (2) 스케치 구도 가이드 (스케치 이미지가 첨부된 경우에만)
	if cfg.SketchImage != nil {
		sections = append(sections, sketchGuideInstruction)
	}

	// (3) 스타일
	if isSet(cfg.Style) {
		sections = append(sections, fmt.Sprintf("Art style: %s.", cfg.Style))
	}

	// (4) 포토그래픽 3종 - 각 항목 독립 출력
	if cfg.Photographic != nil {
		if isSet(cfg.Photographic.Lighting) {
			sections = append(sections, fmt.Sprintf("Lighting: %s.", cfg.Photographic.Lighting))
		}
		if isSet(cfg.Photographic.LensType) {
			sections = append(sections, fmt.Sprintf("Lens: %s.", cfg.Photographic.LensType))
		}
		if isSet(cfg.Photographic.DepthOfField) {
			sections = append(sections, fmt.Sprintf("Depth of field: %s.", cfg.Photographic.DepthOfField))
		}
	}

	// (5) 씬/지시 텍스트 원문 그대로
	sections = append(sections, sceneText)

	// (6) 캐릭터 등장 + 포즈 분리 지시
	if len(cfg.CharacterNames) > 0 {
		sections = append(sections,
			fmt.Sprintf("Featured characters: %s.", strings.Join(cfg.CharacterNames, ", ")))
		sections = append(sections, poseDecouplingInstruction)
		if len(cfg.CharacterNames) > 1 {
			sections = append(sections, distinctnessInstruction)
		}
	}

	// (7) 물리 사실성 강화
	if cfg.EnhancePhysics {
		sections = append(sections, physicsInstruction)
	}

	// (8) 유지 강도 - Low/Medium/High 고정 문구, 미설정이면 생략
	if text, ok := consistencyTexts[cfg.ConsistencyStrength]; ok {
		sections = append(sections, text)
	}

	return strings.Join(sections, "\n\n")
}

// BuildParts - 요청 파트 순서 조립: 스케치 → 레퍼런스(공급 순서) → 텍스트
func BuildParts(cfg GenerationConfig, references []InputImage, prompt string) []Part {
	var parts []Part

	if cfg.SketchImage != nil {
		sketch := *cfg.SketchImage
		parts = append(parts, Part{Image: &sketch})
	}

	for _, ref := range references {
		refCopy := ref
		parts = append(parts, Part{Image: &refCopy})
	}

	parts = append(parts, Part{Text: prompt})
	return parts
}

// isSet - 빈 값과 "None" 센티널을 미설정으로 취급
func isSet(value string) bool {
	return value != "" && value != OptionNone
}
