package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 동일 입력은 항상 바이트 단위로 동일한 출력을 내야 함
func TestBuildPrompt_Deterministic(t *testing.T) {
	cfg := GenerationConfig{
		Style: "Film Noir",
		Photographic: &Photographic{
			Lighting:     "Golden Hour",
			DepthOfField: "Shallow Focus",
		},
		CharacterNames:      []string{"Mina", "Rex"},
		ConsistencyStrength: ConsistencyHigh,
		EnhancePhysics:      true,
		CameraDescription:   "=== MANDATORY CAMERA SETUP ===\nCamera: 50mm Standard Lens, Medium Shot\n==============================",
	}

	first := BuildPrompt(cfg, "A rainy alley chase at night.")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BuildPrompt(cfg, "A rainy alley chase at night."))
	}
}

// 섹션 순서: 카메라 → 스케치 → 스타일 → 포토그래픽 → 씬 → 캐릭터 → 물리 → 유지 강도
func TestBuildPrompt_SectionOrder(t *testing.T) {
	cfg := GenerationConfig{
		CameraDescription:   "=== MANDATORY CAMERA SETUP ===",
		SketchImage:         &InputImage{Data: "c2tldGNo", MimeType: "image/png"},
		Style:               "Watercolor",
		Photographic:        &Photographic{Lighting: "Soft Window Light"},
		CharacterNames:      []string{"Mina"},
		EnhancePhysics:      true,
		ConsistencyStrength: ConsistencyMedium,
	}

	prompt := BuildPrompt(cfg, "Mina pours tea in a sunlit kitchen.")

	markers := []string{
		"=== MANDATORY CAMERA SETUP ===",
		"STRUCTURAL SKETCH GUIDE",
		"Art style: Watercolor.",
		"Lighting: Soft Window Light.",
		"Mina pours tea in a sunlit kitchen.",
		"Featured characters: Mina.",
		"Do NOT copy the pose",
		"PHYSICS REALISM",
		"Character consistency: MEDIUM",
	}

	lastIdx := -1
	for _, marker := range markers {
		idx := strings.Index(prompt, marker)
		require.GreaterOrEqual(t, idx, 0, "marker %q missing from prompt", marker)
		assert.Greater(t, idx, lastIdx, "marker %q out of order", marker)
		lastIdx = idx
	}
}

// "None" 센티널과 미설정 옵션은 어떤 줄도 만들지 않아야 함
func TestBuildPrompt_OmissionRule(t *testing.T) {
	cfg := GenerationConfig{
		Style: OptionNone,
		// photographic, characters, consistency 전부 미설정
	}

	prompt := BuildPrompt(cfg, "A quiet mountain lake at dawn.")

	// 씬 텍스트 섹션만 남아야 함
	assert.Equal(t, "A quiet mountain lake at dawn.", prompt)
}

func TestBuildPrompt_PlainPerspectiveLineWhenNoCameraBlock(t *testing.T) {
	cfg := GenerationConfig{
		SketchPerspective: "three-quarter view from slightly above",
	}

	prompt := BuildPrompt(cfg, "A cat on a bookshelf.")

	assert.Contains(t, prompt, "Camera perspective: three-quarter view from slightly above.")
	assert.NotContains(t, prompt, "MANDATORY CAMERA SETUP")
}

func TestBuildPrompt_CameraBlockSupersedesPerspectiveLine(t *testing.T) {
	cfg := GenerationConfig{
		CameraDescription: "=== MANDATORY CAMERA SETUP ===\nCamera: 24mm Wide Angle, Close-Up",
		SketchPerspective: "bird's eye",
	}

	prompt := BuildPrompt(cfg, "A market square.")

	assert.Contains(t, prompt, "MANDATORY CAMERA SETUP")
	assert.NotContains(t, prompt, "Camera perspective: bird's eye")
}

func TestBuildPrompt_PhotographicFieldsIndependent(t *testing.T) {
	cfg := GenerationConfig{
		Photographic: &Photographic{
			Lighting:     "Neon Glow",
			LensType:     OptionNone,
			DepthOfField: "",
		},
	}

	prompt := BuildPrompt(cfg, "scene")

	assert.Contains(t, prompt, "Lighting: Neon Glow.")
	assert.NotContains(t, prompt, "Lens:")
	assert.NotContains(t, prompt, "Depth of field:")
}

func TestBuildPrompt_MultipleCharactersAddDistinctness(t *testing.T) {
	single := BuildPrompt(GenerationConfig{CharacterNames: []string{"Mina"}}, "scene")
	double := BuildPrompt(GenerationConfig{CharacterNames: []string{"Mina", "Rex"}}, "scene")

	assert.NotContains(t, single, "visually distinct")
	assert.Contains(t, double, "Featured characters: Mina, Rex.")
	assert.Contains(t, double, "visually distinct")
}

func TestBuildPrompt_ConsistencyTexts(t *testing.T) {
	tests := []struct {
		strength ConsistencyStrength
		want     string
	}{
		{ConsistencyLow, "Character consistency: LOW"},
		{ConsistencyMedium, "Character consistency: MEDIUM"},
		{ConsistencyHigh, "Character consistency: HIGH"},
	}

	for _, tt := range tests {
		t.Run(string(tt.strength), func(t *testing.T) {
			prompt := BuildPrompt(GenerationConfig{ConsistencyStrength: tt.strength}, "scene")
			assert.Contains(t, prompt, tt.want)
		})
	}

	// 미설정이면 생략
	assert.NotContains(t, BuildPrompt(GenerationConfig{}, "scene"), "Character consistency")
}

// 파트 순서: 스케치 → 레퍼런스(공급 순서) → 텍스트 마지막
func TestBuildParts_Ordering(t *testing.T) {
	cfg := GenerationConfig{
		SketchImage: &InputImage{Data: "c2tldGNo", MimeType: "image/png"},
	}
	refs := []InputImage{
		{Data: "cmVmMQ==", MimeType: "image/jpeg"},
		{Data: "cmVmMg==", MimeType: "image/png"},
	}

	parts := BuildParts(cfg, refs, "final prompt")

	require.Len(t, parts, 4)
	require.NotNil(t, parts[0].Image)
	assert.Equal(t, "c2tldGNo", parts[0].Image.Data)
	require.NotNil(t, parts[1].Image)
	assert.Equal(t, "cmVmMQ==", parts[1].Image.Data)
	require.NotNil(t, parts[2].Image)
	assert.Equal(t, "cmVmMg==", parts[2].Image.Data)
	assert.Equal(t, "final prompt", parts[3].Text)
	assert.Nil(t, parts[3].Image)
}

func TestBuildParts_NoSketch(t *testing.T) {
	parts := BuildParts(GenerationConfig{}, nil, "prompt only")

	require.Len(t, parts, 1)
	assert.Equal(t, "prompt only", parts[0].Text)
}

func TestNormalizeAspectRatio(t *testing.T) {
	assert.Equal(t, "16:9", NormalizeAspectRatio("16:9"))
	assert.Equal(t, "21:9", NormalizeAspectRatio("21:9"))
	assert.Equal(t, "1:1", NormalizeAspectRatio(""))
	assert.Equal(t, "1:1", NormalizeAspectRatio("7:5"))
}

func TestNormalizeResolution_ProOnly(t *testing.T) {
	assert.Equal(t, "4K", NormalizeResolution(TierPro, "4K"))
	assert.Equal(t, "", NormalizeResolution(TierPro, "8K"))
	// flash 등급에서는 해상도 지정이 무의미
	assert.Equal(t, "", NormalizeResolution(TierFlash, "4K"))
}
