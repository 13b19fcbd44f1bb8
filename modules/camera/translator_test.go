package camera

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 같은 거리면 방향과 무관하게 같은 렌즈/샷 구간이 나와야 함
func TestDescribe_SameDistanceSameLensBand(t *testing.T) {
	const dist = 30.0

	var lenses []string
	for deg := 0.0; deg < 360; deg += 30 {
		rad := deg * math.Pi / 180
		state := CameraState{
			X:      50 + dist*math.Cos(rad),
			Y:      50 + dist*math.Sin(rad),
			Height: 50,
		}
		desc := Describe(state)
		lenses = append(lenses, desc.LensType)
	}

	require.NotEmpty(t, lenses)
	for _, lens := range lenses {
		assert.Equal(t, "50mm Standard Lens", lens)
	}
}

func TestDescribe_LensBandThresholds(t *testing.T) {
	tests := []struct {
		name     string
		dist     float64
		wantLens string
		wantShot string
	}{
		{"macro range", 5, "Ultra-Wide Macro Lens (14mm)", "Extreme Close-Up"},
		{"wide angle", 20, "24mm Wide Angle", "Close-Up"},
		{"standard", 40, "50mm Standard Lens", "Medium Shot"},
		{"boundary 45 falls into telephoto band", 45, "85mm Portrait Telephoto", "Full Body Shot"},
		{"portrait telephoto", 60, "85mm Portrait Telephoto", "Full Body Shot"},
		{"long telephoto", 70, "200mm Long Telephoto", "Wide Establishing Shot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 피사체 바로 아래(정면)에 거리만 바꿔 배치
			desc := Describe(CameraState{X: 50, Y: 50 + tt.dist, Height: 50})
			assert.Equal(t, tt.wantLens, desc.LensType)
			assert.Equal(t, tt.wantShot, desc.ShotType)
		})
	}
}

// 방위각 분류는 4개 라벨로 완전 분할되어야 함 (중심 제외)
func TestClassifyAzimuth_ExhaustivePartition(t *testing.T) {
	valid := map[string]bool{
		"Front View":         true,
		"Right Side Profile": true,
		"Back View":          true,
		"Left Side Profile":  true,
	}

	for x := 0.0; x <= 100; x += 10 {
		for y := 0.0; y <= 100; y += 10 {
			if x == 50 && y == 50 {
				continue
			}
			label := classifyAzimuth(x-50, y-50)
			assert.True(t, valid[label], "unexpected label %q at (%v,%v)", label, x, y)
		}
	}
}

func TestClassifyAzimuth_Quadrants(t *testing.T) {
	tests := []struct {
		name string
		dx   float64
		dy   float64
		want string
	}{
		{"camera below subject is front", 0, 45, "Front View"},
		{"camera right of subject", 45, 0, "Right Side Profile"},
		{"camera above subject is back", 0, -45, "Back View"},
		{"camera left of subject", -45, 0, "Left Side Profile"},
		// 경계각은 다음 시계방향 라벨에 귀속 (반개구간 규약)
		{"boundary exactly 45deg", 10, 10, "Front View"},
		{"boundary exactly 135deg", -10, 10, "Left Side Profile"},
		{"boundary exactly -45deg", 10, -10, "Right Side Profile"},
		{"boundary exactly -135deg", -10, -10, "Back View"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyAzimuth(tt.dx, tt.dy))
		})
	}
}

// 경계각 판정은 호출 때마다 동일해야 함 (재현성)
func TestClassifyAzimuth_BoundaryReproducible(t *testing.T) {
	first := classifyAzimuth(10, 10)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, classifyAzimuth(10, 10))
	}
}

func TestClassifyElevation_Bands(t *testing.T) {
	tests := []struct {
		height float64
		want   string
	}{
		{0, "Worm's-Eye View"},
		{14, "Worm's-Eye View"},
		{15, "Low Angle"},
		{39, "Low Angle"},
		{50, "Eye Level"},
		{60, "High Angle"},
		{84, "High Angle"},
		{85, "Top-Down Overhead"},
		{100, "Top-Down Overhead"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("height_%v", tt.height), func(t *testing.T) {
			desc := Describe(CameraState{X: 50, Y: 80, Height: tt.height})
			assert.Equal(t, tt.want, desc.VerticalAngle)
			assert.NotEmpty(t, desc.VisualAnchor)
			assert.NotEmpty(t, desc.VerticalNote)
		})
	}
}

// 구도 판정은 360° 랩어라운드에 대칭이어야 함: 350° 차이 == 10° 차이
func TestClassifyComposition_WraparoundSymmetry(t *testing.T) {
	// 카메라 (50,95): 피사체 정조준 회전은 0°
	base := CameraState{X: 50, Y: 95, Height: 50}

	tests := []struct {
		rotation float64
		want     string
	}{
		{0, CompositionCentered},
		{10, CompositionCentered},
		{350, CompositionCentered}, // 350° == -10°
		{-10, CompositionCentered},
		{30, CompositionThirds},
		{330, CompositionThirds}, // 330° == -30°
		{36, CompositionEdge},
		{180, CompositionEdge},
		{720, CompositionCentered}, // 저장값이 범위를 넘어도 비교 시 정규화
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("rotation_%v", tt.rotation), func(t *testing.T) {
			state := base
			state.Rotation = tt.rotation
			assert.Equal(t, tt.want, Describe(state).Composition)
		})
	}
}

// 명세 시나리오: (50,95) h=50 rot=0 → 85mm 경계 / 정면 / 눈높이 / 중앙 구도
func TestDescribe_ConcreteScenario(t *testing.T) {
	desc := Describe(CameraState{X: 50, Y: 95, Height: 50, Rotation: 0})

	assert.Equal(t, "85mm Portrait Telephoto", desc.LensType)
	assert.Equal(t, "Front View", desc.PositionLabel)
	assert.Equal(t, "Eye Level", desc.VerticalAngle)
	assert.Equal(t, CompositionCentered, desc.Composition)
}

func TestDescribe_ClampsOutOfRangeInput(t *testing.T) {
	desc := Describe(CameraState{X: -20, Y: 300, Height: 150, Rotation: 0})

	// x→0, y→100 으로 클램프: 거리 ~70.7 → 장망원 구간
	assert.Equal(t, "200mm Long Telephoto", desc.LensType)
	// height→100 으로 클램프
	assert.Equal(t, "Top-Down Overhead", desc.VerticalAngle)
	assert.Equal(t, 100.0, desc.Elevation)
}

func TestDescribe_PromptBlockContents(t *testing.T) {
	desc := Describe(CameraState{X: 50, Y: 95, Height: 50, Rotation: 0})

	require.NotEmpty(t, desc.PromptBlock)
	assert.Contains(t, desc.PromptBlock, "=== MANDATORY CAMERA SETUP ===")
	assert.Contains(t, desc.PromptBlock, "85mm Portrait Telephoto")
	assert.Contains(t, desc.PromptBlock, "Front View of the subject")
	assert.Contains(t, desc.PromptBlock, "approx. 50% elevation")
	assert.Contains(t, desc.PromptBlock, "OVERRIDES any conflicting camera description")
}

// 동일 입력은 항상 동일 출력 (순수 함수)
func TestDescribe_Deterministic(t *testing.T) {
	state := CameraState{X: 33, Y: 71, Height: 20, Rotation: 123}

	first := Describe(state)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Describe(state))
	}
}
