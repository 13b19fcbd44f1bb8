package camera

import (
	"fmt"
	"math"
	"strings"
)

// 피사체는 기준 프레임 정중앙에 고정
const (
	subjectX = 50.0
	subjectY = 50.0
	maxDist  = 100.0
)

// lensBand - 거리 구간별 렌즈/샷/물리 특성
type lensBand struct {
	maxDist float64
	lens    string
	shot    string
	physics string
}

// 거리 구간은 단조 증가 (마지막 구간이 나머지 전부를 받음)
var lensBands = []lensBand{
	{12, "Ultra-Wide Macro Lens (14mm)", "Extreme Close-Up",
		"Extreme barrel distortion: the nearest surface bulges toward the lens and straight lines bow outward."},
	{25, "24mm Wide Angle", "Close-Up",
		"Mild wide-angle distortion: foreground features look slightly larger than life and the background recedes quickly."},
	{45, "50mm Standard Lens", "Medium Shot",
		"Neutral perspective close to the human eye: no visible distortion or compression."},
	{65, "85mm Portrait Telephoto", "Full Body Shot",
		"Gentle telephoto compression: proportions flatten slightly and the background pulls closer to the subject."},
	{math.MaxFloat64, "200mm Long Telephoto", "Wide Establishing Shot",
		"Strong spatial compression: background planes stack up behind the subject and appear much closer than they really are."},
}

// elevationBand - 고도 구간별 수직 앵글/시각 앵커
type elevationBand struct {
	maxHeight float64
	angle     string
	note      string
	anchor    string
}

var elevationBands = []elevationBand{
	{15, "Worm's-Eye View", "camera sits at ground level pointing steeply upward",
		"The ground plane must dominate the immediate foreground and the subject must tower against sky or ceiling."},
	{40, "Low Angle", "camera below the subject's chest looking up",
		"The horizon line must sit low in the frame, near the subject's knees."},
	{60, "Eye Level", "camera level with the subject's eyes",
		"The horizon line must pass at the subject's eye height."},
	{85, "High Angle", "camera above the subject's head looking down",
		"Ground must be visible behind the subject and the horizon must sit near the top of the frame."},
	{math.MaxFloat64, "Top-Down Overhead", "camera directly above the subject pointing straight down",
		"The ground must fill the entire frame with no horizon or sky visible."},
}

// 구도 판정 라벨
const (
	CompositionCentered = "Subject Centered"
	CompositionThirds   = "Rule of Thirds (subject off-center)"
	CompositionEdge     = "Subject at Edge of Frame (camera looking past the subject)"
)

// Describe - 카메라 상태를 샷 설명으로 변환하는 순수 함수
// 입력은 먼저 클램프되므로 전 범위에서 항상 결과를 낸다 (에러 없음)
func Describe(state CameraState) Description {
	s := state.Clamp()

	dx := s.X - subjectX
	dy := s.Y - subjectY

	// 1. 거리 → 렌즈/샷 분류
	dist := math.Min(math.Hypot(dx, dy), maxDist)
	band := classifyLens(dist)

	// 2. 방위각 → 피사체 기준 어느 면을 보는지
	position := classifyAzimuth(dx, dy)

	// 3. 고도 → 수직 앵글
	elev := classifyElevation(s.Height)

	// 4. 회전 vs 이상 회전 → 구도 판정
	composition := classifyComposition(s.Rotation, dx, dy)

	desc := Description{
		LensType:      band.lens,
		ShotType:      band.shot,
		PhysicsNote:   band.physics,
		PositionLabel: position,
		VerticalAngle: elev.angle,
		VerticalNote:  elev.note,
		VisualAnchor:  elev.anchor,
		Composition:   composition,
		Elevation:     s.Height,
	}
	desc.PromptBlock = buildPromptBlock(desc)
	return desc
}

// classifyLens - 클램프된 거리를 5개 구간 중 하나로 분류
func classifyLens(dist float64) lensBand {
	for _, band := range lensBands {
		if dist < band.maxDist {
			return band
		}
	}
	return lensBands[len(lensBands)-1]
}

// classifyAzimuth - 피사체→카메라 벡터의 4상한 아크탄젠트로 면 분류
// 화면 좌표계는 y가 아래로 증가하므로 카메라가 프레임 하단에 있으면 정면
// 경계각(±45°, ±135°)은 항상 다음 시계방향 라벨에 귀속 (반개구간)
func classifyAzimuth(dx, dy float64) string {
	angle := math.Atan2(dy, dx) * 180 / math.Pi

	switch {
	case angle >= 45 && angle < 135:
		return "Front View"
	case angle >= -45 && angle < 45:
		return "Right Side Profile"
	case angle >= -135 && angle < -45:
		return "Back View"
	default:
		return "Left Side Profile"
	}
}

// classifyElevation - 고도 퍼센트를 5개 구간 중 하나로 분류
func classifyElevation(height float64) elevationBand {
	for _, band := range elevationBands {
		if height < band.maxHeight {
			return band
		}
	}
	return elevationBands[len(elevationBands)-1]
}

// classifyComposition - 실제 회전과 피사체를 정조준하는 이상 회전의 각도차로 구도 판정
// rotation 0°가 "프레임 상단 방향"이므로 아크탄젠트에 90° 오프셋이 붙는다
func classifyComposition(rotation, dx, dy float64) string {
	ideal := normalizeAngle(math.Atan2(dy, dx)*180/math.Pi - 90)
	actual := normalizeAngle(rotation)

	// 360° 랩어라운드 대칭: 350° 차이는 10° 차이와 동일 취급
	diff := math.Abs(actual - ideal)
	diff = math.Min(diff, 360-diff)

	switch {
	case diff <= 10:
		return CompositionCentered
	case diff <= 35:
		return CompositionThirds
	default:
		return CompositionEdge
	}
}

// normalizeAngle - 임의의 각도를 [0, 360) 범위로 정규화
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// buildPromptBlock - 생성 모델에 보내는 강제 카메라 지시 블록 조립
// 이 블록은 씬 텍스트보다 앞에 배치되고, 충돌하는 카메라 묘사를 무효화한다
func buildPromptBlock(d Description) string {
	var b strings.Builder

	b.WriteString("=== MANDATORY CAMERA SETUP ===\n")
	b.WriteString(fmt.Sprintf("Camera: %s, %s\n", d.LensType, d.ShotType))
	b.WriteString(fmt.Sprintf("Position: %s of the subject\n", d.PositionLabel))
	b.WriteString(fmt.Sprintf("Height: %s (approx. %.0f%% elevation) - %s\n", d.VerticalAngle, d.Elevation, d.VerticalNote))
	b.WriteString(fmt.Sprintf("Visual anchor: %s\n", d.VisualAnchor))
	b.WriteString(fmt.Sprintf("Lens physics: %s\n", d.PhysicsNote))
	b.WriteString(fmt.Sprintf("Composition: %s\n", d.Composition))
	b.WriteString("This camera setup OVERRIDES any conflicting camera description in the scene text below.\n")
	b.WriteString("==============================")

	return b.String()
}
