package camera

// CameraState - 가상 카메라 위젯의 상태
// x, y는 정사각형 기준 프레임 내 퍼센트 좌표 (50,50이 피사체 위치)
// height는 고도 퍼센트 (0=지면, 50=눈높이, 100=바로 위)
// rotation은 도 단위 (0=프레임 상단 방향, 시계방향 증가)
type CameraState struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

// Clamp - 모든 필드를 규정 범위로 고정한 복사본 반환
// rotation은 저장값 그대로 두고 비교 시점에만 0~360으로 정규화함
func (s CameraState) Clamp() CameraState {
	return CameraState{
		X:        clamp(s.X, 0, 100),
		Y:        clamp(s.Y, 0, 100),
		Height:   clamp(s.Height, 0, 100),
		Rotation: s.Rotation,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Description - 카메라 상태에서 유도된 샷 설명
type Description struct {
	LensType      string  `json:"lensType"`      // 예: "85mm Portrait Telephoto"
	ShotType      string  `json:"shotType"`      // 예: "Full Body Shot"
	PhysicsNote   string  `json:"physicsNote"`   // 초점거리별 왜곡/압축 특성
	PositionLabel string  `json:"positionLabel"` // Front / Right Side Profile / Back / Left Side Profile
	VerticalAngle string  `json:"verticalAngle"` // Worm's-Eye ~ Top-Down Overhead
	VerticalNote  string  `json:"verticalNote"`
	VisualAnchor  string  `json:"visualAnchor"` // 고도와 일치해야 하는 지면/수평선 묘사
	Composition   string  `json:"composition"`  // Subject Centered / Rule of Thirds / Edge of Frame
	Elevation     float64 `json:"elevation"`    // 고도 퍼센트 (클램프 후)
	PromptBlock   string  `json:"promptBlock"`  // 프롬프트 선두에 붙는 강제 지시 블록
}

// DescribeRequest - POST /api/camera/describe 요청
type DescribeRequest struct {
	Camera CameraState `json:"camera"`
}

// DescribeResponse - POST /api/camera/describe 응답
type DescribeResponse struct {
	Success      bool         `json:"success"`
	Description  *Description `json:"description,omitempty"`
	ErrorMessage string       `json:"errorMessage,omitempty"`
}
