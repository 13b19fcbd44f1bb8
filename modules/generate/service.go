package generate

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"

	"cinebanana-studio-server/modules/common/config"
	"cinebanana-studio-server/modules/common/database"
	"cinebanana-studio-server/modules/common/gemini"
	"cinebanana-studio-server/modules/common/storage"
	"cinebanana-studio-server/modules/common/store"
	"cinebanana-studio-server/modules/common/utils"
	"cinebanana-studio-server/modules/compose"
	"cinebanana-studio-server/modules/events"
	"cinebanana-studio-server/modules/history"
	"cinebanana-studio-server/modules/vault"
)

// ErrBusy - 같은 세션의 생성 요청이 이미 진행 중
// 대기열/취소 없이 재제출만 차단 (SPA의 busy 플래그와 동일한 의미)
var ErrBusy = errors.New("generation already in progress for this session")

// busy 락 TTL - 프로세스가 죽어도 락이 영원히 남지 않게 함
const busyLockTTL = 2 * time.Minute

type Service struct {
	cfg     *config.Config
	history *history.Service
	vault   *vault.Service
	hub     *events.Hub
	rdb     *redis.Client    // busy 락용 (nil이면 락 비활성)
	archive *database.Client // nil이면 아카이브 비활성
	uploads *storage.Client  // nil이면 Storage 업로드 비활성
}

// NewService - 의존성 주입으로 생성 서비스 초기화
func NewService(
	cfg *config.Config,
	historySvc *history.Service,
	vaultSvc *vault.Service,
	hub *events.Hub,
	rdb *redis.Client,
	archive *database.Client,
	uploads *storage.Client,
) *Service {
	return &Service{
		cfg:     cfg,
		history: historySvc,
		vault:   vaultSvc,
		hub:     hub,
		rdb:     rdb,
		archive: archive,
		uploads: uploads,
	}
}

// Generate - 텍스트 + 설정 → 이미지 생성
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*history.GeneratedAsset, error) {
	// 금고 캐릭터를 레퍼런스로 해석 (지정 순서), 수동 레퍼런스는 그 뒤에
	references, characterNames, err := s.resolveCharacters(ctx, req.SessionID, req.CharacterIDs)
	if err != nil {
		return nil, err
	}
	references = append(references, req.References...)

	cfg := req.Config
	if len(characterNames) > 0 && len(cfg.CharacterNames) == 0 {
		cfg.CharacterNames = characterNames
	}

	assetType := req.Type
	if assetType == "" {
		assetType = history.AssetTypeScene
	}

	prompt := compose.BuildPrompt(cfg, req.SceneText)
	return s.run(ctx, req.SessionID, cfg, references, prompt, assetType)
}

// Edit - 히스토리 생성물 + 지시문 → 후속 편집
func (s *Service) Edit(ctx context.Context, req *EditRequest) (*history.GeneratedAsset, error) {
	asset, err := s.history.Get(ctx, req.SessionID, req.AssetID)
	if err != nil {
		return nil, err
	}

	// 편집 원본이 첫 레퍼런스 (스케치가 있으면 스케치가 그보다 앞에 감)
	references := []compose.InputImage{{
		Data:     asset.ImageData,
		MimeType: asset.MimeType,
	}}

	prompt := compose.BuildPrompt(req.Config, req.Instruction)
	return s.run(ctx, req.SessionID, req.Config, references, prompt, asset.Type)
}

// run - 생성/편집 공통 파이프라인
func (s *Service) run(
	ctx context.Context,
	sessionID string,
	cfg compose.GenerationConfig,
	references []compose.InputImage,
	prompt string,
	assetType history.AssetType,
) (*history.GeneratedAsset, error) {
	// busy 락 - 요청 중복 제출 차단 (큐잉/취소는 하지 않음)
	release, err := s.acquireBusyLock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	model := s.resolveModel(cfg.ModelTier)
	ratio := compose.NormalizeAspectRatio(cfg.AspectRatio)
	resolution := compose.NormalizeResolution(cfg.ModelTier, cfg.Resolution)

	s.hub.Broadcast(sessionID, events.Event{Type: events.EventGenerationStarted})

	log.Printf("🎨 [Generate] model=%s ratio=%s resolution=%q refs=%d prompt=%s",
		model, ratio, resolution, len(references), truncateString(prompt, 50))

	// 파트 순서: 스케치 → 레퍼런스 → 텍스트
	parts := compose.BuildParts(cfg, references, prompt)
	genaiParts := toGenaiParts(parts)

	genConfig := &genai.GenerateContentConfig{
		Temperature: floatPtr(0.7),
		ImageConfig: &genai.ImageConfig{
			AspectRatio: ratio,
		},
	}
	if resolution != "" {
		genConfig.ImageConfig.ImageSize = resolution
	}
	// 검색 그라운딩은 pro 등급 전용
	if cfg.ModelTier == compose.TierPro && cfg.UseGrounding {
		genConfig.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}

	content := &genai.Content{Parts: genaiParts}

	result, err := gemini.GenerateContentWithRetry(ctx, s.cfg.GeminiAPIKeys, model, []*genai.Content{content}, genConfig)
	if err != nil {
		s.hub.Broadcast(sessionID, events.Event{Type: events.EventGenerationFailed, Message: err.Error()})
		return nil, err
	}

	imageData, mimeType, err := extractImage(result)
	if err != nil {
		s.hub.Broadcast(sessionID, events.Event{Type: events.EventGenerationFailed, Message: err.Error()})
		return nil, err
	}

	asset := history.GeneratedAsset{
		ID:        uuid.NewString(),
		URL:       s.resolveURL(ctx, sessionID, imageData, mimeType),
		ImageData: base64.StdEncoding.EncodeToString(imageData),
		MimeType:  mimeType,
		Prompt:    prompt,
		Type:      assetType,
		CreatedAt: time.Now().UTC(),
	}

	// 히스토리 기록 - 저장 실패는 내부에서 경고 처리됨
	s.history.Append(ctx, sessionID, asset)

	// Supabase 아카이브 (선택) - 실패해도 생성 결과는 반환
	if s.archive != nil {
		if err := s.archive.ArchiveAsset(sessionID, asset); err != nil {
			log.Printf("⚠️  [Generate] Archive failed (non-fatal): %v", err)
		}
	}

	s.hub.Broadcast(sessionID, events.Event{Type: events.EventGenerationCompleted, AssetID: asset.ID})

	log.Printf("✅ [Generate] Image generated: %d bytes (asset: %s)", len(imageData), asset.ID)
	return &asset, nil
}

// resolveCharacters - 금고 캐릭터 ID를 레퍼런스 이미지 + 이름 목록으로 해석
func (s *Service) resolveCharacters(ctx context.Context, sessionID string, characterIDs []string) ([]compose.InputImage, []string, error) {
	var references []compose.InputImage
	var names []string

	for _, id := range characterIDs {
		char, err := s.vault.Get(ctx, sessionID, id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve character %s: %w", id, err)
		}
		references = append(references, compose.InputImage{
			Data:     char.ImageData,
			MimeType: char.MimeType,
		})
		names = append(names, char.Name)
	}
	return references, names, nil
}

// resolveModel - 모델 등급 → 실제 Gemini 모델명
func (s *Service) resolveModel(tier compose.ModelTier) string {
	if tier == compose.TierPro {
		return s.cfg.GeminiProModel
	}
	return s.cfg.GeminiFlashModel
}

// resolveURL - Storage 업로드 성공 시 공개 URL, 아니면 data URI로 폴백
func (s *Service) resolveURL(ctx context.Context, sessionID string, imageData []byte, mimeType string) string {
	if s.uploads != nil {
		url, err := s.uploads.UploadGeneratedImage(ctx, imageData, sessionID)
		if err == nil {
			return url
		}
		// 업로드 실패는 비치명 - data URI로 폴백
		log.Printf("⚠️  [Generate] Storage upload failed (non-fatal): %v", err)
	}
	return utils.EncodeDataURI(imageData, mimeType)
}

// acquireBusyLock - Redis SETNX 기반 세션 busy 락
func (s *Service) acquireBusyLock(ctx context.Context, sessionID string) (func(), error) {
	if s.rdb == nil {
		return func() {}, nil
	}

	key := store.Key("busy", sessionID)
	ok, err := s.rdb.SetNX(ctx, key, "1", busyLockTTL).Result()
	if err != nil {
		// 락 저장소 장애는 생성을 막지 않음 (차단은 best-effort)
		log.Printf("⚠️  [Generate] Busy lock unavailable: %v", err)
		return func() {}, nil
	}
	if !ok {
		return nil, ErrBusy
	}

	return func() {
		if err := s.rdb.Del(context.Background(), key).Err(); err != nil {
			log.Printf("⚠️  [Generate] Failed to release busy lock: %v", err)
		}
	}, nil
}

// toGenaiParts - 순수 파트 목록을 genai 파트로 변환
// 디코딩 실패한 이미지는 건너뜀 (요청 전체를 실패시키지 않음)
func toGenaiParts(parts []compose.Part) []*genai.Part {
	var genaiParts []*genai.Part

	for i, part := range parts {
		if part.Image != nil {
			imageData, err := base64.StdEncoding.DecodeString(part.Image.Data)
			if err != nil {
				log.Printf("⚠️  [Generate] Failed to decode image part %d: %v", i, err)
				continue
			}
			mimeType := part.Image.MimeType
			if mimeType == "" {
				mimeType = "image/png"
			}
			genaiParts = append(genaiParts, genai.NewPartFromBytes(imageData, mimeType))
			continue
		}
		genaiParts = append(genaiParts, genai.NewPartFromText(part.Text))
	}
	return genaiParts
}

// extractImage - 응답에서 인라인 이미지 추출
// 이미지가 없으면 모델이 텍스트(거부/설명)만 반환한 것 - 일반 생성 실패로 처리
func extractImage(result *genai.GenerateContentResponse) ([]byte, string, error) {
	if len(result.Candidates) == 0 {
		return nil, "", fmt.Errorf("no candidates returned from Gemini")
	}

	var refusal strings.Builder
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = "image/png"
				}
				return part.InlineData.Data, mimeType, nil
			}
			if part.Text != "" {
				refusal.WriteString(part.Text)
			}
		}
	}

	if refusal.Len() > 0 {
		return nil, "", fmt.Errorf("model returned text instead of an image: %s", truncateString(refusal.String(), 200))
	}
	return nil, "", fmt.Errorf("no image part found in Gemini response")
}

// Helper functions
// truncateString - 룬 단위로 자름 (멀티바이트 문자를 중간에서 쪼개지 않음)
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

func floatPtr(f float64) *float32 {
	f32 := float32(f)
	return &f32
}
