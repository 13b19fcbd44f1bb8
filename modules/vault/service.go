package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"cinebanana-studio-server/modules/common/store"
	"cinebanana-studio-server/modules/common/utils"
	"cinebanana-studio-server/modules/history"
)

// CharacterArchiver - 캐릭터 등록 기록의 내구 보관 (Supabase)
// nil이면 비활성, 실패는 경고로만 처리됨
type CharacterArchiver interface {
	ArchiveCharacter(sessionID, characterID, name string) error
}

// Service - 세션별 캐릭터 금고 관리
type Service struct {
	store   store.Store
	history *history.Service
	archive CharacterArchiver
}

// NewService - 금고 서비스 생성
func NewService(kv store.Store, historySvc *history.Service, archive CharacterArchiver) *Service {
	return &Service{store: kv, history: historySvc, archive: archive}
}

func vaultKey(sessionID string) string {
	return store.Key("vault", sessionID)
}

// List - 세션의 캐릭터 목록 조회 (등록순)
func (s *Service) List(ctx context.Context, sessionID string) ([]Character, error) {
	data, err := s.store.Load(ctx, vaultKey(sessionID))
	if errors.Is(err, store.ErrNotFound) {
		return []Character{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load vault: %w", err)
	}

	var chars []Character
	if err := json.Unmarshal(data, &chars); err != nil {
		return nil, fmt.Errorf("failed to parse vault: %w", err)
	}
	return chars, nil
}

// Get - ID로 캐릭터 조회 (생성 요청의 레퍼런스 첨부용)
func (s *Service) Get(ctx context.Context, sessionID, characterID string) (*Character, error) {
	chars, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range chars {
		if chars[i].ID == characterID {
			char := chars[i]
			return &char, nil
		}
	}
	return nil, fmt.Errorf("character not found: %s", characterID)
}

// Add - 업로드된 이미지로 캐릭터 등록
func (s *Service) Add(ctx context.Context, sessionID, name, imageInput string) (*Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("character name is required")
	}

	// data URI / 맨 base64 모두 수용, 실제 이미지인지 검증
	imageData, mimeType, err := utils.DecodeDataURI(imageInput)
	if err != nil {
		return nil, err
	}
	if _, err := utils.SniffImage(imageData); err != nil {
		return nil, err
	}

	char := Character{
		ID:        uuid.NewString(),
		Name:      name,
		ImageData: utils.ConvertImageToBase64(imageData),
		MimeType:  mimeType,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.save(ctx, sessionID, char); err != nil {
		return nil, err
	}
	s.archiveCharacter(sessionID, char)

	log.Printf("🔐 [Vault] Character %q added to session %s", name, sessionID)
	return &char, nil
}

// Promote - 히스토리 생성물을 금고 캐릭터로 승격 (페이로드 복사, 원본은 불변)
func (s *Service) Promote(ctx context.Context, sessionID, assetID, name string) (*Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("character name is required")
	}

	asset, err := s.history.Get(ctx, sessionID, assetID)
	if err != nil {
		return nil, err
	}

	char := Character{
		ID:        uuid.NewString(),
		Name:      name,
		ImageData: asset.ImageData,
		MimeType:  asset.MimeType,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.save(ctx, sessionID, char); err != nil {
		return nil, err
	}
	s.archiveCharacter(sessionID, char)

	log.Printf("🔐 [Vault] Asset %s promoted to character %q in session %s", assetID, name, sessionID)
	return &char, nil
}

// archiveCharacter - Supabase 아카이브 (선택) - 실패해도 등록 결과는 반환
func (s *Service) archiveCharacter(sessionID string, char Character) {
	if s.archive == nil {
		return
	}
	if err := s.archive.ArchiveCharacter(sessionID, char.ID, char.Name); err != nil {
		log.Printf("⚠️  [Vault] Archive failed (non-fatal): %v", err)
	}
}

// Delete - 캐릭터 개별 삭제
func (s *Service) Delete(ctx context.Context, sessionID, characterID string) error {
	chars, err := s.List(ctx, sessionID)
	if err != nil {
		return err
	}

	filtered := make([]Character, 0, len(chars))
	found := false
	for _, char := range chars {
		if char.ID == characterID {
			found = true
			continue
		}
		filtered = append(filtered, char)
	}
	if !found {
		return fmt.Errorf("character not found: %s", characterID)
	}

	data, err := json.Marshal(filtered)
	if err != nil {
		return fmt.Errorf("failed to marshal vault: %w", err)
	}
	if err := s.store.Save(ctx, vaultKey(sessionID), data); err != nil {
		return fmt.Errorf("failed to persist vault: %w", err)
	}

	log.Printf("🗑️  [Vault] Character %s deleted from session %s", characterID, sessionID)
	return nil
}

// save - 캐릭터 추가 후 컬렉션 전체 재기록
func (s *Service) save(ctx context.Context, sessionID string, char Character) error {
	chars, err := s.List(ctx, sessionID)
	if err != nil {
		log.Printf("⚠️  [Vault] Failed to load before save, starting fresh: %v", err)
		chars = []Character{}
	}

	chars = append(chars, char)

	data, err := json.Marshal(chars)
	if err != nil {
		return fmt.Errorf("failed to marshal vault: %w", err)
	}
	if err := s.store.Save(ctx, vaultKey(sessionID), data); err != nil {
		return fmt.Errorf("failed to persist vault: %w", err)
	}
	return nil
}
