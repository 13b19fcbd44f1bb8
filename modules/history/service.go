package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"cinebanana-studio-server/modules/common/store"
)

// Service - 세션별 생성 히스토리 관리
// 컬렉션은 KV 저장소에 통째로 직렬화됨 (시작 시 1회 로드, 변경마다 전체 재기록)
type Service struct {
	store store.Store
	limit int
}

// NewService - 히스토리 서비스 생성
func NewService(kv store.Store, limit int) *Service {
	if limit <= 0 {
		limit = 50
	}
	return &Service{store: kv, limit: limit}
}

func historyKey(sessionID string) string {
	return store.Key("history", sessionID)
}

// List - 세션의 히스토리 조회 (최신순)
func (s *Service) List(ctx context.Context, sessionID string) ([]GeneratedAsset, error) {
	data, err := s.store.Load(ctx, historyKey(sessionID))
	if errors.Is(err, store.ErrNotFound) {
		return []GeneratedAsset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	var assets []GeneratedAsset
	if err := json.Unmarshal(data, &assets); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return assets, nil
}

// Get - ID로 히스토리 항목 1건 조회 (편집/승격의 원본 조회용)
func (s *Service) Get(ctx context.Context, sessionID, assetID string) (*GeneratedAsset, error) {
	assets, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range assets {
		if assets[i].ID == assetID {
			asset := assets[i]
			return &asset, nil
		}
	}
	return nil, fmt.Errorf("asset not found: %s", assetID)
}

// Append - 새 생성물을 맨 앞에 추가 (최신순 유지, 한도 초과분은 뒤에서 잘림)
// 저장 실패는 경고로만 처리하고 호출자 흐름을 막지 않음
func (s *Service) Append(ctx context.Context, sessionID string, asset GeneratedAsset) {
	assets, err := s.List(ctx, sessionID)
	if err != nil {
		log.Printf("⚠️  [History] Failed to load before append, starting fresh: %v", err)
		assets = []GeneratedAsset{}
	}

	assets = append([]GeneratedAsset{asset}, assets...)
	if len(assets) > s.limit {
		assets = assets[:s.limit]
	}

	data, err := json.Marshal(assets)
	if err != nil {
		log.Printf("⚠️  [History] Failed to marshal history: %v", err)
		return
	}

	if err := s.store.Save(ctx, historyKey(sessionID), data); err != nil {
		// 저장 실패(용량 초과 등)는 생성 자체를 실패시키지 않음
		log.Printf("⚠️  [History] Failed to persist history for session %s: %v", sessionID, err)
		return
	}

	log.Printf("🗂️  [History] Appended asset %s to session %s (total: %d)", asset.ID, sessionID, len(assets))
}

// Clear - 세션 히스토리 전체 삭제 (개별 삭제는 지원하지 않음)
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, historyKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	log.Printf("🧹 [History] Cleared history for session %s", sessionID)
	return nil
}
