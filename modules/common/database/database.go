package database

import (
	"fmt"
	"log"

	"github.com/supabase-community/supabase-go"

	"cinebanana-studio-server/modules/common/config"
	"cinebanana-studio-server/modules/history"
)

// Client - Supabase 아카이브 클라이언트
// Redis KV가 주 저장소이고, Supabase는 생성 기록의 내구성 있는 사본을 담당
type Client struct {
	supabase *supabase.Client
}

// NewClient - Database 클라이언트 생성
func NewClient() *Client {
	cfg := config.GetConfig()

	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		log.Printf("❌ Failed to create Supabase client: %v", err)
		return nil
	}

	return &Client{
		supabase: supabaseClient,
	}
}

// ArchiveAsset - 생성 기록을 cine_assets 테이블에 보관
// 원본 페이로드는 Storage에 있으므로 메타데이터와 프롬프트만 저장
func (c *Client) ArchiveAsset(sessionID string, asset history.GeneratedAsset) error {
	insertData := map[string]interface{}{
		"asset_id":   asset.ID,
		"session_id": sessionID,
		"asset_type": string(asset.Type),
		"prompt":     asset.Prompt,
		"image_url":  asset.URL,
		"mime_type":  asset.MimeType,
		"created_at": asset.CreatedAt,
	}

	_, _, err := c.supabase.From("cine_assets").
		Insert(insertData, false, "", "", "").
		Execute()

	if err != nil {
		return fmt.Errorf("failed to archive asset: %w", err)
	}

	log.Printf("📝 Asset %s archived to Supabase", asset.ID)
	return nil
}

// ArchiveCharacter - 캐릭터 등록 기록을 cine_characters 테이블에 보관
func (c *Client) ArchiveCharacter(sessionID, characterID, name string) error {
	insertData := map[string]interface{}{
		"character_id": characterID,
		"session_id":   sessionID,
		"name":         name,
	}

	_, _, err := c.supabase.From("cine_characters").
		Insert(insertData, false, "", "", "").
		Execute()

	if err != nil {
		return fmt.Errorf("failed to archive character: %w", err)
	}

	log.Printf("📝 Character %s archived to Supabase", characterID)
	return nil
}
