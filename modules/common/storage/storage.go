package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"cinebanana-studio-server/modules/common/config"
	"cinebanana-studio-server/modules/common/utils"
)

// Client - Supabase Storage 업로더
// SUPABASE_URL 미설정 시 생성되지 않고, 생성물은 data URI로만 반환됨
type Client struct {
	httpClient *http.Client
}

// NewClient - Storage 클라이언트 생성
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// UploadGeneratedImage - 생성된 PNG를 WebP로 변환해 Supabase Storage에 업로드
// 성공 시 공개 URL 반환, 실패는 호출자가 경고로만 처리 (생성 흐름을 막지 않음)
func (c *Client) UploadGeneratedImage(ctx context.Context, imageData []byte, sessionID string) (string, error) {
	cfg := config.GetConfig()

	// PNG를 WebP로 변환 (quality: 90)
	webpData, err := utils.ConvertPNGToWebP(imageData, 90.0)
	if err != nil {
		return "", fmt.Errorf("failed to convert PNG to WebP: %w", err)
	}

	// 파일 경로 생성 (세션별 폴더)
	fileName := fmt.Sprintf("generated_%d_%s.webp", time.Now().UnixMilli(), uuid.NewString()[:8])
	filePath := fmt.Sprintf("cinebanana/session-%s/%s", sessionID, fileName)

	log.Printf("📤 Uploading WebP image to storage: %s", filePath)

	// Supabase Storage API URL
	uploadURL := fmt.Sprintf("%s/storage/v1/object/attachments/%s", cfg.SupabaseURL, filePath)

	// HTTP Request 생성 (WebP 데이터 사용)
	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, bytes.NewReader(webpData))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+cfg.SupabaseServiceKey)
	req.Header.Set("Content-Type", "image/webp")

	// 업로드 실행
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	publicURL := cfg.SupabaseStorageBaseURL + filePath
	log.Printf("✅ WebP image uploaded successfully: %s (%d bytes)", filePath, len(webpData))
	return publicURL, nil
}
