package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG 디코더 등록
	"image/png"
	"log"
	"net/http"
	"strings"

	_ "github.com/kolesa-team/go-webp/decoder" // WebP 디코더 등록
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// ConvertImageToBase64 - 이미지 바이너리를 base64로 변환
func ConvertImageToBase64(imageData []byte) string {
	return base64.StdEncoding.EncodeToString(imageData)
}

// EncodeDataURI - 이미지 바이너리를 data URI 문자열로 변환 (SPA 표시용)
func EncodeDataURI(imageData []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = http.DetectContentType(imageData)
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))
}

// DecodeDataURI - data URI 또는 맨 base64 문자열을 (바이너리, MIME)으로 분해
// 파일 업로드 경계에서 들어오는 두 형태를 모두 수용함
func DecodeDataURI(input string) ([]byte, string, error) {
	raw := input
	mimeType := ""

	if strings.HasPrefix(input, "data:") {
		// data:<mime>;base64,<payload>
		comma := strings.Index(input, ",")
		if comma < 0 {
			return nil, "", fmt.Errorf("malformed data URI: missing comma")
		}
		header := input[len("data:"):comma]
		raw = input[comma+1:]
		mimeType = strings.TrimSuffix(header, ";base64")
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64 image: %w", err)
	}

	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, nil
}

// ConvertPNGToWebP - PNG 바이너리를 WebP로 변환
func ConvertPNGToWebP(pngData []byte, quality float32) ([]byte, error) {
	log.Printf("🔄 Converting PNG to WebP (quality: %.1f)", quality)

	// PNG 디코딩
	pngReader := bytes.NewReader(pngData)
	img, err := png.Decode(pngReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}

	// WebP 인코딩
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	err = webp.Encode(&webpBuffer, img, options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	webpData := webpBuffer.Bytes()

	log.Printf("✅ PNG converted to WebP: %d bytes → %d bytes (%.1f%% reduction)",
		len(pngData), len(webpData),
		float64(len(pngData)-len(webpData))/float64(len(pngData))*100)

	return webpData, nil
}

// SniffImage - 이미지 바이트의 포맷/크기 검증 (업로드 경계용)
func SniffImage(data []byte) (string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unrecognized image data: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", fmt.Errorf("invalid image dimensions: %dx%d", cfg.Width, cfg.Height)
	}
	return format, nil
}
