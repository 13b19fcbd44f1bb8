package generate

import (
	"encoding/base64"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"cinebanana-studio-server/modules/compose"
)

func TestToGenaiParts_PreservesOrderAndKinds(t *testing.T) {
	imageBytes := []byte{0x89, 0x50, 0x4E, 0x47}
	encoded := base64.StdEncoding.EncodeToString(imageBytes)

	parts := []compose.Part{
		{Image: &compose.InputImage{Data: encoded, MimeType: "image/png"}},
		{Image: &compose.InputImage{Data: encoded, MimeType: "image/jpeg"}},
		{Text: "final prompt"},
	}

	genaiParts := toGenaiParts(parts)

	require.Len(t, genaiParts, 3)
	require.NotNil(t, genaiParts[0].InlineData)
	assert.Equal(t, "image/png", genaiParts[0].InlineData.MIMEType)
	assert.Equal(t, imageBytes, genaiParts[0].InlineData.Data)
	require.NotNil(t, genaiParts[1].InlineData)
	assert.Equal(t, "image/jpeg", genaiParts[1].InlineData.MIMEType)
	assert.Equal(t, "final prompt", genaiParts[2].Text)
}

// 디코딩 불가능한 이미지 파트는 요청 전체를 깨지 않고 건너뛰어야 함
func TestToGenaiParts_SkipsUndecodableImages(t *testing.T) {
	parts := []compose.Part{
		{Image: &compose.InputImage{Data: "%%%not-base64%%%", MimeType: "image/png"}},
		{Text: "prompt"},
	}

	genaiParts := toGenaiParts(parts)

	require.Len(t, genaiParts, 1)
	assert.Equal(t, "prompt", genaiParts[0].Text)
}

func TestExtractImage_ReturnsInlineData(t *testing.T) {
	imageBytes := []byte{1, 2, 3}
	result := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{InlineData: &genai.Blob{Data: imageBytes, MIMEType: "image/png"}},
					},
				},
			},
		},
	}

	data, mimeType, err := extractImage(result)
	require.NoError(t, err)
	assert.Equal(t, imageBytes, data)
	assert.Equal(t, "image/png", mimeType)
}

// 모델이 이미지 대신 텍스트(거부/설명)만 반환한 경우 - 일반 생성 실패
func TestExtractImage_TextOnlyIsFailure(t *testing.T) {
	result := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "I cannot generate that image."},
					},
				},
			},
		},
	}

	_, _, err := extractImage(result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text instead of an image")
	assert.Contains(t, err.Error(), "I cannot generate that image.")
}

func TestExtractImage_EmptyCandidates(t *testing.T) {
	_, _, err := extractImage(&genai.GenerateContentResponse{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "0123456789...", truncateString("0123456789abcdef", 10))
}

// 멀티바이트 문자를 중간에서 쪼개면 안 됨 (모델 거부 메시지가 한글/일본어일 수 있음)
func TestTruncateString_MultibyteSafe(t *testing.T) {
	truncated := truncateString("이미지를 생성할 수 없습니다", 5)
	assert.Equal(t, "이미지를 ...", truncated)
	assert.True(t, utf8.ValidString(truncated))
}
