package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebanana-studio-server/modules/common/store"
)

func newTestService(limit int) *Service {
	return NewService(store.NewMemoryStore(), limit)
}

func makeAsset(id string) GeneratedAsset {
	return GeneratedAsset{
		ID:        id,
		URL:       "data:image/png;base64,aW1n",
		ImageData: "aW1n",
		MimeType:  "image/png",
		Prompt:    "prompt for " + id,
		Type:      AssetTypeScene,
		CreatedAt: time.Now().UTC(),
	}
}

func TestService_EmptyHistory(t *testing.T) {
	svc := newTestService(10)

	assets, err := svc.List(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, assets)
}

// 새 항목은 항상 맨 앞에 붙어야 함 (최신순)
func TestService_AppendNewestFirst(t *testing.T) {
	svc := newTestService(10)
	ctx := context.Background()

	svc.Append(ctx, "s1", makeAsset("a"))
	svc.Append(ctx, "s1", makeAsset("b"))
	svc.Append(ctx, "s1", makeAsset("c"))

	assets, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, "c", assets[0].ID)
	assert.Equal(t, "b", assets[1].ID)
	assert.Equal(t, "a", assets[2].ID)
}

func TestService_LimitTruncatesOldest(t *testing.T) {
	svc := newTestService(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.Append(ctx, "s1", makeAsset(fmt.Sprintf("asset-%d", i)))
	}

	assets, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, assets, 3)
	// 가장 오래된 asset-0, asset-1이 잘려나감
	assert.Equal(t, "asset-4", assets[0].ID)
	assert.Equal(t, "asset-2", assets[2].ID)
}

func TestService_SessionsIsolated(t *testing.T) {
	svc := newTestService(10)
	ctx := context.Background()

	svc.Append(ctx, "s1", makeAsset("a"))
	svc.Append(ctx, "s2", makeAsset("b"))

	s1, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	s2, err := svc.List(ctx, "s2")
	require.NoError(t, err)

	require.Len(t, s1, 1)
	require.Len(t, s2, 1)
	assert.Equal(t, "a", s1[0].ID)
	assert.Equal(t, "b", s2[0].ID)
}

func TestService_Get(t *testing.T) {
	svc := newTestService(10)
	ctx := context.Background()

	svc.Append(ctx, "s1", makeAsset("a"))
	svc.Append(ctx, "s1", makeAsset("b"))

	asset, err := svc.Get(ctx, "s1", "a")
	require.NoError(t, err)
	assert.Equal(t, "a", asset.ID)
	assert.Equal(t, "prompt for a", asset.Prompt)

	_, err = svc.Get(ctx, "s1", "missing")
	assert.Error(t, err)
}

func TestService_Clear(t *testing.T) {
	svc := newTestService(10)
	ctx := context.Background()

	svc.Append(ctx, "s1", makeAsset("a"))
	require.NoError(t, svc.Clear(ctx, "s1"))

	assets, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, assets)
}
