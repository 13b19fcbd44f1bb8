package store

import (
	"context"
	"errors"
)

// ErrNotFound - 키가 존재하지 않을 때 반환
var ErrNotFound = errors.New("store: key not found")

// Store - 네임스페이스 KV 저장소 인터페이스
// 히스토리/캐릭터 금고는 이 인터페이스 뒤에 숨어 있어서
// Redis든 메모리든 구현체 교체가 자유로움
type Store interface {
	// Load - 키에 저장된 JSON 바이트 조회 (없으면 ErrNotFound)
	Load(ctx context.Context, key string) ([]byte, error)
	// Save - 키에 JSON 바이트 저장 (컬렉션 전체 덮어쓰기)
	Save(ctx context.Context, key string, value []byte) error
	// Delete - 키 삭제
	Delete(ctx context.Context, key string) error
}

// Namespace - CineBanana 전용 키 프리픽스
const Namespace = "cinebanana:"

// Key - 네임스페이스가 붙은 키 생성
func Key(parts ...string) string {
	key := Namespace
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}
