package store

import (
	"context"
	"sync"
)

// MemoryStore - 인메모리 KV 저장소
// Redis가 없는 로컬 개발/테스트 환경에서 사용 (프로세스 종료 시 소실)
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore - 메모리 저장소 생성
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

// Load - 맵 조회
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	// 호출자가 내부 버퍼를 건드리지 못하게 복사본 반환
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

// Save - 맵 저장
func (s *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	s.data[key] = copied
	return nil
}

// Delete - 맵 삭제
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
