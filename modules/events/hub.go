package events

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// 개발용 - 모든 origin 허용
		// 프로덕션에서는 특정 도메인만 허용하도록 수정
		return true
	},
}

// Event - 생성 수명주기 이벤트 (SPA가 폴링 없이 진행 상황을 받음)
type Event struct {
	Type      string    `json:"type"` // generation_started | generation_completed | generation_failed
	SessionID string    `json:"sessionId"`
	AssetID   string    `json:"assetId,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// 이벤트 타입 상수
const (
	EventGenerationStarted   = "generation_started"
	EventGenerationCompleted = "generation_completed"
	EventGenerationFailed    = "generation_failed"
)

// Hub - 세션별 websocket 구독자 관리
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*websocket.Conn]bool
}

// NewHub - 허브 생성
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[*websocket.Conn]bool),
	}
}

// HandleWS - GET /ws?session=...
// 연결을 업그레이드하고 세션 구독자로 등록
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ [Events] WebSocket upgrade failed: %v", err)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		log.Printf("❌ [Events] Missing session parameter")
		conn.Close()
		return
	}

	h.addClient(sessionID, conn)
	log.Printf("🔍 [Events] New subscriber - Session: %s", sessionID)

	// 읽기 루프 - 클라이언트 메시지는 무시하고 연결 종료만 감지
	go func() {
		defer func() {
			h.removeClient(sessionID, conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("⚠️  [Events] WebSocket error: %v", err)
				}
				return
			}
		}
	}()
}

// Broadcast - 세션 구독자 전원에게 이벤트 전송 (쓰기 실패한 연결은 제거)
func (h *Hub) Broadcast(sessionID string, event Event) {
	event.SessionID = sessionID
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️  [Events] Failed to marshal event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.sessions[sessionID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.sessions[sessionID], conn)
		}
	}
}

func (h *Hub) addClient(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*websocket.Conn]bool)
	}
	h.sessions[sessionID][conn] = true
}

func (h *Hub) removeClient(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.sessions[sessionID], conn)
	if len(h.sessions[sessionID]) == 0 {
		delete(h.sessions, sessionID)
	}
	log.Printf("👋 [Events] Subscriber left session %s", sessionID)
}
