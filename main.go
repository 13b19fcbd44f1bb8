package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	goredis "github.com/redis/go-redis/v9"

	"cinebanana-studio-server/modules/camera"
	"cinebanana-studio-server/modules/common/config"
	"cinebanana-studio-server/modules/common/database"
	redisconn "cinebanana-studio-server/modules/common/redis"
	"cinebanana-studio-server/modules/common/storage"
	"cinebanana-studio-server/modules/common/store"
	"cinebanana-studio-server/modules/compose"
	"cinebanana-studio-server/modules/events"
	"cinebanana-studio-server/modules/generate"
	"cinebanana-studio-server/modules/history"
	"cinebanana-studio-server/modules/vault"
)

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "cinebanana-studio",
	})
}

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// KV 저장소 연결 - Redis 실패 시 메모리 폴백 (재시작 시 소실)
	var kv store.Store
	var rdb *goredis.Client
	if rdb = redisconn.Connect(cfg); rdb != nil {
		log.Println("✅ Redis connected successfully")
		kv = store.NewRedisStore(rdb)
	} else {
		log.Println("⚠️  Redis unavailable - falling back to in-memory store (data will not survive restarts)")
		kv = store.NewMemoryStore()
	}

	// Supabase 아카이브/업로드 (선택)
	var archive *database.Client
	var uploads *storage.Client
	if cfg.SupabaseURL != "" {
		archive = database.NewClient()
		uploads = storage.NewClient()
	}

	// 서비스 초기화
	historySvc := history.NewService(kv, cfg.HistoryLimit)
	var characterArchive vault.CharacterArchiver
	if archive != nil {
		characterArchive = archive
	}
	vaultSvc := vault.NewService(kv, historySvc, characterArchive)
	hub := events.NewHub()

	generateSvc := generate.NewService(cfg, historySvc, vaultSvc, hub, rdb, archive, uploads)

	// 핸들러 초기화
	cameraHandler := camera.NewHandler()
	composeHandler := compose.NewHandler()
	generateHandler := generate.NewHandler(generateSvc)
	historyHandler := history.NewHandler(historySvc)
	vaultHandler := vault.NewHandler(vaultSvc)

	// 라우터 설정
	r := mux.NewRouter()

	// CORS 미들웨어 적용
	r.Use(enableCORS)

	// 라우트 설정
	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/ws", hub.HandleWS)

	r.HandleFunc("/api/camera/describe", cameraHandler.HandleDescribe).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/compose/preview", composeHandler.HandlePreview).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/generate", generateHandler.HandleGenerate).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/edit", generateHandler.HandleEdit).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/history", historyHandler.HandleList).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/history", historyHandler.HandleClear).Methods("DELETE")
	r.HandleFunc("/api/vault", vaultHandler.HandleList).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/vault", vaultHandler.HandleUpload).Methods("POST")
	r.HandleFunc("/api/vault/promote", vaultHandler.HandlePromote).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/vault/{id}", vaultHandler.HandleDelete).Methods("DELETE", "OPTIONS")

	log.Printf("🚀 CineBanana Studio Server starting on port %s", cfg.Port)
	log.Printf("📡 WebSocket events: ws://localhost:%s/ws", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("🎨 Generate: http://localhost:%s/api/generate", cfg.Port)

	// 서버 시작
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
