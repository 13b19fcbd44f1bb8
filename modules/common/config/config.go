package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Gemini API
	GeminiAPIKey     string
	GeminiAPIKeys    []string // 429 대비 여러 키 (쉼표 구분)
	GeminiFlashModel string
	GeminiProModel   string

	// Redis (히스토리/캐릭터 금고 KV 저장소)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Supabase (선택 - 생성 결과 아카이브 + Storage 업로드)
	SupabaseURL            string
	SupabaseServiceKey     string
	SupabaseStorageBaseURL string

	// Server
	Port string

	// History
	HistoryLimit int
}

var globalConfig *Config

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	// Redis UseTLS 파싱
	useTLS := true // 기본값
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		if parsed, err := strconv.ParseBool(tlsStr); err == nil {
			useTLS = parsed
		}
	}

	// HistoryLimit 파싱
	historyLimit := 50 // 기본값 (세션당 히스토리 최대 50장)
	if limitStr := os.Getenv("HISTORY_LIMIT"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			historyLimit = parsed
		}
	}

	globalConfig = &Config{
		// Gemini API
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiAPIKeys:    parseAPIKeys(),
		GeminiFlashModel: getEnv("GEMINI_FLASH_IMAGE_MODEL", "gemini-2.5-flash-image"),
		GeminiProModel:   getEnv("GEMINI_PRO_IMAGE_MODEL", "gemini-3-pro-image-preview"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,

		// Supabase (없으면 아카이브/업로드 비활성화)
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:     getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBaseURL: getEnv("SUPABASE_STORAGE_BASE_URL", ""),

		// Server
		Port: getEnv("PORT", "8080"),

		// History
		HistoryLimit: historyLimit,
	}

	// 필수 환경변수 검증
	if err := globalConfig.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Gemini: flash=%s, pro=%s (keys: %d)",
		globalConfig.GeminiFlashModel, globalConfig.GeminiProModel, len(globalConfig.GeminiAPIKeys))
	log.Printf("   Redis: %s:%s (TLS: %v)", globalConfig.RedisHost, globalConfig.RedisPort, globalConfig.RedisUseTLS)
	if globalConfig.SupabaseURL != "" {
		log.Printf("   Supabase: %s", globalConfig.SupabaseURL)
	} else {
		log.Println("   Supabase: disabled (SUPABASE_URL not set)")
	}
	log.Printf("   History limit: %d per session", globalConfig.HistoryLimit)

	return globalConfig, nil
}

// GetConfig - 로드된 설정 가져오기
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// validate - 필수 환경변수 검증
func (c *Config) validate() error {
	if len(c.GeminiAPIKeys) == 0 {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	// Supabase는 선택 - URL이 있으면 Service Key도 필수
	if c.SupabaseURL != "" && c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY is required when SUPABASE_URL is set")
	}
	return nil
}

// parseAPIKeys - GEMINI_API_KEYS(쉼표 구분) + GEMINI_API_KEY 병합
func parseAPIKeys() []string {
	var keys []string
	if primary := os.Getenv("GEMINI_API_KEY"); primary != "" {
		keys = append(keys, primary)
	}
	for _, key := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		key = strings.TrimSpace(key)
		if key != "" && !contains(keys, key) {
			keys = append(keys, key)
		}
	}
	return keys
}

func contains(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetRedisAddr - Redis 연결 문자열 생성
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
