package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Бэкенды детектора позы.
const (
	PoseBackendRemote = "remote"
	PoseBackendGoCV   = "gocv"
)

type Config struct {
	Port           string
	TelegramToken  string
	RequestTimeout time.Duration
	MaxUploadBytes int64
	JPEGQuality    int

	PoseBackend    string
	PoseServiceURL string
	PoseModelPath  string
	PoseConfigPath string
	PoseMinVisible float64

	WeatherAPIKey  string
	WeatherBaseURL string

	GeminiAPIKey string
	GeminiModel  string

	DatabaseURL     string
	OutfitRulesPath string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8000"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		PoseBackend:     strings.ToLower(getEnv("POSE_BACKEND", PoseBackendRemote)),
		PoseServiceURL:  getEnv("POSE_SERVICE_URL", "http://localhost:5000"),
		PoseModelPath:   getEnv("POSE_MODEL_PATH", "./models/pose_iter_440000.caffemodel"),
		PoseConfigPath:  getEnv("POSE_CONFIG_PATH", "./models/pose_deploy_linevec.prototxt"),
		WeatherAPIKey:   os.Getenv("WEATHER_API_KEY"),
		WeatherBaseURL:  os.Getenv("WEATHER_BASE_URL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		OutfitRulesPath: os.Getenv("OUTFIT_RULES_PATH"),
	}

	maxMB, err := getInt("MAX_UPLOAD_MB", 20)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxMB) << 20

	if cfg.JPEGQuality, err = getInt("JPEG_QUALITY", 90); err != nil {
		return nil, err
	}

	timeoutSec, err := getInt("REQUEST_TIMEOUT_SEC", 60)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second

	if cfg.PoseMinVisible, err = getFloat("POSE_MIN_VISIBILITY", 0.5); err != nil {
		return nil, err
	}

	if cfg.PoseBackend != PoseBackendRemote && cfg.PoseBackend != PoseBackendGoCV {
		return nil, fmt.Errorf("POSE_BACKEND must be %q or %q, got %q", PoseBackendRemote, PoseBackendGoCV, cfg.PoseBackend)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, val)
	}
	return n, nil
}

func getFloat(key string, defaultVal float64) (float64, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, val)
	}
	return f, nil
}
